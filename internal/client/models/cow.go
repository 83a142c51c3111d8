package models

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Photos unmarshals from either a single JSON string or an array of strings.
// The backend historically stored one photo per cow and later a list; both
// shapes are still in the wild.
type Photos []string

func (p *Photos) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*p = Photos{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*p = Photos(many)
	return nil
}

// Cow is an adoptable record under the ashram's care.
type Cow struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Photos         Photos `json:"photo,omitempty"`
	Age            int    `json:"age"`
	SicknessStatus bool   `json:"sicknessStatus"`
	AgedStatus     bool   `json:"agedStatus"`
	AdoptionStatus bool   `json:"adoptionStatus"`
	Gender         string `json:"gender,omitempty"`
	Description    string `json:"description,omitempty"`
}

// CowInput is the admin-side create/update payload.
type CowInput struct {
	Name           string   `json:"name"`
	Photos         []string `json:"photo,omitempty"`
	Age            int      `json:"age"`
	SicknessStatus bool     `json:"sicknessStatus"`
	AgedStatus     bool     `json:"agedStatus"`
	AdoptionStatus bool     `json:"adoptionStatus"`
	Gender         string   `json:"gender,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// CowQuery holds the optional filter/sort parameters for the cow list.
// The aged filter travels as "old" on the wire.
type CowQuery struct {
	Name    string
	Sick    bool
	Aged    bool
	Adopted bool
	Sort    string
}

// Values encodes the query for the /cows endpoint. Boolean filters are only
// sent when set, matching what the web client does.
func (q *CowQuery) Values() url.Values {
	v := url.Values{}
	if q == nil {
		return v
	}
	if q.Name != "" {
		v.Set("name", q.Name)
	}
	if q.Sick {
		v.Set("sick", strconv.FormatBool(q.Sick))
	}
	if q.Aged {
		v.Set("old", strconv.FormatBool(q.Aged))
	}
	if q.Adopted {
		v.Set("adopted", strconv.FormatBool(q.Adopted))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}
