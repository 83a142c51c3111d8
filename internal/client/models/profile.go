// Package models defines the records mirrored from backend responses:
// identity profiles, cows and donations, plus the request/query DTOs the
// API client sends. The coordinator never originates identity for any of
// them; every field comes from a server response.
package models

// Role selects one of the two independent identity contexts.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Profile is an identity record as returned by register/login/profile
// endpoints. The same shape serves both contexts; admin responses simply
// leave the user-only fields empty.
type Profile struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
	Verified         bool   `json:"isVerified"`

	DateOfBirth              string `json:"dateOfBirth,omitempty"`
	EmergencyRecoveryContact string `json:"emergencyRecoveryContact,omitempty"`
}

// RegisterUserInput carries the user registration form. Validation is the
// backend's job; the client passes fields through untouched.
type RegisterUserInput struct {
	Name                     string `json:"name"`
	Email                    string `json:"email"`
	Password                 string `json:"password"`
	ConfirmPassword          string `json:"confirmPassword"`
	DateOfBirth              string `json:"dateOfBirth,omitempty"`
	EmergencyRecoveryContact string `json:"emergencyRecoveryContact,omitempty"`
}

// RegisterAdminInput carries the admin registration form. AdminKey is the
// shared provisioning secret checked server-side.
type RegisterAdminInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	AdminKey string `json:"adminKey"`
}

// ProfileUpdate is a partial profile mutation for the update-profile
// endpoint. Nil fields are omitted from the request body.
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	Password    *string `json:"password,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}
