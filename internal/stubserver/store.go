package stubserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/google/uuid"
)

// account is a stored identity, user or admin.
type account struct {
	ID               string
	Role             models.Role
	Email            string
	Name             string
	PasswordHash     string
	TwoFactorEnabled bool
	Verified         bool
	DateOfBirth      string
}

func (a *account) profile() *models.Profile {
	return &models.Profile{
		ID:               a.ID,
		Email:            a.Email,
		Name:             a.Name,
		TwoFactorEnabled: a.TwoFactorEnabled,
		Verified:         a.Verified,
		DateOfBirth:      a.DateOfBirth,
	}
}

// Store holds all stub state in memory behind one mutex. Everything is lost
// on restart, which is the point.
type Store struct {
	mu           sync.Mutex
	accounts     map[models.Role]map[string]*account
	cowOrder     []string
	cows         map[string]*models.Cow
	donations    []models.Donation
	otps         map[string]string
	verifyTokens map[string]string
	resetTokens  map[string]string
}

func NewStore() *Store {
	return &Store{
		accounts: map[models.Role]map[string]*account{
			models.RoleUser:  {},
			models.RoleAdmin: {},
		},
		cows:         map[string]*models.Cow{},
		otps:         map[string]string{},
		verifyTokens: map[string]string{},
		resetTokens:  map[string]string{},
	}
}

func otpKey(role models.Role, email string) string {
	return string(role) + ":" + strings.ToLower(email)
}

func (s *Store) createAccount(role models.Role, email, name, passwordHash, dob string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := s.accounts[role][key]; exists {
		return nil, false
	}
	a := &account{
		ID:           uuid.NewString(),
		Role:         role,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		DateOfBirth:  dob,
	}
	s.accounts[role][key] = a
	return a, true
}

func (s *Store) findByEmail(role models.Role, email string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[role][strings.ToLower(email)]
	return a, ok
}

func (s *Store) findByID(role models.Role, id string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts[role] {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

func (s *Store) deleteAccount(role models.Role, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, a := range s.accounts[role] {
		if a.ID == id {
			delete(s.accounts[role], key)
			return true
		}
	}
	return false
}

// update runs fn on the account under the store lock.
func (s *Store) update(a *account, fn func(*account)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(a)
}

func (s *Store) setOTP(role models.Role, email, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[otpKey(role, email)] = code
}

func (s *Store) consumeOTP(role models.Role, email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := otpKey(role, email)
	if s.otps[key] == "" || s.otps[key] != code {
		return false
	}
	delete(s.otps, key)
	return true
}

// LastOTP returns the pending two-factor code for an account. Tests use it
// in place of reading email.
func (s *Store) LastOTP(role models.Role, email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otps[otpKey(role, email)]
}

func (s *Store) issueVerifyToken(accountID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.verifyTokens[token] = accountID
	return token
}

func (s *Store) consumeVerifyToken(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.verifyTokens[token]
	if ok {
		delete(s.verifyTokens, token)
	}
	return id, ok
}

// VerifyTokenFor returns a pending verification token for an account.
// Tests use it in place of reading email.
func (s *Store) VerifyTokenFor(accountID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, id := range s.verifyTokens {
		if id == accountID {
			return token
		}
	}
	return ""
}

// ResetTokenFor returns a pending password reset token for an account.
func (s *Store) ResetTokenFor(accountID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, id := range s.resetTokens {
		if id == accountID {
			return token
		}
	}
	return ""
}

func (s *Store) issueResetToken(accountID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.resetTokens[token] = accountID
	return token
}

func (s *Store) consumeResetToken(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.resetTokens[token]
	if ok {
		delete(s.resetTokens, token)
	}
	return id, ok
}

func (s *Store) createCow(in models.CowInput) *models.Cow {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &models.Cow{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Photos:         models.Photos(in.Photos),
		Age:            in.Age,
		SicknessStatus: in.SicknessStatus,
		AgedStatus:     in.AgedStatus,
		AdoptionStatus: in.AdoptionStatus,
		Gender:         in.Gender,
		Description:    in.Description,
	}
	s.cows[c.ID] = c
	s.cowOrder = append(s.cowOrder, c.ID)
	return c
}

func (s *Store) getCow(id string) (*models.Cow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cows[id]
	if !ok {
		return nil, false
	}
	cp := *c
	return &cp, true
}

func (s *Store) updateCow(id string, in models.CowInput) (*models.Cow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cows[id]
	if !ok {
		return nil, false
	}
	c.Name = in.Name
	c.Photos = models.Photos(in.Photos)
	c.Age = in.Age
	c.SicknessStatus = in.SicknessStatus
	c.AgedStatus = in.AgedStatus
	c.AdoptionStatus = in.AdoptionStatus
	c.Gender = in.Gender
	c.Description = in.Description
	cp := *c
	return &cp, true
}

func (s *Store) deleteCow(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cows[id]; !ok {
		return false
	}
	delete(s.cows, id)
	for i, cid := range s.cowOrder {
		if cid == id {
			s.cowOrder = append(s.cowOrder[:i], s.cowOrder[i+1:]...)
			break
		}
	}
	return true
}

// listCows applies the query's filters and sort over a copy of the list.
func (s *Store) listCows(q models.CowQuery) []models.Cow {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Cow, 0, len(s.cowOrder))
	for _, id := range s.cowOrder {
		c := s.cows[id]
		if q.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(q.Name)) {
			continue
		}
		if q.Sick && !c.SicknessStatus {
			continue
		}
		if q.Aged && !c.AgedStatus {
			continue
		}
		if q.Adopted && !c.AdoptionStatus {
			continue
		}
		result = append(result, *c)
	}

	switch q.Sort {
	case "name":
		sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	case "age":
		sort.SliceStable(result, func(i, j int) bool { return result[i].Age < result[j].Age })
	}
	return result
}

func (s *Store) createDonation(userID string, in models.DonationInput) models.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := models.Donation{
		ID:                 uuid.NewString(),
		UserID:             userID,
		CowID:              in.CowID,
		Amount:             in.Amount,
		Tier:               in.Tier,
		DonationType:       in.DonationType,
		RecurringFrequency: in.RecurringFrequency,
		TransactionDetails: in.TransactionDetails,
		CreatedAt:          time.Now().UTC(),
	}
	s.donations = append(s.donations, d)
	return d
}

func (s *Store) donationsByUser(userID string) []models.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.Donation
	for _, d := range s.donations {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	return result
}

func (s *Store) allDonations() []models.Donation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Donation(nil), s.donations...)
}
