package session

import (
	"errors"
	"sync"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/api"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/logging"
)

// identitySlot holds the per-role state surface. The two slots are fully
// independent: a coordinator may hold a user identity, an admin identity,
// both, or neither.
type identitySlot struct {
	profile       *models.Profile
	authenticated bool
	emailVerified bool
	pendingEmail  string
}

// setProfile installs a fresh profile and marks the slot authenticated.
// The verification flag always comes from the profile itself, never from
// the other slot.
func (s *identitySlot) setProfile(p *models.Profile) {
	s.profile = p
	s.authenticated = true
	s.emailVerified = p.Verified
}

func (s *identitySlot) clear() {
	s.profile = nil
	s.authenticated = false
	s.emailVerified = false
	s.pendingEmail = ""
}

// Coordinator is the process-wide session store. Construct one per
// application (or per test) with New; there is no package-level instance.
type Coordinator struct {
	api api.Client
	log logging.Logger

	mu           sync.Mutex
	user         identitySlot
	admin        identitySlot
	loading      bool
	checkingAuth bool
	lastErr      string
	cows         []models.Cow
	donations    []models.Donation
}

// New returns a coordinator bound to the given API client and logger.
func New(client api.Client, log logging.Logger) *Coordinator {
	return &Coordinator{api: client, log: log}
}

// State is a point-in-time copy of the whole state surface.
type State struct {
	User               *models.Profile
	Admin              *models.Profile
	AuthenticatedUser  bool
	AuthenticatedAdmin bool
	EmailVerifiedUser  bool
	EmailVerifiedAdmin bool
	PendingUserEmail   string
	PendingAdminEmail  string
	Loading            bool
	CheckingAuth       bool
	Err                string
	Cows               []models.Cow
	Donations          []models.Donation
}

// State returns a snapshot. Profiles and collections are copied, so the
// snapshot stays stable while the coordinator keeps moving.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		AuthenticatedUser:  c.user.authenticated,
		AuthenticatedAdmin: c.admin.authenticated,
		EmailVerifiedUser:  c.user.emailVerified,
		EmailVerifiedAdmin: c.admin.emailVerified,
		PendingUserEmail:   c.user.pendingEmail,
		PendingAdminEmail:  c.admin.pendingEmail,
		Loading:            c.loading,
		CheckingAuth:       c.checkingAuth,
		Err:                c.lastErr,
	}
	if c.user.profile != nil {
		p := *c.user.profile
		st.User = &p
	}
	if c.admin.profile != nil {
		p := *c.admin.profile
		st.Admin = &p
	}
	if c.cows != nil {
		st.Cows = append([]models.Cow(nil), c.cows...)
	}
	if c.donations != nil {
		st.Donations = append([]models.Donation(nil), c.donations...)
	}
	return st
}

// IsAuthenticated reports whether the given identity context is
// authenticated.
func (c *Coordinator) IsAuthenticated(role models.Role) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot(role).authenticated
}

// LastError returns the shared error field ("" when clear).
func (c *Coordinator) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// IsLoading reports whether any user-initiated operation is in flight.
func (c *Coordinator) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// IsCheckingAuth reports whether a background auth check is in flight.
func (c *Coordinator) IsCheckingAuth() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checkingAuth
}

// slot returns the identity slot for a role. Callers must hold mu.
func (c *Coordinator) slot(role models.Role) *identitySlot {
	if role == models.RoleAdmin {
		return &c.admin
	}
	return &c.user
}

// begin marks the store loading and clears the shared error. Every
// user-initiated operation starts here.
func (c *Coordinator) begin() {
	c.mu.Lock()
	c.loading = true
	c.lastErr = ""
	c.mu.Unlock()
}

// fail records the failure's message in the shared error field, drops the
// loading flag, and hands the error back so the caller sees it too.
func (c *Coordinator) fail(err error, fallback string) error {
	msg := errorMessage(err, fallback)
	c.mu.Lock()
	c.loading = false
	c.lastErr = msg
	c.mu.Unlock()
	return err
}

// done drops the loading flag after a success that already merged its state
// under a separate lock.
func (c *Coordinator) done() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// errorMessage extracts the user-facing message for a failure: the server's
// envelope message when the backend supplied one, the error text otherwise,
// and the per-operation fallback when neither carries anything.
func errorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
