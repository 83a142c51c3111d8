package api

import (
	"context"
	"time"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// LoginResult is the binary outcome of a login call: either the session is
// established and Profile is set, or the account requires a second factor
// and only TwoFactorRequired is true.
type LoginResult struct {
	TwoFactorRequired bool
	Profile           *models.Profile
}

// Client is the transport contract for the Kamdhenuseva backend. Identity
// operations take the role they act on; the two contexts use disjoint
// endpoint prefixes and disjoint session cookies.
type Client interface {
	Close() error

	RegisterUser(ctx context.Context, in models.RegisterUserInput) (*models.Profile, error)
	RegisterAdmin(ctx context.Context, in models.RegisterAdminInput) (*models.Profile, error)
	Login(ctx context.Context, role models.Role, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, role models.Role) error
	ValidateToken(ctx context.Context, role models.Role) (*models.Profile, error)
	Profile(ctx context.Context, role models.Role) (*models.Profile, error)
	UpdateProfile(ctx context.Context, role models.Role, in models.ProfileUpdate) error
	DeleteAccount(ctx context.Context, role models.Role) error
	VerifyOTP(ctx context.Context, role models.Role, email, otp string) (*models.Profile, error)
	VerificationStatus(ctx context.Context, role models.Role) (bool, error)
	VerifyEmail(ctx context.Context, role models.Role, token string) (bool, string, error)
	ResendVerification(ctx context.Context, role models.Role, email string) (string, error)
	ForgotPassword(ctx context.Context, role models.Role, email string) (string, error)
	ResetPassword(ctx context.Context, role models.Role, token, newPassword, confirmPassword string) (string, error)
	SetTwoFactor(ctx context.Context, role models.Role, enable bool) error

	ListCows(ctx context.Context, q *models.CowQuery) ([]models.Cow, error)
	GetCow(ctx context.Context, id string) (*models.Cow, error)
	CreateCow(ctx context.Context, in models.CowInput) (*models.Cow, error)
	UpdateCow(ctx context.Context, id string, in models.CowInput) (*models.Cow, error)
	DeleteCow(ctx context.Context, id string) error

	CreateDonation(ctx context.Context, in models.DonationInput) (*models.Donation, error)
	DonationHistory(ctx context.Context) ([]models.Donation, error)
	AllDonations(ctx context.Context) ([]models.Donation, error)

	// SessionExpiry reports when the stored session cookie for the role
	// expires, if one is present and readable.
	SessionExpiry(role models.Role) (time.Time, bool)
}
