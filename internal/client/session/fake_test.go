package session

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/api"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/logging"
)

// fakeClient implements api.Client for coordinator unit tests. Behavior is
// configured per call through the *Ret/*Err fields; arguments are recorded
// in the Last* fields for assertions.
type fakeClient struct {
	CloseErr error

	RegisterUserRet  *models.Profile
	RegisterUserErr  error
	RegisterAdminRet *models.Profile
	RegisterAdminErr error

	LoginRet *api.LoginResult
	LoginErr error

	LogoutErr error

	ValidateTokenRet *models.Profile
	ValidateTokenErr error

	ProfileRet   *models.Profile
	ProfileErr   error
	ProfileCalls int

	UpdateProfileErr error
	DeleteAccountErr error

	VerifyOTPRet *models.Profile
	VerifyOTPErr error

	VerificationStatusRet bool
	VerificationStatusErr error

	VerifyEmailRet bool
	VerifyEmailMsg string
	VerifyEmailErr error

	ResendVerificationMsg string
	ResendVerificationErr error
	ForgotPasswordMsg     string
	ForgotPasswordErr     error
	ResetPasswordMsg      string
	ResetPasswordErr      error

	SetTwoFactorErr error

	ListCowsRet []models.Cow
	ListCowsErr error
	GetCowRet   *models.Cow
	GetCowErr   error
	CreateCowRet *models.Cow
	CreateCowErr error
	UpdateCowRet *models.Cow
	UpdateCowErr error
	DeleteCowErr error

	CreateDonationRet *models.Donation
	CreateDonationErr error
	HistoryRet        []models.Donation
	HistoryErr        error
	AllDonationsRet   []models.Donation
	AllDonationsErr   error

	LastLoginRole     models.Role
	LastLoginEmail    string
	LastLoginPassword string
	LastLogoutRole    models.Role
	LastVerifyRole    models.Role
	LastVerifyEmail   string
	LastVerifyOTP     string
	LastUpdateRole    models.Role
	LastUpdateInput   models.ProfileUpdate
	LastSetTwoFactor  []bool
	LastCowQuery      *models.CowQuery
	LastCowID         string
	LastCowInput      models.CowInput
	LastDonationInput models.DonationInput
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) RegisterUser(ctx context.Context, in models.RegisterUserInput) (*models.Profile, error) {
	return f.RegisterUserRet, f.RegisterUserErr
}

func (f *fakeClient) RegisterAdmin(ctx context.Context, in models.RegisterAdminInput) (*models.Profile, error) {
	return f.RegisterAdminRet, f.RegisterAdminErr
}

func (f *fakeClient) Login(ctx context.Context, role models.Role, email, password string) (*api.LoginResult, error) {
	f.LastLoginRole = role
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Logout(ctx context.Context, role models.Role) error {
	f.LastLogoutRole = role
	return f.LogoutErr
}

func (f *fakeClient) ValidateToken(ctx context.Context, role models.Role) (*models.Profile, error) {
	return f.ValidateTokenRet, f.ValidateTokenErr
}

func (f *fakeClient) Profile(ctx context.Context, role models.Role) (*models.Profile, error) {
	f.ProfileCalls++
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, role models.Role, in models.ProfileUpdate) error {
	f.LastUpdateRole = role
	f.LastUpdateInput = in
	return f.UpdateProfileErr
}

func (f *fakeClient) DeleteAccount(ctx context.Context, role models.Role) error {
	return f.DeleteAccountErr
}

func (f *fakeClient) VerifyOTP(ctx context.Context, role models.Role, email, otp string) (*models.Profile, error) {
	f.LastVerifyRole = role
	f.LastVerifyEmail = email
	f.LastVerifyOTP = otp
	return f.VerifyOTPRet, f.VerifyOTPErr
}

func (f *fakeClient) VerificationStatus(ctx context.Context, role models.Role) (bool, error) {
	return f.VerificationStatusRet, f.VerificationStatusErr
}

func (f *fakeClient) VerifyEmail(ctx context.Context, role models.Role, token string) (bool, string, error) {
	return f.VerifyEmailRet, f.VerifyEmailMsg, f.VerifyEmailErr
}

func (f *fakeClient) ResendVerification(ctx context.Context, role models.Role, email string) (string, error) {
	return f.ResendVerificationMsg, f.ResendVerificationErr
}

func (f *fakeClient) ForgotPassword(ctx context.Context, role models.Role, email string) (string, error) {
	return f.ForgotPasswordMsg, f.ForgotPasswordErr
}

func (f *fakeClient) ResetPassword(ctx context.Context, role models.Role, token, newPassword, confirmPassword string) (string, error) {
	return f.ResetPasswordMsg, f.ResetPasswordErr
}

func (f *fakeClient) SetTwoFactor(ctx context.Context, role models.Role, enable bool) error {
	f.LastSetTwoFactor = append(f.LastSetTwoFactor, enable)
	return f.SetTwoFactorErr
}

func (f *fakeClient) ListCows(ctx context.Context, q *models.CowQuery) ([]models.Cow, error) {
	f.LastCowQuery = q
	return f.ListCowsRet, f.ListCowsErr
}

func (f *fakeClient) GetCow(ctx context.Context, id string) (*models.Cow, error) {
	f.LastCowID = id
	return f.GetCowRet, f.GetCowErr
}

func (f *fakeClient) CreateCow(ctx context.Context, in models.CowInput) (*models.Cow, error) {
	f.LastCowInput = in
	return f.CreateCowRet, f.CreateCowErr
}

func (f *fakeClient) UpdateCow(ctx context.Context, id string, in models.CowInput) (*models.Cow, error) {
	f.LastCowID = id
	f.LastCowInput = in
	return f.UpdateCowRet, f.UpdateCowErr
}

func (f *fakeClient) DeleteCow(ctx context.Context, id string) error {
	f.LastCowID = id
	return f.DeleteCowErr
}

func (f *fakeClient) CreateDonation(ctx context.Context, in models.DonationInput) (*models.Donation, error) {
	f.LastDonationInput = in
	return f.CreateDonationRet, f.CreateDonationErr
}

func (f *fakeClient) DonationHistory(ctx context.Context) ([]models.Donation, error) {
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeClient) AllDonations(ctx context.Context) ([]models.Donation, error) {
	return f.AllDonationsRet, f.AllDonationsErr
}

func (f *fakeClient) SessionExpiry(role models.Role) (time.Time, bool) {
	return time.Time{}, false
}

func newTestCoordinator(fc api.Client) *Coordinator {
	return New(fc, logging.NewText(io.Discard, slog.LevelError))
}
