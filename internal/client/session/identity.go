package session

import (
	"context"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// LoginResult tells the caller whether the login completed or a second
// factor is still required (navigate to the OTP screen in that case).
type LoginResult struct {
	TwoFactorRequired bool
}

// ---- generic identity family ----
//
// The user and admin operation sets are structurally identical, so the
// logic lives here once, parameterized by role. The exported wrappers
// below are the public surface.

func (c *Coordinator) login(ctx context.Context, role models.Role, email, password string) (LoginResult, error) {
	c.begin()

	res, err := c.api.Login(ctx, role, email, password)
	if err != nil {
		return LoginResult{}, c.fail(err, "error logging in "+string(role))
	}

	c.mu.Lock()
	slot := c.slot(role)
	if res.TwoFactorRequired {
		// Password accepted, session not established: remember the email
		// for the OTP step and nothing else.
		slot.pendingEmail = email
	} else {
		slot.setProfile(res.Profile)
		slot.pendingEmail = ""
	}
	c.loading = false
	c.mu.Unlock()

	c.log.Debug(ctx, "login settled", "role", role, "twoFactorRequired", res.TwoFactorRequired)
	return LoginResult{TwoFactorRequired: res.TwoFactorRequired}, nil
}

func (c *Coordinator) verifyOTP(ctx context.Context, role models.Role, otp string) error {
	c.begin()

	c.mu.Lock()
	slot := c.slot(role)
	email := slot.pendingEmail
	if slot.profile != nil && slot.profile.Email != "" {
		email = slot.profile.Email
	}
	c.mu.Unlock()

	if email == "" {
		// Local precondition, raised before any network call; recorded and
		// returned like any other failure.
		return c.fail(ErrNoPendingEmail, "error verifying otp")
	}

	p, err := c.api.VerifyOTP(ctx, role, email, otp)
	if err != nil {
		// The pending email survives a failed verify so the user can retry.
		return c.fail(err, "error verifying otp")
	}

	c.mu.Lock()
	slot = c.slot(role)
	slot.setProfile(p)
	slot.pendingEmail = ""
	c.loading = false
	c.mu.Unlock()
	return nil
}

// logout clears the identity slot eagerly: once logout was requested the
// local session is over, whether or not the backend call succeeded. The
// backend failure is still recorded and returned.
func (c *Coordinator) logout(ctx context.Context, role models.Role) error {
	c.begin()

	err := c.api.Logout(ctx, role)

	c.mu.Lock()
	c.slot(role).clear()
	c.loading = false
	if err != nil {
		c.lastErr = errorMessage(err, "error logging out "+string(role))
	}
	c.mu.Unlock()

	return err
}

// checkAuth is the silent session probe run at application start. It flips
// checkingAuth instead of loading so it never visually blocks
// user-initiated actions, and its failure clears the slot without touching
// the shared error field.
func (c *Coordinator) checkAuth(ctx context.Context, role models.Role) error {
	c.mu.Lock()
	c.checkingAuth = true
	c.mu.Unlock()

	p, err := c.api.ValidateToken(ctx, role)

	c.mu.Lock()
	slot := c.slot(role)
	if err != nil {
		slot.profile = nil
		slot.authenticated = false
		slot.emailVerified = false
	} else {
		slot.setProfile(p)
	}
	c.checkingAuth = false
	c.mu.Unlock()

	return err
}

// checkProfile re-fetches the profile of an already-authenticated identity.
// A failure means the session was revoked server-side since the last check,
// so the slot is cleared; like checkAuth this is a silent outcome.
func (c *Coordinator) checkProfile(ctx context.Context, role models.Role) error {
	p, err := c.api.Profile(ctx, role)

	c.mu.Lock()
	slot := c.slot(role)
	if err != nil {
		slot.profile = nil
		slot.authenticated = false
		slot.emailVerified = false
	} else {
		slot.setProfile(p)
	}
	c.mu.Unlock()

	return err
}

func (c *Coordinator) updateProfile(ctx context.Context, role models.Role, in models.ProfileUpdate, fallback string) error {
	c.begin()
	if err := c.api.UpdateProfile(ctx, role, in); err != nil {
		return c.fail(err, fallback)
	}
	// Passwords are never cached, so there is nothing to merge.
	c.done()
	return nil
}

// toggleTwoFactor picks the enable or disable endpoint from the in-memory
// profile and optimistically flips the local flag on success. No refetch;
// if two sessions race, local state can drift from server truth until the
// next profile check.
func (c *Coordinator) toggleTwoFactor(ctx context.Context, role models.Role) error {
	c.begin()

	c.mu.Lock()
	slot := c.slot(role)
	enabled := slot.profile != nil && slot.profile.TwoFactorEnabled
	c.mu.Unlock()

	target := !enabled
	if err := c.api.SetTwoFactor(ctx, role, target); err != nil {
		return c.fail(err, "error toggling two-factor preferences")
	}

	c.mu.Lock()
	slot = c.slot(role)
	if slot.profile != nil {
		slot.profile.TwoFactorEnabled = target
	}
	c.loading = false
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) deleteAccount(ctx context.Context, role models.Role) error {
	c.begin()
	if err := c.api.DeleteAccount(ctx, role); err != nil {
		return c.fail(err, "error deleting account")
	}

	c.mu.Lock()
	c.slot(role).clear()
	c.loading = false
	c.mu.Unlock()
	return nil
}

func (c *Coordinator) verifyEmail(ctx context.Context, role models.Role, token string) (string, error) {
	c.begin()

	verified, msg, err := c.api.VerifyEmail(ctx, role, token)
	if err != nil {
		return "", c.fail(err, "error verifying email")
	}

	c.mu.Lock()
	slot := c.slot(role)
	slot.emailVerified = verified
	if slot.profile != nil {
		slot.profile.Verified = verified
	}
	c.loading = false
	c.mu.Unlock()
	return msg, nil
}

func (c *Coordinator) resendVerification(ctx context.Context, role models.Role, email string) (string, error) {
	c.begin()
	msg, err := c.api.ResendVerification(ctx, role, email)
	if err != nil {
		return "", c.fail(err, "error resending verification email")
	}
	c.done()
	return msg, nil
}

func (c *Coordinator) forgotPassword(ctx context.Context, role models.Role, email string) (string, error) {
	c.begin()
	msg, err := c.api.ForgotPassword(ctx, role, email)
	if err != nil {
		return "", c.fail(err, "error requesting password reset")
	}
	c.done()
	return msg, nil
}

func (c *Coordinator) resetPassword(ctx context.Context, role models.Role, token, newPassword, confirmPassword string) (string, error) {
	c.begin()
	msg, err := c.api.ResetPassword(ctx, role, token, newPassword, confirmPassword)
	if err != nil {
		return "", c.fail(err, "error resetting password")
	}
	c.done()
	return msg, nil
}

// checkVerificationStatus polls the verification flag. Silent on failure:
// the flag drops to false, the error field stays clear.
func (c *Coordinator) checkVerificationStatus(ctx context.Context, role models.Role) error {
	verified, err := c.api.VerificationStatus(ctx, role)

	c.mu.Lock()
	if err != nil {
		c.slot(role).emailVerified = false
	} else {
		c.slot(role).emailVerified = verified
	}
	c.mu.Unlock()

	return err
}

// ---- user family ----

// RegisterUser creates a user account and adopts the returned profile. The
// coordinator does not validate the fields; validation failures come back
// from the backend and pass through.
func (c *Coordinator) RegisterUser(ctx context.Context, in models.RegisterUserInput) (*models.Profile, error) {
	c.begin()
	p, err := c.api.RegisterUser(ctx, in)
	if err != nil {
		return nil, c.fail(err, "error registering user")
	}

	c.mu.Lock()
	c.user.setProfile(p)
	c.loading = false
	c.mu.Unlock()
	return p, nil
}

// LoginUser authenticates the user context. When the account has a second
// factor enabled the result reports TwoFactorRequired and the identity is
// not yet authenticated; complete the flow with VerifyUserOTP.
func (c *Coordinator) LoginUser(ctx context.Context, email, password string) (LoginResult, error) {
	return c.login(ctx, models.RoleUser, email, password)
}

// VerifyUserOTP completes a pending two-factor login for the user context.
func (c *Coordinator) VerifyUserOTP(ctx context.Context, otp string) error {
	return c.verifyOTP(ctx, models.RoleUser, otp)
}

// LogoutUser ends the user session. Local state clears eagerly; a backend
// failure is recorded and returned but cannot keep the user logged in.
func (c *Coordinator) LogoutUser(ctx context.Context) error {
	return c.logout(ctx, models.RoleUser)
}

// CheckUserAuth silently probes the stored user session.
func (c *Coordinator) CheckUserAuth(ctx context.Context) error {
	return c.checkAuth(ctx, models.RoleUser)
}

// CheckUserProfile re-fetches the user profile.
func (c *Coordinator) CheckUserProfile(ctx context.Context) error {
	return c.checkProfile(ctx, models.RoleUser)
}

// UpdateUserPassword changes the user's password. Nothing is cached.
func (c *Coordinator) UpdateUserPassword(ctx context.Context, newPassword string) error {
	return c.updateProfile(ctx, models.RoleUser, models.ProfileUpdate{Password: &newPassword}, "error updating password")
}

// ToggleUserTwoFactor flips the user's 2FA setting.
func (c *Coordinator) ToggleUserTwoFactor(ctx context.Context) error {
	return c.toggleTwoFactor(ctx, models.RoleUser)
}

// DeleteUserAccount destroys the user account and clears the slot.
func (c *Coordinator) DeleteUserAccount(ctx context.Context) error {
	return c.deleteAccount(ctx, models.RoleUser)
}

// VerifyUserEmail consumes an email-verification token.
func (c *Coordinator) VerifyUserEmail(ctx context.Context, token string) (string, error) {
	return c.verifyEmail(ctx, models.RoleUser, token)
}

// ResendUserVerification asks the backend to resend the verification email.
func (c *Coordinator) ResendUserVerification(ctx context.Context, email string) (string, error) {
	return c.resendVerification(ctx, models.RoleUser, email)
}

// ForgotUserPassword requests a password-reset token for the email.
func (c *Coordinator) ForgotUserPassword(ctx context.Context, email string) (string, error) {
	return c.forgotPassword(ctx, models.RoleUser, email)
}

// ResetUserPassword consumes a reset token.
func (c *Coordinator) ResetUserPassword(ctx context.Context, token, newPassword, confirmPassword string) (string, error) {
	return c.resetPassword(ctx, models.RoleUser, token, newPassword, confirmPassword)
}

// CheckUserVerificationStatus polls the user verification flag.
func (c *Coordinator) CheckUserVerificationStatus(ctx context.Context) error {
	return c.checkVerificationStatus(ctx, models.RoleUser)
}

// ---- admin family ----

// RegisterAdmin creates an admin account (gated by the provisioning key)
// and adopts the returned profile into the admin slot.
func (c *Coordinator) RegisterAdmin(ctx context.Context, in models.RegisterAdminInput) (*models.Profile, error) {
	c.begin()
	p, err := c.api.RegisterAdmin(ctx, in)
	if err != nil {
		return nil, c.fail(err, "error registering admin")
	}

	c.mu.Lock()
	c.admin.setProfile(p)
	c.loading = false
	c.mu.Unlock()
	return p, nil
}

// LoginAdmin authenticates the admin context; see LoginUser for the
// two-factor branch.
func (c *Coordinator) LoginAdmin(ctx context.Context, email, password string) (LoginResult, error) {
	return c.login(ctx, models.RoleAdmin, email, password)
}

// VerifyAdminOTP completes a pending two-factor login for the admin context.
func (c *Coordinator) VerifyAdminOTP(ctx context.Context, otp string) error {
	return c.verifyOTP(ctx, models.RoleAdmin, otp)
}

// LogoutAdmin ends the admin session, leaving the user slot untouched.
func (c *Coordinator) LogoutAdmin(ctx context.Context) error {
	return c.logout(ctx, models.RoleAdmin)
}

// CheckAdminAuth silently probes the stored admin session.
func (c *Coordinator) CheckAdminAuth(ctx context.Context) error {
	return c.checkAuth(ctx, models.RoleAdmin)
}

// CheckAdminProfile re-fetches the admin profile.
func (c *Coordinator) CheckAdminProfile(ctx context.Context) error {
	return c.checkProfile(ctx, models.RoleAdmin)
}

// UpdateAdminProfile mutates admin profile fields (may include a password).
func (c *Coordinator) UpdateAdminProfile(ctx context.Context, in models.ProfileUpdate) error {
	return c.updateProfile(ctx, models.RoleAdmin, in, "error updating admin profile")
}

// ToggleAdminTwoFactor flips the admin's 2FA setting; an absent flag counts
// as disabled.
func (c *Coordinator) ToggleAdminTwoFactor(ctx context.Context) error {
	return c.toggleTwoFactor(ctx, models.RoleAdmin)
}

// DeleteAdminAccount destroys the admin account and clears the slot.
func (c *Coordinator) DeleteAdminAccount(ctx context.Context) error {
	return c.deleteAccount(ctx, models.RoleAdmin)
}

// VerifyAdminEmail consumes an email-verification token for the admin.
func (c *Coordinator) VerifyAdminEmail(ctx context.Context, token string) (string, error) {
	return c.verifyEmail(ctx, models.RoleAdmin, token)
}

// ResendAdminVerification resends the admin verification email.
func (c *Coordinator) ResendAdminVerification(ctx context.Context, email string) (string, error) {
	return c.resendVerification(ctx, models.RoleAdmin, email)
}

// ForgotAdminPassword requests a password-reset token for the admin email.
func (c *Coordinator) ForgotAdminPassword(ctx context.Context, email string) (string, error) {
	return c.forgotPassword(ctx, models.RoleAdmin, email)
}

// ResetAdminPassword consumes an admin reset token.
func (c *Coordinator) ResetAdminPassword(ctx context.Context, token, newPassword, confirmPassword string) (string, error) {
	return c.resetPassword(ctx, models.RoleAdmin, token, newPassword, confirmPassword)
}

// CheckAdminVerificationStatus polls the admin verification flag.
func (c *Coordinator) CheckAdminVerificationStatus(ctx context.Context) error {
	return c.checkVerificationStatus(ctx, models.RoleAdmin)
}
