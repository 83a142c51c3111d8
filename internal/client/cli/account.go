package cli

import (
	"context"
	"fmt"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// UpdateProfile edits the signed-in profile. Empty answers leave the field
// unchanged. The user context only supports a password change; admins can
// also rename themselves.
func (a *App) UpdateProfile(ctx context.Context) error {
	if a.role == models.RoleUser {
		password, err := GetPassword(a.out, "Enter new password")
		if err != nil {
			return err
		}
		if password == "" {
			fmt.Fprintln(a.out, "Nothing to update")
			return nil
		}
		if err := a.coordinator.UpdateUserPassword(ctx, password); err != nil {
			a.reportError(err)
			return err
		}
		fmt.Fprintln(a.out, "Password updated")
		return nil
	}

	name, err := GetSimpleText(a.reader, "Enter new name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter new password (empty to keep)")
	if err != nil {
		return err
	}

	var in models.ProfileUpdate
	if name != "" {
		in.Name = &name
	}
	if password != "" {
		in.Password = &password
	}
	if in.Name == nil && in.Password == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	if err := a.coordinator.UpdateAdminProfile(ctx, in); err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}

// ToggleTwoFactor flips email two-factor for the active identity context.
func (a *App) ToggleTwoFactor(ctx context.Context) error {
	var err error
	if a.role == models.RoleAdmin {
		err = a.coordinator.ToggleAdminTwoFactor(ctx)
	} else {
		err = a.coordinator.ToggleUserTwoFactor(ctx)
	}
	if err != nil {
		a.reportError(err)
		return err
	}

	st := a.coordinator.State()
	p := st.User
	if a.role == models.RoleAdmin {
		p = st.Admin
	}
	if p != nil && p.TwoFactorEnabled {
		fmt.Fprintln(a.out, "Two-factor enabled")
	} else {
		fmt.Fprintln(a.out, "Two-factor disabled")
	}
	return nil
}

// DeleteAccount permanently removes the signed-in account after an explicit
// confirmation.
func (a *App) DeleteAccount(ctx context.Context) error {
	ok, err := GetYesNo(a.reader, "Delete this account permanently?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if a.role == models.RoleAdmin {
		err = a.coordinator.DeleteAdminAccount(ctx)
	} else {
		err = a.coordinator.DeleteUserAccount(ctx)
	}
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}

// VerifyEmail submits an emailed verification token.
func (a *App) VerifyEmail(ctx context.Context) error {
	token, err := GetSimpleText(a.reader, "Enter verification token", a.out)
	if err != nil {
		return err
	}

	var msg string
	if a.role == models.RoleAdmin {
		msg, err = a.coordinator.VerifyAdminEmail(ctx, token)
	} else {
		msg, err = a.coordinator.VerifyUserEmail(ctx, token)
	}
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// ResendVerification requests a fresh verification email.
func (a *App) ResendVerification(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	var msg string
	if a.role == models.RoleAdmin {
		msg, err = a.coordinator.ResendAdminVerification(ctx, email)
	} else {
		msg, err = a.coordinator.ResendUserVerification(ctx, email)
	}
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// ForgotPassword starts the password reset flow.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	var msg string
	if a.role == models.RoleAdmin {
		msg, err = a.coordinator.ForgotAdminPassword(ctx, email)
	} else {
		msg, err = a.coordinator.ForgotUserPassword(ctx, email)
	}
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// ResetPassword completes the reset flow with an emailed token.
func (a *App) ResetPassword(ctx context.Context) error {
	token, err := GetSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter new password")
	if err != nil {
		return err
	}
	confirm, err := GetPassword(a.out, "Confirm new password")
	if err != nil {
		return err
	}

	var msg string
	if a.role == models.RoleAdmin {
		msg, err = a.coordinator.ResetAdminPassword(ctx, token, password, confirm)
	} else {
		msg, err = a.coordinator.ResetUserPassword(ctx, token, password, confirm)
	}
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// VerificationStatus polls the server for the email verification flag.
func (a *App) VerificationStatus(ctx context.Context) error {
	var err error
	if a.role == models.RoleAdmin {
		err = a.coordinator.CheckAdminVerificationStatus(ctx)
	} else {
		err = a.coordinator.CheckUserVerificationStatus(ctx)
	}
	if err != nil {
		fmt.Fprintln(a.out, "Could not check verification status")
		return err
	}

	st := a.coordinator.State()
	verified := st.EmailVerifiedUser
	if a.role == models.RoleAdmin {
		verified = st.EmailVerifiedAdmin
	}
	if verified {
		fmt.Fprintln(a.out, "Email is verified")
	} else {
		fmt.Fprintln(a.out, "Email is not verified yet")
	}
	return nil
}
