package cli

import (
	"context"
	"fmt"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/session"
)

// Register creates an account in the active identity context. Admin
// registration additionally asks for the provisioning key.
func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	var profile *models.Profile
	if a.role == models.RoleAdmin {
		adminKey, err := GetPassword(a.out, "Enter admin key")
		if err != nil {
			return err
		}
		profile, err = a.coordinator.RegisterAdmin(ctx, models.RegisterAdminInput{
			Name:     name,
			Email:    email,
			Password: password,
			AdminKey: adminKey,
		})
		if err != nil {
			a.reportError(err)
			return err
		}
	} else {
		dob, err := GetSimpleText(a.reader, "Enter date of birth (YYYY-MM-DD, optional)", a.out)
		if err != nil {
			return err
		}
		profile, err = a.coordinator.RegisterUser(ctx, models.RegisterUserInput{
			Name:            name,
			Email:           email,
			Password:        password,
			ConfirmPassword: password,
			DateOfBirth:     dob,
		})
		if err != nil {
			a.reportError(err)
			return err
		}
	}

	fmt.Fprintf(a.out, "Registered %s. Check %s for a verification link.\n", profile.Name, profile.Email)
	return nil
}

// Login authenticates the active identity context. When the account has
// two-factor enabled the session is not established until the OTP step
// succeeds.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	var result session.LoginResult
	if a.role == models.RoleAdmin {
		result, err = a.coordinator.LoginAdmin(ctx, email, password)
	} else {
		result, err = a.coordinator.LoginUser(ctx, email, password)
	}
	if err != nil {
		a.reportError(err)
		return err
	}

	if result.TwoFactorRequired {
		otp, err := GetSimpleText(a.reader, "Enter the code sent to your email", a.out)
		if err != nil {
			return err
		}
		if a.role == models.RoleAdmin {
			err = a.coordinator.VerifyAdminOTP(ctx, otp)
		} else {
			err = a.coordinator.VerifyUserOTP(ctx, otp)
		}
		if err != nil {
			a.reportError(err)
			return err
		}
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout ends the session in the active identity context. The local state
// clears even when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	var err error
	if a.role == models.RoleAdmin {
		err = a.coordinator.LogoutAdmin(ctx)
	} else {
		err = a.coordinator.LogoutUser(ctx)
	}
	if err != nil {
		a.reportError(err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Whoami refreshes and prints the profile of the active identity context.
func (a *App) Whoami(ctx context.Context) error {
	var err error
	if a.role == models.RoleAdmin {
		err = a.coordinator.CheckAdminProfile(ctx)
	} else {
		err = a.coordinator.CheckUserProfile(ctx)
	}
	if err != nil {
		fmt.Fprintln(a.out, "Not signed in")
		return err
	}

	st := a.coordinator.State()
	p := st.User
	verified := st.EmailVerifiedUser
	if a.role == models.RoleAdmin {
		p = st.Admin
		verified = st.EmailVerifiedAdmin
	}
	if p == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}

	fmt.Fprintf(a.out, "%s <%s>\n", p.Name, p.Email)
	fmt.Fprintf(a.out, "  verified: %v, two-factor: %v\n", verified, p.TwoFactorEnabled)
	if p.DateOfBirth != "" {
		fmt.Fprintf(a.out, "  date of birth: %s\n", p.DateOfBirth)
	}
	if exp, ok := a.apiClient.SessionExpiry(a.role); ok {
		fmt.Fprintf(a.out, "  session expires: %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
