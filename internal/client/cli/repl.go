package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	setRole(role models.Role)
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	ToggleTwoFactor(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	VerifyEmail(ctx context.Context) error
	ResendVerification(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	VerificationStatus(ctx context.Context) error
	Cows(ctx context.Context) error
	Cow(ctx context.Context) error
	AddCow(ctx context.Context) error
	EditCow(ctx context.Context) error
	RemoveCow(ctx context.Context) error
	UploadPhoto(ctx context.Context) error
	Donate(ctx context.Context) error
	History(ctx context.Context) error
	AllDonations(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
//
// "user" and "admin" switch the identity context the account commands act
// on; the two sessions are independent, so switching never logs anything
// out. Errors returned by handlers are ignored here; handlers print their
// own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, w io.Writer) {
	for {
		fmt.Fprintf(w, "kam %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Account: whoami, update, 2fa, verify-email, resend, status, logout, delete-account")
			} else {
				fmt.Fprintln(w, "Account: register, login, forgot, reset")
			}
			fmt.Fprintln(w, "Context: user, admin")
			fmt.Fprintln(w, "Cows: cows, cow, addcow, editcow, removecow, upload")
			fmt.Fprintln(w, "Donations: donate, history, donations")
			fmt.Fprintln(w, "Other: help, exit")

		case "user":
			a.setRole(models.RoleUser)
		case "admin":
			a.setRole(models.RoleAdmin)

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.Whoami(ctx)
		case "update":
			_ = a.UpdateProfile(ctx)
		case "2fa":
			_ = a.ToggleTwoFactor(ctx)
		case "delete-account":
			_ = a.DeleteAccount(ctx)
		case "verify-email":
			_ = a.VerifyEmail(ctx)
		case "resend":
			_ = a.ResendVerification(ctx)
		case "forgot":
			_ = a.ForgotPassword(ctx)
		case "reset":
			_ = a.ResetPassword(ctx)
		case "status":
			_ = a.VerificationStatus(ctx)

		case "cows":
			_ = a.Cows(ctx)
		case "cow":
			_ = a.Cow(ctx)
		case "addcow":
			_ = a.AddCow(ctx)
		case "editcow":
			_ = a.EditCow(ctx)
		case "removecow":
			_ = a.RemoveCow(ctx)
		case "upload":
			_ = a.UploadPhoto(ctx)

		case "donate":
			_ = a.Donate(ctx)
		case "history":
			_ = a.History(ctx)
		case "donations":
			_ = a.AllDonations(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
