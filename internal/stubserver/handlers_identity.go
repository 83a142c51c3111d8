package stubserver

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

// newOTP returns a random 6-digit code.
func newOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

func (s *Server) handleRegister(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if role == models.RoleAdmin {
			var in models.RegisterAdminInput
			if err := decodeBody(r, &in); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			if in.AdminKey != s.config.AdminKey {
				writeError(w, http.StatusForbidden, "Invalid admin key")
				return
			}
			s.register(w, r, role, in.Email, in.Name, in.Password, "")
			return
		}

		var in models.RegisterUserInput
		if err := decodeBody(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
			writeError(w, http.StatusBadRequest, "Passwords do not match")
			return
		}
		s.register(w, r, role, in.Email, in.Name, in.Password, in.DateOfBirth)
	}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request, role models.Role, email, name, password, dob string) {
	if email == "" || password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	hash, err := hashPassword(password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error registering account")
		return
	}

	a, ok := s.store.createAccount(role, email, name, hash, dob)
	if !ok {
		writeError(w, http.StatusConflict, "An account with this email already exists")
		return
	}

	token := s.store.issueVerifyToken(a.ID)
	s.log.Info(r.Context(), "verification token issued", "role", role, "email", email, "token", token)

	writeData(w, http.StatusCreated, a.profile(), "Registered successfully. Please verify your email.")
}

func (s *Server) handleLogin(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		a, ok := s.store.findByEmail(role, in.Email)
		if !ok || !verifyPassword(in.Password, a.PasswordHash) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		if a.TwoFactorEnabled {
			code := newOTP()
			s.store.setOTP(role, a.Email, code)
			s.log.Info(r.Context(), "otp issued", "role", role, "email", a.Email, "otp", code)
			writeData(w, http.StatusOK, map[string]bool{"twoFactorRequired": true}, "A verification code has been sent to your email")
			return
		}

		if err := s.setSessionCookie(w, a); err != nil {
			writeError(w, http.StatusInternalServerError, "Error creating session")
			return
		}
		writeData(w, http.StatusOK, a.profile(), "Logged in successfully")
	}
}

func (s *Server) handleVerifyOTP(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email string `json:"email"`
			OTP   string `json:"otp"`
		}
		if err := decodeBody(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		a, ok := s.store.findByEmail(role, in.Email)
		if !ok || !s.store.consumeOTP(role, in.Email, in.OTP) {
			writeError(w, http.StatusUnauthorized, "Invalid or expired code")
			return
		}

		if err := s.setSessionCookie(w, a); err != nil {
			writeError(w, http.StatusInternalServerError, "Error creating session")
			return
		}
		writeData(w, http.StatusOK, a.profile(), "Logged in successfully")
	}
}

func (s *Server) handleLogout(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		clearSessionCookie(w, role)
		writeData(w, http.StatusOK, map[string]bool{"success": true}, "Logged out successfully")
	}
}

func (s *Server) handleProfile(models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, accountFrom(r).profile(), "")
	}
}

func (s *Server) handleUpdateProfile(models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.ProfileUpdate
		if err := decodeBody(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		a := accountFrom(r)
		if in.Password != nil {
			hash, err := hashPassword(*in.Password)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Error updating profile")
				return
			}
			s.store.update(a, func(a *account) { a.PasswordHash = hash })
		}
		s.store.update(a, func(a *account) {
			if in.Name != nil {
				a.Name = *in.Name
			}
			if in.DateOfBirth != nil {
				a.DateOfBirth = *in.DateOfBirth
			}
		})

		writeData(w, http.StatusOK, a.profile(), "Profile updated successfully")
	}
}

func (s *Server) handleDeleteAccount(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := accountFrom(r)
		if !s.store.deleteAccount(role, a.ID) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		clearSessionCookie(w, role)
		writeData(w, http.StatusOK, map[string]bool{"success": true}, "Account deleted successfully")
	}
}

func (s *Server) handleVerificationStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := accountFrom(r)
		writeData(w, http.StatusOK, map[string]bool{"verified": a.Verified}, "")
	}
}

func (s *Server) handleVerifyEmail(models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		id, ok := s.store.consumeVerifyToken(token)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid or expired verification token")
			return
		}

		// The token encodes the account, not the role; look in both maps.
		for _, role := range []models.Role{models.RoleUser, models.RoleAdmin} {
			if a, found := s.store.findByID(role, id); found {
				s.store.update(a, func(a *account) { a.Verified = true })
				writeData(w, http.StatusOK, map[string]bool{"verified": true}, "Email verified successfully")
				return
			}
		}
		writeError(w, http.StatusNotFound, "Account not found")
	}
}

func (s *Server) handleResendVerification(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email string `json:"email"`
		}
		if err := decodeBody(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		// Do not leak whether the email exists.
		if a, ok := s.store.findByEmail(role, in.Email); ok && !a.Verified {
			token := s.store.issueVerifyToken(a.ID)
			s.log.Info(r.Context(), "verification token issued", "role", role, "email", in.Email, "token", token)
		}
		writeData(w, http.StatusOK, map[string]bool{"sent": true}, "If the email exists, a verification link has been sent")
	}
}

func (s *Server) handleForgotPassword(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email string `json:"email"`
		}
		if err := decodeBody(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if a, ok := s.store.findByEmail(role, in.Email); ok {
			token := s.store.issueResetToken(a.ID)
			s.log.Info(r.Context(), "reset token issued", "role", role, "email", in.Email, "token", token)
		}
		writeData(w, http.StatusOK, map[string]bool{"sent": true}, "If the email exists, a reset link has been sent")
	}
}

func (s *Server) handleResetPassword(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Token           string `json:"token"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirmPassword"`
		}
		if err := decodeBody(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if in.Password == "" || in.Password != in.ConfirmPassword {
			writeError(w, http.StatusBadRequest, "Passwords do not match")
			return
		}

		id, ok := s.store.consumeResetToken(in.Token)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		a, found := s.store.findByID(role, id)
		if !found {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}

		hash, err := hashPassword(in.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Error resetting password")
			return
		}
		s.store.update(a, func(a *account) { a.PasswordHash = hash })
		writeData(w, http.StatusOK, map[string]bool{"success": true}, "Password reset successfully")
	}
}

func (s *Server) handleSetTwoFactor(enable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := accountFrom(r)
		s.store.update(a, func(a *account) { a.TwoFactorEnabled = enable })

		msg := "Two-factor authentication disabled"
		if enable {
			msg = "Two-factor authentication enabled"
		}
		writeData(w, http.StatusOK, a.profile(), msg)
	}
}
