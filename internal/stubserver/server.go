package stubserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/logging"
)

// Server wires the store, the token service and the routes.
type Server struct {
	config *Config
	store  *Store
	tokens *tokenService
	log    logging.Logger
}

func NewServer(cfg *Config, log logging.Logger) *Server {
	return &Server{
		config: cfg,
		store:  NewStore(),
		tokens: newTokenService(cfg.JWTSecret, cfg.TokenTTL),
		log:    log,
	}
}

// Store exposes the backing store so tests can read OTP codes and seeded
// state.
func (s *Server) Store() *Store {
	return s.store
}

// APIPrefix is where the REST contract is mounted, matching the path the
// client's default base URL carries.
const APIPrefix = "/api/v1"

// Router builds the chi router with every endpoint the client speaks,
// mounted under APIPrefix.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"status": "ok"}, "")
	})

	r.Route(APIPrefix, s.apiRoutes)

	return r
}

func (s *Server) apiRoutes(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		s.identityRoutes(r, models.RoleUser)
	})

	r.Route("/admin", func(r chi.Router) {
		s.identityRoutes(r, models.RoleAdmin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth(models.RoleAdmin))
			r.Post("/cows", s.handleCreateCow)
			r.Put("/cows/{id}", s.handleUpdateCow)
			r.Delete("/cows/{id}", s.handleDeleteCow)
		})
	})

	r.Get("/cows", s.handleListCows)
	r.Get("/cows/{id}", s.handleGetCow)

	r.Route("/donations", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth(models.RoleUser))
			r.Post("/", s.handleCreateDonation)
			r.Get("/history", s.handleDonationHistory)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth(models.RoleAdmin))
			r.Get("/admin/all", s.handleAllDonations)
		})
	})
}

func (s *Server) identityRoutes(r chi.Router, role models.Role) {
	r.Post("/register", s.handleRegister(role))
	r.Post("/login", s.handleLogin(role))
	r.Post("/logout", s.handleLogout(role))
	r.Post("/verify-otp", s.handleVerifyOTP(role))
	r.Get("/verify-email", s.handleVerifyEmail(role))
	r.Post("/resend-verification", s.handleResendVerification(role))
	r.Post("/forgot-password", s.handleForgotPassword(role))
	r.Post("/reset-password", s.handleResetPassword(role))

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth(role))
		r.Get("/validate-token", s.handleProfile(role))
		r.Get("/profile", s.handleProfile(role))
		r.Put("/update-profile", s.handleUpdateProfile(role))
		r.Delete("/delete-account", s.handleDeleteAccount(role))
		r.Get("/verification-status", s.handleVerificationStatus())
		r.Post("/enable-two-factor", s.handleSetTwoFactor(true))
		r.Post("/disable-two-factor", s.handleSetTwoFactor(false))
	})
}

type ctxKey string

const accountKey ctxKey = "account"

// requireAuth checks the role's session cookie and loads the account into
// the request context.
func (s *Server) requireAuth(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName(role))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			id, err := s.tokens.verify(cookie.Value, role)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}
			a, ok := s.store.findByID(role, id)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Account no longer exists")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountKey, a)))
		})
	}
}

func accountFrom(r *http.Request) *account {
	a, _ := r.Context().Value(accountKey).(*account)
	return a
}

// setSessionCookie issues the role's session cookie for an account.
func (s *Server) setSessionCookie(w http.ResponseWriter, a *account) error {
	token, err := s.tokens.sign(a.ID, a.Role)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(a.Role),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(w http.ResponseWriter, role models.Role) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(role),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":    data,
		"message": message,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": message,
	})
}

func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
