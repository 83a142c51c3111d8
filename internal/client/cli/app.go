package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/api"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/config"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/session"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/storage"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/uploads"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the coordinator, the offline cache and the photo uploader
// behind the REPL. The role field selects which identity context the
// role-generic commands act on; both sessions stay alive regardless.
type App struct {
	config      *config.Config
	coordinator *session.Coordinator
	apiClient   api.Client
	cache       *storage.Repositories
	uploader    *uploads.Uploader
	log         logging.Logger
	role        models.Role
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	cache, err := storage.InitDatabase(ctx, c.CacheDBPath)
	if err != nil {
		log.Error(ctx, "error initializing cache database", "error", err)
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.BaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config:      c,
		coordinator: session.New(apiClient, log),
		apiClient:   apiClient,
		cache:       cache,
		uploader:    uploads.NewUploader(c),
		log:         log,
		role:        models.RoleUser,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Kamdhenuseva CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin), a.out)
}

func (a *App) Close() {
	if err := a.apiClient.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing api client", "error", err)
	}
	if a.cache != nil && a.cache.DB != nil {
		if err := a.cache.DB.Close(); err != nil {
			a.log.Warn(context.Background(), "error closing cache database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.coordinator.IsAuthenticated(a.role)
}

func (a *App) setRole(role models.Role) {
	if a.role != role {
		a.role = role
		fmt.Fprintf(a.out, "Switched to %s context\n", role)
	}
}

// getStatus renders the prompt suffix: the active role, the email of
// whichever profile is signed in for it, and an unverified marker.
func (a *App) getStatus() string {
	st := a.coordinator.State()

	s := string(a.role)
	switch {
	case a.role == models.RoleAdmin && st.Admin != nil:
		s += " " + st.Admin.Email
		if !st.EmailVerifiedAdmin {
			s += " unverified"
		}
	case a.role == models.RoleUser && st.User != nil:
		s += " " + st.User.Email
		if !st.EmailVerifiedUser {
			s += " unverified"
		}
	}
	return "(" + s + ")"
}

// reportError prints the coordinator's recorded message when it has one,
// falling back to the raw error.
func (a *App) reportError(err error) {
	if msg := a.coordinator.LastError(); msg != "" {
		fmt.Fprintln(a.out, "Error:", msg)
		return
	}
	fmt.Fprintln(a.out, "Error:", err)
}
