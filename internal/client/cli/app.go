package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/tutorit/internal/client/client"
	"github.com/dmitrijs2005/tutorit/internal/client/config"
	"github.com/dmitrijs2005/tutorit/internal/client/services"
	"github.com/dmitrijs2005/tutorit/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode is the client's connectivity state as seen by the status watcher.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App wires the services behind the interactive terminal client.
type App struct {
	config *config.Config
	log    logging.Logger

	client        client.Client
	repos         *client.Repositories
	auth          services.AuthService
	sessions      services.SessionService
	lifecycle     services.LifecycleService
	tutors        services.TutorService
	conversations services.ConversationService
	dashboard     services.DashboardService
	calc          *services.Calculator

	Mode   Mode
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	repos, err := client.InitDatabase(ctx, cfg.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing local cache", "error", err)
		return nil, err
	}

	apiClient, err := client.NewRESTClient(cfg.ServerBaseURL, cfg.RequestTimeout, log)
	if err != nil {
		_ = repos.DB.Close()
		return nil, err
	}

	calc := services.NewCalculator(log)
	auth := services.NewAuthService(apiClient, repos.Metadata, log)
	sess := services.NewSessionService(apiClient, repos.Sessions, log)
	tutors := services.NewTutorService(apiClient, log)

	return &App{
		config:        cfg,
		log:           log,
		client:        apiClient,
		repos:         repos,
		auth:          auth,
		sessions:      sess,
		lifecycle:     services.NewLifecycleService(apiClient, sess, auth, calc, log),
		tutors:        tutors,
		conversations: services.NewConversationService(apiClient, log),
		dashboard:     services.NewDashboardService(apiClient, tutors, log),
		calc:          calc,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.repos != nil && a.repos.DB != nil {
		_ = a.repos.DB.Close()
	}
}

func (a *App) identity() services.Identity {
	return a.auth.Current()
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher periodically probes the backend and flips the
// connectivity mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.client.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
