package cli

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erp/client/internal/api"
	appsession "github.com/erp/client/internal/application/session"
	"github.com/erp/client/internal/infrastructure/config"
	"github.com/erp/client/internal/infrastructure/logger"
	sessionstore "github.com/erp/client/internal/infrastructure/session"
	"github.com/erp/client/internal/infrastructure/transport"
)

// App holds the wired collaborators the commands share. Everything is built
// once in setup, after flag parsing, so --config and --server are honored.
type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	store      sessionstore.Store
	client     *api.Client
	controller *appsession.Controller

	configFile string
	serverURL  string
	noPersist  bool
}

// NewRootCommand builds the erpcli command tree.
func NewRootCommand(version string) *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:   "erpcli",
		Short: "Command-line client for the ERP backend",
		Long: `erpcli talks to the ERP backend REST API: authentication, products,
customers and orders. Credentials are stored locally and attached to every
request; when the server rejects the session the token is discarded and the
next command asks you to log in again.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = logger.Sync(app.logger)
			}
		},
	}

	root.PersistentFlags().StringVar(&app.configFile, "config", "", "config file (default erpcli.toml in cwd or user config dir)")
	root.PersistentFlags().StringVar(&app.serverURL, "server", "", "backend base URL (overrides config)")
	root.PersistentFlags().BoolVar(&app.noPersist, "no-persist", false, "keep the session in memory only, never on disk")

	root.AddCommand(
		newAuthCommand(app),
		newProductCommand(app),
		newCustomerCommand(app),
		newOrderCommand(app),
	)
	return root
}

func (a *App) setup() error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.serverURL != "" {
		cfg.Server.BaseURL = a.serverURL
	}
	if a.noPersist {
		cfg.Session.Persist = false
	}
	a.cfg = cfg

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	log, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = log

	a.store = a.buildStore()

	pipeline := transport.New(nil, a.store, a.logger, transport.Config{
		LoginPath: api.LoginPath,
		OnSessionInvalidated: func() {
			if a.controller != nil {
				a.controller.Invalidate()
			}
			fmt.Fprintln(os.Stderr, "Session expired, run 'erpcli auth login' to sign in again")
		},
		OnForbidden: func() {
			fmt.Fprintln(os.Stderr, "You do not have permission to perform this action")
		},
	})
	a.client = api.NewClient(cfg.Server.BaseURL, &http.Client{
		Transport: pipeline,
		Timeout:   cfg.Server.Timeout,
	}, a.logger)
	a.controller = appsession.NewController(a.store, a.client.Auth, a.logger)
	return nil
}

func (a *App) buildStore() sessionstore.Store {
	if !a.cfg.Session.Persist {
		return sessionstore.NewMemoryStore()
	}
	return sessionstore.NewFileStore(a.cfg.Session.TokenFile, a.logger)
}

// requireSession runs startup recovery and fails the command when no
// authenticated session exists.
func (a *App) requireSession(cmd *cobra.Command) error {
	snap := a.controller.Initialize(cmd.Context())
	if !snap.IsAuthenticated() {
		if snap.ErrorMessage != "" {
			return fmt.Errorf("%s", snap.ErrorMessage)
		}
		return fmt.Errorf("not logged in, run 'erpcli auth login' first")
	}
	return nil
}

// newTable returns a tabwriter aligned for terminal tables on the command's
// stdout.
func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

func printMeta(cmd *cobra.Command, meta *api.Meta) {
	if meta == nil || meta.Total == 0 {
		return
	}
	cmd.Printf("page %d (%d per page), %d total\n", meta.Page, meta.PageSize, meta.Total)
}
