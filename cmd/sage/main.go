// sage is the terminal front end of the Sage assistant: account
// registration, login, profile and a chat loop against the backend API.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dmorita/sage/internal/api"
	"github.com/dmorita/sage/internal/config"
	"github.com/dmorita/sage/internal/session"
)

var (
	flagBaseURL string
	flagVerbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sage",
	Short: "Chat with the Sage assistant from your terminal",
	Long: `sage is a client for the Sage assistant API.

Register an account, log in, and chat. The bearer token is kept in a single
file under your user config directory so the session survives restarts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if flagVerbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// app bundles the wired client stack for the command handlers.
type app struct {
	client  *api.Client
	manager *session.Manager
}

// newApp builds the client, the durable token store and the session
// manager, and restores any persisted token.
func newApp() (*app, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file, using system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	baseURL := cfg.Client.BaseURL
	if flagBaseURL != "" {
		baseURL = flagBaseURL
	}

	tokenPath := cfg.Client.TokenPath
	if tokenPath == "" {
		tokenPath, err = session.DefaultTokenPath()
		if err != nil {
			return nil, err
		}
	}

	client := api.New(api.Config{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: cfg.Client.Timeout},
		Logger:     logger,
	})

	manager := session.NewManager(client, session.NewFileStore(tokenPath), logger)
	manager.Restore()

	return &app{client: client, manager: manager}, nil
}

func main() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (overrides SAGE_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(chatCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
