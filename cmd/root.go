package cmd

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/banter/internal/app"
	"github.com/zhubert/banter/internal/chat"
	"github.com/zhubert/banter/internal/clipboard"
	"github.com/zhubert/banter/internal/completion"
	"github.com/zhubert/banter/internal/config"
	"github.com/zhubert/banter/internal/logger"
	"github.com/zhubert/banter/internal/store"
	"github.com/zhubert/banter/internal/theme"
	"github.com/zhubert/banter/internal/ui"
)

var (
	debugMode             bool
	logFile               string
	providerName          string
	envFile               string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "banter",
	Short: "Terminal chat with an OpenAI-compatible assistant",
	Long: `Banter is a terminal chat client. Type a message, press enter, and the
assistant's reply lands in the conversation. Your own messages can be edited
in place, and the light/dark theme is remembered between runs.

Provider, model and API key come from the environment or a .env file;
run 'banter setup' to write one.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", logger.DefaultLogPath, "Diagnostic log destination")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "Provider preset, overrides "+config.EnvProvider)
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Environment file to load")
}

func initLogging() {
	logger.SetDebug(debugMode)
	if err := logger.Init(logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("banter %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("banter %s\n", version)
}

// loadConfig applies --provider on top of the environment and loads the
// configuration.
func loadConfig() (*config.Config, error) {
	if providerName != "" {
		if err := os.Setenv(config.EnvProvider, providerName); err != nil {
			return nil, err
		}
	}
	return config.Load(envFile)
}

// openPrefs opens the preferences database. Failing that (read-only home,
// another instance holding the lock) preferences live in memory for this run.
func openPrefs(cfg *config.Config) (store.KV, func()) {
	db, err := store.OpenBolt(cfg.PrefsPath())
	if err != nil {
		logger.Warn("preferences unavailable, falling back to memory: %v", err)
		return store.NewMemory(nil), func() {}
	}
	logger.Debug("preferences opened: %s", db.Path())
	return db, func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close preferences: %v", err)
		}
	}
}

// newSession builds a chat session talking to the configured provider.
func newSession(cfg *config.Config, greeting string) *chat.Session {
	client := completion.NewClient(cfg.Provider, cfg.APIKey)
	p := client.Provider()
	logger.Info("using provider %s: endpoint=%s model=%s", p.Name, p.Endpoint, p.Model)
	return chat.NewSession(client, chat.Options{
		Greeting: greeting,
		Timeout:  cfg.Timeout,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	prefs, closePrefs := openPrefs(cfg)
	defer closePrefs()

	session := newSession(cfg, cfg.Greeting)
	defer session.Close()

	m := app.New(app.Options{
		Session:   session,
		Theme:     theme.New(prefs, ui.Presenter(), nil),
		Clipboard: &clipboard.System{},
		Notify:    cfg.Notify,
		Version:   version,
	})
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
