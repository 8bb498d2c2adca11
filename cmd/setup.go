package cmd

import (
	"fmt"
	"strconv"
	"strings"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/banter/internal/completion"
	"github.com/zhubert/banter/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write provider, API key and model to the .env file",
	Long: `Prompts for the provider, API key and model and writes them to the
environment file (see --env-file). Other variables in the file are kept.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues are the answers the setup form collects.
type setupValues struct {
	Provider string
	APIKey   string
	Model    string
	Notify   bool
}

// existingSetup pre-fills the form from the current file.
func existingSetup(env map[string]string) setupValues {
	v := setupValues{
		Provider: env[config.EnvProvider],
		APIKey:   env[config.EnvAPIKey],
		Model:    env[config.EnvModel],
	}
	if _, ok := completion.Lookup(v.Provider); !ok {
		v.Provider = config.DefaultProvider
	}
	v.Notify, _ = strconv.ParseBool(env[config.EnvNotify])
	return v
}

func newSetupForm(v *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Provider").
				Options(huh.NewOptions(completion.Names()...)...).
				Value(&v.Provider),
			huh.NewInput().
				Title("API key").
				Description("Stored in the .env file with owner-only permissions").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("an API key is required")
					}
					return nil
				}).
				Value(&v.APIKey),
			huh.NewInput().
				Title("Model").
				Description("Leave empty for the provider default").
				Value(&v.Model),
			huh.NewConfirm().
				Title("Desktop notification when a reply arrives?").
				Value(&v.Notify),
		),
	)
}

// writeSetup merges v into the file at path.
func writeSetup(path string, v setupValues) error {
	return config.UpdateEnvFile(path, map[string]string{
		config.EnvProvider: v.Provider,
		config.EnvAPIKey:   strings.TrimSpace(v.APIKey),
		config.EnvModel:    strings.TrimSpace(v.Model),
		config.EnvNotify:   strconv.FormatBool(v.Notify),
	})
}

func runSetup(cmd *cobra.Command, args []string) error {
	env, err := config.ReadEnvFile(envFile)
	if err != nil {
		return err
	}
	values := existingSetup(env)

	if err := newSetupForm(&values).Run(); err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}
	if err := writeSetup(envFile, values); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (provider %s)\n", envFile, values.Provider)
	return nil
}
