package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/banter/internal/store"
	"github.com/zhubert/banter/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme [toggle|light|dark]",
	Short: "Show or change the saved theme",
	Long: `Without arguments prints the saved theme. "toggle" flips it; "light" or
"dark" sets it. The TUI picks the change up on its next start.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"toggle", string(theme.Light), string(theme.Dark)},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	prefs, closePrefs := openPrefs(cfg)
	defer closePrefs()

	action := ""
	if len(args) == 1 {
		action = args[0]
	}
	return applyTheme(prefs, action, cmd.OutOrStdout())
}

// applyTheme mounts a controller on kv, performs action and prints the
// resulting mode. Without a terminal to ask, the system preference is light.
func applyTheme(kv store.KV, action string, out io.Writer) error {
	ctl := theme.New(kv, nil, nil)
	mode := ctl.Mount(false)

	switch action {
	case "":
	case "toggle":
		mode = ctl.Toggle()
	default:
		want, ok := theme.Parse(action)
		if !ok {
			return fmt.Errorf("unknown theme %q: want toggle, light or dark", action)
		}
		if want != mode {
			mode = ctl.Toggle()
		}
	}

	fmt.Fprintln(out, mode)
	return nil
}
