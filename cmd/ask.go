package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/banter/internal/chat"
	"github.com/zhubert/banter/internal/logger"
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt...]",
	Short: "Send one prompt and print the reply",
	Long: `Sends a single prompt to the configured provider and prints the reply.
With no arguments the prompt is read from standard input.`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	if prompt == "" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("error reading prompt: %w", err)
		}
		prompt = string(raw)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session := newSession(cfg, "")
	defer session.Close()
	return ask(ctx, session, prompt, cmd.OutOrStdout())
}

// ask runs one exchange on session and writes the reply to out. A failed
// request is reported as an error after the failure text is printed.
func ask(ctx context.Context, session *chat.Session, prompt string, out io.Writer) error {
	ex, ok := session.Prepare(prompt)
	if !ok {
		return errors.New("prompt is empty")
	}
	reply := session.Complete(ctx, ex)
	session.Resolve(reply)

	fmt.Fprintln(out, reply.Text)
	if reply.Err != nil {
		return fmt.Errorf("request failed: %w", reply.Err)
	}
	return nil
}
