package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/tessera/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Edit a diagram from an interactive prompt",
	Long: `Starts a line-oriented prompt over a fresh diagram.
An optional --script is replayed first, so the prompt opens on its result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		script, _ := cmd.Flags().GetString("script")
		debug, _ := cmd.Flags().GetBool("debug")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.Play(ctx, cli.PlayOptions{
			Config: cfg,
			Logger: logger,
			Debug:  debug,
			Script: script,
			Color:  term.IsTerminal(int(os.Stdout.Fd())),
			In:     os.Stdin,
			Out:    os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("script", "", "Scenario YAML to replay before the prompt")

	// 'play' is the default when no command is provided.
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
