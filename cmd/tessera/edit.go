package main

import (
	"fmt"

	"github.com/aretw0/tessera/internal/cli"
	"github.com/aretw0/tessera/internal/presentation/tui"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a diagram in a full-screen terminal editor",
	Long: `Opens a full-screen editor. Arrows move the cursor, Enter places the
current shape, x removes, Tab cycles the configured shapes and q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to init terminal: %w", err)
		}
		defer screen.Fini()

		canvas := tui.NewCanvas(screen)
		engine := cli.NewEngine(cfg, logger, debug, canvas)
		tui.NewEditor(screen, canvas, engine, cli.Palette(cfg)).Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
