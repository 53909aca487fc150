package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/tessera/internal/config"
	"github.com/aretw0/tessera/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tessera",
	Short: "Tessera grows a diagram of shapes on a sparse grid",
	Long: `Tessera keeps a grid of attachment points around placed shapes.
Placing a shape opens new attachment points around it, removing one
cleans up the points that no longer lead anywhere.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Config file (YAML, or JSON by extension)")
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a config key, e.g. --set server.port=9090 (repeatable)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: 'text' or 'json'")
}

// setup loads the config file, applies --set overrides and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	sets, _ := cmd.Flags().GetStringArray("set")
	overrides, err := config.ParseOverrides(sets)
	if err != nil {
		return nil, nil, err
	}
	if err := config.ApplyOverrides(cfg, overrides); err != nil {
		return nil, nil, err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}

	format, _ := cmd.Flags().GetString("log-format")
	switch format {
	case "json":
		return cfg, logging.NewJSON(os.Stderr, level), nil
	case "text", "":
		return cfg, logging.New(level), nil
	}
	return nil, nil, fmt.Errorf("unknown log format %q, supported: text, json", format)
}
