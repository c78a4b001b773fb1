// Package cli provides the coursesite command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/coursesite/internal/config"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
	"github.com/MrSnakeDoc/coursesite/internal/version"
)

// envKey is used to store the loaded config and logger in context.
type envKey struct{}

type env struct {
	cfg *config.Config
	log logger.Logger
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coursesite",
		Short: "coursesite - course site definition toolkit",
		Long: `coursesite loads a course site definition (site, sidebars, landing page,
translations and markdown docs), validates it, exports the static site
generator's artifacts and serves a live preview of them.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg)

			e := env{cfg: cfg, log: logger.New(cfg.LogLevel, cfg.PrettyLog)}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, e))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags, overriding the COURSESITE_ environment
	rootCmd.PersistentFlags().String("site-dir", "", "Path to the site definition directory")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("pretty-log", false, "Human readable colored logs")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("site-dir") {
		cfg.SiteDir, _ = flags.GetString("site-dir")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("pretty-log") {
		cfg.PrettyLog, _ = flags.GetBool("pretty-log")
	}
}

// envFrom returns what PersistentPreRunE stored, or a default env.
func envFrom(ctx context.Context) env {
	if e, ok := ctx.Value(envKey{}).(env); ok {
		return e
	}
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{}
	}
	return env{cfg: cfg, log: logger.Nop()}
}
