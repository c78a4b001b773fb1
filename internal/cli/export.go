package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/coursesite/internal/export"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
	"github.com/MrSnakeDoc/coursesite/internal/site"
)

func newExportCommand() *cobra.Command {
	var (
		outDir string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the generator artifacts",
		Long: `Write sidebars.json, docusaurus.config.json, the sitemap and the
per-locale code.json translation files into the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outDir == "" {
				return errors.New("--out is required")
			}
			e := envFrom(cmd.Context())

			snap, err := site.NewBuilder(e.cfg.SiteDir, e.cfg.ScanWorkers).Build(cmd.Context())
			if err != nil {
				return err
			}
			if snap.Report.HasErrors() && !force {
				renderReportTable(cmd.ErrOrStderr(), snap.Report)
				return fmt.Errorf("%w (use --force to export anyway)", ErrValidationFailed)
			}

			written, err := export.WriteAll(outDir, snap, time.Now())
			if err != nil {
				return err
			}
			e.log.Info("exported site artifacts",
				logger.String("revision", snap.Revision),
				logger.String("out", outDir),
				logger.Int("files", len(written)))

			for _, p := range written {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory")
	cmd.Flags().BoolVar(&force, "force", false, "Export even when validation reports errors")

	return cmd
}
