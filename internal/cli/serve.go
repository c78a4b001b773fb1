package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/coursesite/internal/app"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the site preview and introspection API",
		Long: `Load the site definition, keep it reloaded (ticker, file watcher and
POST /reload) and serve the landing page, sitemap and JSON API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFrom(cmd.Context())
			defer func() { _ = e.log.Sync() }()

			a, err := app.New(cmd.Context(), e.cfg, e.log)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}
