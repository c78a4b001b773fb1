package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/site"
)

// ErrValidationFailed is returned when the report holds errors.
var ErrValidationFailed = errors.New("site definition has errors")

func newValidateCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the site definition and print the report",
		Long: `Load the site definition, scan the docs and check every cross reference.
Exits non-zero when an issue has error severity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e := envFrom(cmd.Context())

			snap, err := site.NewBuilder(e.cfg.SiteDir, e.cfg.ScanWorkers).Build(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				err = renderReportJSON(w, snap.Report)
			default:
				renderReportTable(w, snap.Report)
			}
			if err != nil {
				return err
			}

			if snap.Report.HasErrors() {
				return ErrValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "Output format (table|json)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func renderReportTable(w io.Writer, r domain.Report) {
	if len(r.Issues) == 0 {
		_, _ = fmt.Fprintln(w, "✅ no issues found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Severity", "Code", "Location", "Message"})
	for _, is := range r.Issues {
		t.AppendRow(table.Row{is.Severity, is.Code, is.Location, is.Message})
	}
	t.AppendFooter(table.Row{"", "", "errors / warnings",
		fmt.Sprintf("%d / %d", r.Count(domain.SeverityError), r.Count(domain.SeverityWarning))})
	t.Render()
}

func renderReportJSON(w io.Writer, r domain.Report) error {
	if r.Issues == nil {
		r.Issues = []domain.Issue{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
