package cli

import (
	"github.com/spf13/cobra"

	"github.com/lookerci/contentcheck/internal/config"
	"github.com/lookerci/contentcheck/internal/content"
	"github.com/lookerci/contentcheck/internal/output"
	"github.com/lookerci/contentcheck/internal/pipeline"
	"github.com/lookerci/contentcheck/internal/redact"
	"github.com/lookerci/contentcheck/internal/report"
)

var renderCmd = &cobra.Command{
	Use:   "render <results.json>",
	Short: "Render a saved content validation response without calling Looker or GitLab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(buildOverrides())
		if err != nil {
			fail(err, nil)
			return nil
		}
		fillFromGit(&cfg, false)
		scrub := redact.New(cfg.Secrets()...)
		if err := cfg.Validate(config.Needs{}); err != nil {
			fail(err, scrub)
			return nil
		}
		log := newLogger(cfg)

		res, err := content.LoadResultFile(args[0])
		if err != nil {
			fail(err, scrub)
			return nil
		}
		tmpl, err := report.LoadTemplate(cfg.Report.Template)
		if err != nil {
			fail(err, scrub)
			return nil
		}

		opts := pipeline.OptionsFromConfig(cfg, tmpl)
		doc, err := pipeline.Render(res, opts.Render)
		if err != nil {
			fail(err, scrub)
			return nil
		}
		log.Debug("report rendered", "run_id", doc.RunID, "total_errors", doc.TotalErrors)

		if err := output.WriteReport(doc, cfg.Report.Format, flagOut); err != nil {
			fail(err, scrub)
		}
		return nil
	},
}

func init() {
	addReportFlags(renderCmd)
	renderCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Looker API base URL (default: $LOOKERSDK_BASE_URL)")
}
