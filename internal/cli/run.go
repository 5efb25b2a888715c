package cli

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lookerci/contentcheck/internal/config"
	"github.com/lookerci/contentcheck/internal/gitlab"
	"github.com/lookerci/contentcheck/internal/looker"
	"github.com/lookerci/contentcheck/internal/output"
	"github.com/lookerci/contentcheck/internal/pipeline"
	"github.com/lookerci/contentcheck/internal/redact"
	"github.com/lookerci/contentcheck/internal/report"
)

// Report flags shared by run and render
var (
	flagBranch   string
	flagTemplate string
	flagFormat   string
	flagOut      string
)

// run flags
var (
	flagDryRun       bool
	flagSkipCheckout bool
	flagFailOnErrors bool
	flagNoProgress   bool
)

// render flags
var flagBaseURL string

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagBranch, "branch", "", "Branch name (default: $CI_MERGE_REQUEST_SOURCE_BRANCH_NAME)")
	cmd.Flags().StringVar(&flagTemplate, "template", "", "Comment template path")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Local output format (markdown, json, text)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagBranch != "" {
		m["branch"] = flagBranch
	}
	if flagTemplate != "" {
		m["report.template"] = flagTemplate
	}
	if flagFormat != "" {
		m["report.format"] = flagFormat
	}
	if flagBaseURL != "" {
		m["looker.base_url"] = flagBaseURL
	}
	return m
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Validate a branch's content and post the report to the merge request",
	Long: "Check out the merge request branch in the Looker dev workspace, run the content " +
		"validator, render the grouped errors through the comment template and create or " +
		"update the report note on the merge request.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(buildOverrides())
		if err != nil {
			fail(err, nil)
			return nil
		}
		fillFromGit(&cfg, !flagDryRun)
		scrub := redact.New(cfg.Secrets()...)
		if err := cfg.Validate(config.Needs{Looker: true, GitLab: !flagDryRun}); err != nil {
			fail(err, scrub)
			return nil
		}
		runPipeline(cfg, scrub)
		return nil
	},
}

func runPipeline(cfg config.Config, scrub *redact.Scrubber) {
	log := newLogger(cfg)

	tmpl, err := report.LoadTemplate(cfg.Report.Template)
	if err != nil {
		fail(err, scrub)
		return
	}

	lc, err := looker.NewClient(cfg.Looker)
	if err != nil {
		fail(err, scrub)
		return
	}
	deps := pipeline.Deps{Validator: lc, Log: log}
	if !flagNoProgress && cfg.Log.Env == "local" {
		deps.Validator = &progressValidator{Validator: lc, bar: newSpinner()}
	}

	if !flagDryRun {
		gc, err := gitlab.NewClient(cfg.GitLab)
		if err != nil {
			fail(err, scrub)
			return
		}
		deps.Publisher = gitlab.NewPublisher(gc, cfg.Report.Marker, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := pipeline.OptionsFromConfig(cfg, tmpl)
	opts.SkipCheckout = flagSkipCheckout

	res, err := pipeline.Run(ctx, opts, deps)
	if err != nil {
		fail(err, scrub)
		return
	}

	if err := output.WriteReport(res.Document, cfg.Report.Format, flagOut); err != nil {
		fail(err, scrub)
		return
	}

	if res.Published != nil {
		log.Info("merge request note "+string(res.Published.Action),
			"merge_request", "!"+strconv.Itoa(cfg.GitLab.MergeRequestIID), "note_id", res.Published.NoteID)
	}
	if flagFailOnErrors && res.Document.TotalErrors > 0 {
		exitCode = ExitFindings
	}
}

func init() {
	addReportFlags(runCmd)
	runCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Render and write locally without posting to GitLab")
	runCmd.Flags().BoolVar(&flagSkipCheckout, "skip-checkout", false, "Validate the currently checked out workspace")
	runCmd.Flags().BoolVar(&flagFailOnErrors, "fail-on-errors", false, "Exit 1 when content errors are found")
	runCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "Disable the progress spinner")
}
