package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lookerci/contentcheck/internal/config"
	"github.com/lookerci/contentcheck/internal/content"
	"github.com/lookerci/contentcheck/internal/gitlab"
	"github.com/lookerci/contentcheck/internal/logging"
	"github.com/lookerci/contentcheck/internal/report"
)

// Validator is the Looker side of a run. *looker.Client satisfies it.
type Validator interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Checkout(ctx context.Context, project, workspace, branch string) error
	ContentValidation(ctx context.Context) (*content.ValidationResult, error)
}

// Publisher posts the rendered body. *gitlab.Publisher satisfies it.
type Publisher interface {
	Publish(ctx context.Context, body string) (gitlab.PublishResult, error)
}

// RenderOptions control Render.
type RenderOptions struct {
	// APIBaseURL is the Looker API URL; content links drop its port suffix.
	APIBaseURL string
	// ContentBaseURL, when set, is used for content links as is.
	ContentBaseURL string
	Branch         string
	Template       *report.Template
	RunID          string
	Now            func() time.Time
}

// Render turns a validation result into a report document. It performs no
// I/O.
func Render(res *content.ValidationResult, opts RenderOptions) (*report.Document, error) {
	base := strings.TrimRight(opts.ContentBaseURL, "/")
	if base == "" {
		var err error
		base, err = content.BaseURL(opts.APIBaseURL)
		if err != nil {
			return nil, err
		}
	}

	records, err := content.ExtractAll(res.ContentWithErrors, base)
	if err != nil {
		return nil, err
	}

	return report.Build(report.StatsFrom(res), records, report.Options{
		Branch:   opts.Branch,
		Template: opts.Template,
		RunID:    opts.RunID,
		Now:      opts.Now,
	})
}

// Options control Run.
type Options struct {
	Project      string
	Workspace    string
	SkipCheckout bool
	Render       RenderOptions
}

// OptionsFromConfig builds run options from the merged config.
func OptionsFromConfig(cfg config.Config, tmpl *report.Template) Options {
	return Options{
		Project:   cfg.Looker.Project,
		Workspace: cfg.Looker.Workspace,
		Render: RenderOptions{
			APIBaseURL:     cfg.Looker.BaseURL,
			ContentBaseURL: cfg.Report.ContentBaseURL,
			Branch:         cfg.Branch,
			Template:       tmpl,
		},
	}
}

// Deps are the collaborators of Run. A nil Publisher means dry run.
type Deps struct {
	Validator Validator
	Publisher Publisher
	Log       *slog.Logger
}

// Result is the outcome of Run.
type Result struct {
	Document *report.Document
	// Published is nil on a dry run.
	Published *gitlab.PublishResult
}

// Run checks out the branch, validates content, renders the report and
// publishes it. Nothing is published unless every earlier step succeeded.
func Run(ctx context.Context, opts Options, deps Deps) (*Result, error) {
	if opts.Render.RunID == "" {
		opts.Render.RunID = uuid.NewString()
	}
	log := deps.Log
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("run_id", opts.Render.RunID, "branch", opts.Render.Branch)

	// Fail on an unusable base URL before touching Looker.
	if opts.Render.ContentBaseURL == "" {
		if _, err := content.BaseURL(opts.Render.APIBaseURL); err != nil {
			return nil, err
		}
	}

	v := deps.Validator
	if err := v.Login(ctx); err != nil {
		return nil, err
	}
	defer func() {
		// The request context may already be done.
		logoutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := v.Logout(logoutCtx); err != nil {
			log.Warn("looker logout failed", logging.Err(err))
		}
	}()

	if opts.SkipCheckout {
		log.Info("skipping checkout, validating the current workspace")
	} else {
		log.Info("checking out branch", "project", opts.Project, "workspace", opts.Workspace)
		if err := v.Checkout(ctx, opts.Project, opts.Workspace, opts.Render.Branch); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	log.Info("running content validation")
	res, err := v.ContentValidation(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("content validation finished",
		"duration", time.Since(start).Round(time.Millisecond).String(),
		"items_with_errors", len(res.ContentWithErrors))

	doc, err := Render(res, opts.Render)
	if err != nil {
		return nil, err
	}
	log.Info("report rendered", "total_errors", doc.TotalErrors, "groups", len(doc.Rows))

	out := &Result{Document: doc}
	if deps.Publisher == nil {
		log.Info("dry run, not publishing")
		return out, nil
	}

	published, err := deps.Publisher.Publish(ctx, doc.Body)
	if err != nil {
		return nil, err
	}
	log.Info("report published", "action", string(published.Action), "note_id", published.NoteID)
	out.Published = &published
	return out, nil
}
