package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/lookerci/contentcheck/internal/content"
	"github.com/lookerci/contentcheck/internal/faults"
)

// Stats are the validator's aggregate counters for a run.
type Stats struct {
	ElapsedSeconds    float64 `json:"elapsedSeconds"`
	Looks             int64   `json:"looks"`
	DashboardElements int64   `json:"dashboardElements"`
	DashboardFilters  int64   `json:"dashboardFilters"`
	ScheduledPlans    int64   `json:"scheduledPlans"`
	Explores          int64   `json:"explores"`
}

// StatsFrom copies the counters out of a validation result.
func StatsFrom(res *content.ValidationResult) Stats {
	return Stats{
		ElapsedSeconds:    res.ComputationTime,
		Looks:             res.TotalLooksValidated,
		DashboardElements: res.TotalDashboardElementsValidated,
		DashboardFilters:  res.TotalDashboardFiltersValidated,
		ScheduledPlans:    res.TotalScheduledPlansValidated,
		Explores:          res.TotalExploresValidated,
	}
}

// Document is a fully rendered report.
type Document struct {
	Tool        string    `json:"tool"`
	RunID       string    `json:"runId"`
	Branch      string    `json:"branch"`
	RunAt       time.Time `json:"runAt"`
	Stats       Stats     `json:"stats"`
	TotalErrors int       `json:"totalErrors"`
	Rows        []Row     `json:"rows"`
	Table       string    `json:"-"`
	Body        string    `json:"-"`
}

// Options control document assembly.
type Options struct {
	Branch   string
	Template *Template

	// RunID defaults to a random UUID.
	RunID string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Build groups records, renders the table and fills the template.
func Build(stats Stats, records []content.Record, opts Options) (*Document, error) {
	if opts.Template == nil {
		return nil, faults.TemplateLoad("no template loaded", nil)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	groups := Group(records)
	rows := Rows(groups)
	total := groups.Total()

	doc := &Document{
		Tool:        "contentcheck",
		RunID:       runID,
		Branch:      opts.Branch,
		RunAt:       now().UTC(),
		Stats:       stats,
		TotalErrors: total,
		Rows:        rows,
		Table:       ErrorsTable(rows, total),
	}
	doc.Body = opts.Template.Render(doc.Values())
	return doc, nil
}

// Values returns the placeholder values for the document.
func (d *Document) Values() map[string]string {
	return map[string]string{
		KeyBranchName:  d.Branch,
		KeyTimeS:       Seconds(d.Stats.ElapsedSeconds),
		KeyLooks:       Count(d.Stats.Looks),
		KeyDashElems:   Count(d.Stats.DashboardElements),
		KeyDashFilters: Count(d.Stats.DashboardFilters),
		KeySchedules:   Count(d.Stats.ScheduledPlans),
		KeyExplores:    Count(d.Stats.Explores),
		KeyErrorsTable: d.Table,
		KeyTotalErrors: Count(int64(d.TotalErrors)),
		KeyRunAt:       d.RunAt.Format(time.RFC3339),
	}
}
