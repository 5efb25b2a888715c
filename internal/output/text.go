package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/lookerci/contentcheck/internal/report"
)

// TextWriter outputs a terminal table: one row per error message, plain
// titles instead of links, one entry per line inside a cell.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, doc *report.Document) error {
	ew := &errWriter{w: w}

	ew.printf("Content validation for branch %s\n", doc.Branch)
	ew.println(strings.Repeat("─", 60))
	ew.printf("Validated %s looks, %s dashboard elements, %s dashboard filters, %s schedules and %s explores in %ss\n",
		report.Count(doc.Stats.Looks),
		report.Count(doc.Stats.DashboardElements),
		report.Count(doc.Stats.DashboardFilters),
		report.Count(doc.Stats.ScheduledPlans),
		report.Count(doc.Stats.Explores),
		report.Seconds(doc.Stats.ElapsedSeconds),
	)

	if doc.TotalErrors == 0 {
		ew.println(text.FgGreen.Sprint("No errors found."))
		return ew.err
	}

	writer := table.NewWriter()
	writer.SetStyle(table.StyleLight)
	writer.AppendHeader(table.Row{"Error", "Content", "Folder", "Model", "Explore"})
	writer.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Error", WidthMax: 50},
		{Name: "Content", WidthMax: 50},
	})

	for _, row := range doc.Rows {
		var titles, folders, models, explores []string
		for _, m := range row.Members {
			titles = append(titles, m.ContentTitle)
			folders = append(folders, m.FolderName)
			models = append(models, m.ModelName)
			explores = append(explores, m.ExploreName)
		}
		writer.AppendRow(table.Row{
			text.FgRed.Sprint(fmt.Sprintf("%d x %s", row.Count, row.Message)),
			strings.Join(titles, "\n"),
			strings.Join(folders, "\n"),
			strings.Join(models, "\n"),
			strings.Join(explores, "\n"),
		})
		writer.AppendSeparator()
	}
	writer.AppendFooter(table.Row{fmt.Sprintf("%s errors", report.Count(int64(doc.TotalErrors)))})

	ew.println(writer.Render())
	return ew.err
}
