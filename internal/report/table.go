package report

import (
	"strings"
)

// Banner replaces the table when a run finds no errors.
const Banner = "**✅ No errors found! 🎉 Go and have a nice cup of tea or something ☕️ 😁**"

// Headers are the table columns, in cell order.
var Headers = []string{"Error", "Content", "Folder", "Model", "Explore"}

// RenderTable renders rows as a markdown table. It always renders a table,
// even with no rows; use ErrorsTable to get the banner for clean runs.
func RenderTable(rows []Row) string {
	var sb strings.Builder
	writeLine(&sb, Headers)

	sep := make([]string, len(Headers))
	for i := range sep {
		sep[i] = "-"
	}
	writeLine(&sb, sep)

	for _, r := range rows {
		writeLine(&sb, r.Cells())
	}
	return sb.String()
}

// ErrorsTable returns the banner when totalErrors is zero and the rendered
// table otherwise.
func ErrorsTable(rows []Row, totalErrors int) string {
	if totalErrors == 0 {
		return Banner
	}
	return RenderTable(rows)
}

func writeLine(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	sb.WriteString(strings.Join(cells, "|"))
	sb.WriteString("|\n")
}
