package report

import (
	"fmt"
	"strings"

	"github.com/lookerci/contentcheck/internal/content"
)

// CellBreak separates entries inside a merged table cell.
const CellBreak = "<br>"

// Row is one rendered table row: one error message and everything it hit.
type Row struct {
	Message     string           `json:"message"`
	Count       int              `json:"count"`
	Label       string           `json:"label"`
	ContentCell string           `json:"contentCell"`
	FolderCell  string           `json:"folderCell"`
	ModelCell   string           `json:"modelCell"`
	ExploreCell string           `json:"exploreCell"`
	Members     []content.Record `json:"members"`
}

// Cells returns the row's five table cells in header order.
func (r Row) Cells() []string {
	return []string{r.Label, r.ContentCell, r.FolderCell, r.ModelCell, r.ExploreCell}
}

// FormatRow builds the row for one group. members must already be sorted.
func FormatRow(message string, members []content.Record) Row {
	var (
		links   = make([]string, len(members))
		folders = make([]string, len(members))
		models  = make([]string, len(members))
		explore = make([]string, len(members))
	)
	for i, m := range members {
		links[i] = fmt.Sprintf(`<a href="%s" title="%s">%s</a>`, m.ContentURL, m.Tooltip, m.ContentTitle)
		folders[i] = fmt.Sprintf(`<a href="%s">%s</a>`, m.FolderURL, m.FolderName)
		models[i] = m.ModelName
		explore[i] = m.ExploreName
	}

	return Row{
		Message:     message,
		Count:       len(members),
		Label:       fmt.Sprintf("**%d x %s**", len(members), message),
		ContentCell: strings.Join(links, CellBreak),
		FolderCell:  strings.Join(folders, CellBreak),
		ModelCell:   strings.Join(models, CellBreak),
		ExploreCell: strings.Join(explore, CellBreak),
		Members:     members,
	}
}

// Rows formats every group, ordered by message.
func Rows(g Groups) []Row {
	msgs := g.Messages()
	rows := make([]Row, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, FormatRow(m, g.Sorted(m)))
	}
	return rows
}
