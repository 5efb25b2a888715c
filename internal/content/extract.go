package content

import (
	"fmt"

	"github.com/lookerci/contentcheck/internal/faults"
)

// portSuffixLen is the width of the ":NNNNN" API port suffix on Looker base
// URLs (e.g. ":19999"). It is stripped by width, not parsed.
const portSuffixLen = 6

// Title decorations per variant.
const (
	scheduleMark = " 📅"
	filterMark   = " 🔍"
	tileMark     = " 📊"
)

// BaseURL derives the web base URL from the API base URL by dropping the
// fixed-width port suffix: "https://example.com:19999" -> "https://example.com".
func BaseURL(apiBase string) (string, error) {
	if len(apiBase) <= portSuffixLen {
		return "", faults.Configuration(
			fmt.Sprintf("base URL %q is too short to strip a %d-character port suffix", apiBase, portSuffixLen), nil)
	}
	return apiBase[:len(apiBase)-portSuffixLen], nil
}

// resolved holds the content-level fields shared by every record of an item.
type resolved struct {
	title      string
	folderName string
	contentURL string
	folderURL  string
	tooltip    string
}

func resolveItem(it *Item, base string) (resolved, error) {
	v, err := Resolve(it)
	if err != nil {
		return resolved{}, err
	}

	var (
		id     ID
		title  string
		folder *Folder
	)
	switch v.Kind() {
	case KindLook:
		id, title, folder = it.Look.ID, it.Look.Title, it.Look.Parent()
	default:
		id, title, folder = it.Dashboard.ID, it.Dashboard.Title, it.Dashboard.Parent()
	}
	if folder == nil {
		return resolved{}, faults.MalformedInput(fmt.Sprintf("item %s: %s %s has no folder", it.ID, v.Kind(), id), nil)
	}

	r := resolved{
		title:      title,
		folderName: folder.Name,
		contentURL: fmt.Sprintf("%s/%ss/%s", base, v.Kind(), id),
		folderURL:  fmt.Sprintf("%s/spaces/%s", base, folder.ID),
	}

	switch v {
	case VariantSchedule:
		r.tooltip = "Schedule for Look: " + it.Look.Title
		r.title = it.ScheduledPlan.Name + scheduleMark
	case VariantFilter:
		r.tooltip = "Filter on Dashboard: " + it.Dashboard.Title
		r.title = it.DashboardFilter.Name + filterMark
	case VariantTile:
		r.tooltip = "Tile on Dashboard: " + it.Dashboard.Title
		r.title = it.DashboardElement.Title + tileMark
	}
	return r, nil
}

// Extract flattens one item into a record per error entry. base is the web
// base URL (see BaseURL).
func Extract(it *Item, base string) ([]Record, error) {
	if len(it.Errors) == 0 {
		return nil, nil
	}
	r, err := resolveItem(it, base)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(it.Errors))
	for _, e := range it.Errors {
		records = append(records, Record{
			Message:      e.Message,
			ContentTitle: r.title,
			FolderName:   r.folderName,
			ModelName:    e.ModelName,
			ExploreName:  e.ExploreName,
			ContentURL:   r.contentURL,
			FolderURL:    r.folderURL,
			Tooltip:      r.tooltip,
		})
	}
	return records, nil
}

// ExtractAll flattens every item. The first malformed item aborts extraction.
func ExtractAll(items []Item, base string) ([]Record, error) {
	var records []Record
	for i := range items {
		recs, err := Extract(&items[i], base)
		if err != nil {
			return nil, fmt.Errorf("content item %d: %w", i, err)
		}
		records = append(records, recs...)
	}
	return records, nil
}
