package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a Looker object id. API 3.1 returns numbers, API 4.0 returns strings.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("parsing id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("parsing id: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("parsing id %q: %w", n, err)
	}
	*id = ID(n.String())
	return nil
}

// Folder is the parent folder of a look or dashboard.
type Folder struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Look is the look sub-object of a validated item.
type Look struct {
	ID     ID      `json:"id"`
	Title  string  `json:"title"`
	Folder *Folder `json:"folder,omitempty"`
	Space  *Folder `json:"space,omitempty"`
}

// Parent returns the look's folder, preferring the 4.0 "folder" key over the
// 3.1 "space" key.
func (l *Look) Parent() *Folder {
	if l.Folder != nil {
		return l.Folder
	}
	return l.Space
}

// Dashboard is the dashboard sub-object of a validated item.
type Dashboard struct {
	ID     ID      `json:"id"`
	Title  string  `json:"title"`
	Folder *Folder `json:"folder,omitempty"`
	Space  *Folder `json:"space,omitempty"`
}

// Parent returns the dashboard's folder.
func (d *Dashboard) Parent() *Folder {
	if d.Folder != nil {
		return d.Folder
	}
	return d.Space
}

// DashboardElement is a tile on a dashboard.
type DashboardElement struct {
	ID          ID     `json:"id"`
	DashboardID ID     `json:"dashboard_id"`
	Title       string `json:"title"`
	Type        string `json:"type,omitempty"`
}

// DashboardFilter is a filter on a dashboard.
type DashboardFilter struct {
	ID          ID     `json:"id"`
	DashboardID ID     `json:"dashboard_id"`
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
}

// ScheduledPlan is a schedule attached to a look.
type ScheduledPlan struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	LookID ID     `json:"look_id"`
}

// ErrorEntry is one validation error attached to an item.
type ErrorEntry struct {
	Message     string `json:"message"`
	FieldName   string `json:"field_name,omitempty"`
	ModelName   string `json:"model_name,omitempty"`
	ExploreName string `json:"explore_name,omitempty"`
	Removable   bool   `json:"removable,omitempty"`
}

// Item is one piece of content the validator found errors on. Exactly which
// sub-objects are populated determines its Variant.
type Item struct {
	ID               ID                `json:"id"`
	Look             *Look             `json:"look,omitempty"`
	Dashboard        *Dashboard        `json:"dashboard,omitempty"`
	DashboardElement *DashboardElement `json:"dashboard_element,omitempty"`
	DashboardFilter  *DashboardFilter  `json:"dashboard_filter,omitempty"`
	ScheduledPlan    *ScheduledPlan    `json:"scheduled_plan,omitempty"`
	Errors           []ErrorEntry      `json:"errors"`
}

// ValidationResult is the validator's response for one run.
type ValidationResult struct {
	ComputationTime                 float64 `json:"computation_time"`
	TotalLooksValidated             int64   `json:"total_looks_validated"`
	TotalDashboardElementsValidated int64   `json:"total_dashboard_elements_validated"`
	TotalDashboardFiltersValidated  int64   `json:"total_dashboard_filters_validated"`
	TotalScheduledPlansValidated    int64   `json:"total_scheduled_plans_validated"`
	TotalExploresValidated          int64   `json:"total_explores_validated"`
	ContentWithErrors               []Item  `json:"content_with_errors"`
}

// Record is one error on one piece of content, flattened for reporting.
type Record struct {
	Message      string `json:"message"`
	ContentTitle string `json:"contentTitle"`
	FolderName   string `json:"folderName"`
	ModelName    string `json:"modelName"`
	ExploreName  string `json:"exploreName"`
	ContentURL   string `json:"contentUrl"`
	FolderURL    string `json:"folderUrl"`
	Tooltip      string `json:"tooltip,omitempty"`
}

// Less orders records by comparing (ContentTitle, FolderName, ModelName,
// ExploreName, ContentURL, FolderURL, Tooltip, Message) field by field.
func (r Record) Less(o Record) bool {
	a := [...]string{r.ContentTitle, r.FolderName, r.ModelName, r.ExploreName, r.ContentURL, r.FolderURL, r.Tooltip, r.Message}
	b := [...]string{o.ContentTitle, o.FolderName, o.ModelName, o.ExploreName, o.ContentURL, o.FolderURL, o.Tooltip, o.Message}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
