package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lookerci/contentcheck/internal/faults"
)

const testBase = "https://example.com"

func folder(id, name string) *Folder {
	return &Folder{ID: ID(id), Name: name}
}

func TestBaseURL(t *testing.T) {
	got, err := BaseURL("https://example.com:19999")
	if err != nil {
		t.Fatalf("BaseURL error: %v", err)
	}
	if got != "https://example.com" {
		t.Errorf("BaseURL = %q, want %q", got, "https://example.com")
	}

	if _, err := BaseURL(":1999"); !faults.Is(err, faults.KindConfiguration) {
		t.Errorf("short base URL: err = %v, want configuration fault", err)
	}
}

func TestExtract_Look(t *testing.T) {
	it := &Item{
		Look: &Look{ID: "42", Title: "Revenue", Folder: folder("7", "Finance")},
		Errors: []ErrorEntry{
			{Message: "Explore not found", ModelName: "sales", ExploreName: "orders"},
			{Message: "Field not found"},
		},
	}

	recs, err := Extract(it, testBase)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	want := Record{
		Message:      "Explore not found",
		ContentTitle: "Revenue",
		FolderName:   "Finance",
		ModelName:    "sales",
		ExploreName:  "orders",
		ContentURL:   "https://example.com/looks/42",
		FolderURL:    "https://example.com/spaces/7",
	}
	if recs[0] != want {
		t.Errorf("record = %+v\nwant     %+v", recs[0], want)
	}
	if recs[1].ModelName != "" || recs[1].ExploreName != "" {
		t.Errorf("absent model/explore should be empty, got %q/%q", recs[1].ModelName, recs[1].ExploreName)
	}
}

func TestExtract_Variants(t *testing.T) {
	dash := &Dashboard{ID: "9", Title: "Ops", Folder: folder("3", "Shared")}
	look := &Look{ID: "5", Title: "Daily", Space: folder("4", "Team")}

	tests := []struct {
		name        string
		item        Item
		wantTitle   string
		wantTooltip string
		wantURL     string
		wantFolder  string
	}{
		{
			name:       "plain dashboard",
			item:       Item{Dashboard: dash},
			wantTitle:  "Ops",
			wantURL:    "https://example.com/dashboards/9",
			wantFolder: "https://example.com/spaces/3",
		},
		{
			name:        "dashboard tile",
			item:        Item{Dashboard: dash, DashboardElement: &DashboardElement{ID: "11", Title: "Latency"}},
			wantTitle:   "Latency 📊",
			wantTooltip: "Tile on Dashboard: Ops",
			wantURL:     "https://example.com/dashboards/9",
			wantFolder:  "https://example.com/spaces/3",
		},
		{
			name:        "dashboard filter",
			item:        Item{Dashboard: dash, DashboardFilter: &DashboardFilter{ID: "2", Name: "Region"}},
			wantTitle:   "Region 🔍",
			wantTooltip: "Filter on Dashboard: Ops",
			wantURL:     "https://example.com/dashboards/9",
			wantFolder:  "https://example.com/spaces/3",
		},
		{
			name:        "scheduled plan on look",
			item:        Item{Look: look, ScheduledPlan: &ScheduledPlan{ID: "8", Name: "Morning email"}},
			wantTitle:   "Morning email 📅",
			wantTooltip: "Schedule for Look: Daily",
			wantURL:     "https://example.com/looks/5",
			wantFolder:  "https://example.com/spaces/4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.item.Errors = []ErrorEntry{{Message: "boom"}}
			recs, err := Extract(&tt.item, testBase)
			if err != nil {
				t.Fatalf("Extract error: %v", err)
			}
			if len(recs) != 1 {
				t.Fatalf("got %d records, want 1", len(recs))
			}
			r := recs[0]
			if r.ContentTitle != tt.wantTitle {
				t.Errorf("ContentTitle = %q, want %q", r.ContentTitle, tt.wantTitle)
			}
			if r.Tooltip != tt.wantTooltip {
				t.Errorf("Tooltip = %q, want %q", r.Tooltip, tt.wantTooltip)
			}
			if r.ContentURL != tt.wantURL {
				t.Errorf("ContentURL = %q, want %q", r.ContentURL, tt.wantURL)
			}
			if r.FolderURL != tt.wantFolder {
				t.Errorf("FolderURL = %q, want %q", r.FolderURL, tt.wantFolder)
			}
		})
	}
}

func TestExtract_Malformed(t *testing.T) {
	dash := &Dashboard{ID: "9", Title: "Ops", Folder: folder("3", "Shared")}
	look := &Look{ID: "5", Title: "Daily", Folder: folder("4", "Team")}
	errs := []ErrorEntry{{Message: "boom"}}

	tests := []struct {
		name string
		item Item
	}{
		{"nothing set", Item{Errors: errs}},
		{"look and dashboard", Item{Look: look, Dashboard: dash, Errors: errs}},
		{"filter and tile", Item{
			Dashboard:        dash,
			DashboardFilter:  &DashboardFilter{Name: "f"},
			DashboardElement: &DashboardElement{Title: "t"},
			Errors:           errs,
		}},
		{"schedule and filter", Item{
			Look:            look,
			Dashboard:       dash,
			ScheduledPlan:   &ScheduledPlan{Name: "s"},
			DashboardFilter: &DashboardFilter{Name: "f"},
			Errors:          errs,
		}},
		{"schedule without look", Item{Dashboard: dash, ScheduledPlan: &ScheduledPlan{Name: "s"}, Errors: errs}},
		{"tile without dashboard", Item{Look: look, DashboardElement: &DashboardElement{Title: "t"}, Errors: errs}},
		{"look without folder", Item{Look: &Look{ID: "1", Title: "x"}, Errors: errs}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(&tt.item, testBase)
			if !faults.Is(err, faults.KindMalformedInput) {
				t.Errorf("err = %v, want malformed input fault", err)
			}
		})
	}
}

func TestExtract_NoErrors(t *testing.T) {
	recs, err := Extract(&Item{}, testBase)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0", len(recs))
	}
}

func TestExtractAll_PropagatesFault(t *testing.T) {
	items := []Item{
		{Look: &Look{ID: "1", Title: "ok", Folder: folder("1", "f")}, Errors: []ErrorEntry{{Message: "a"}}},
		{Errors: []ErrorEntry{{Message: "b"}}},
	}
	_, err := ExtractAll(items, testBase)
	if !faults.Is(err, faults.KindMalformedInput) {
		t.Fatalf("err = %v, want malformed input fault", err)
	}
	if !strings.Contains(err.Error(), "content item 1") {
		t.Errorf("error should name the item index: %v", err)
	}
}

func TestRecordLess(t *testing.T) {
	a := Record{ContentTitle: "A", FolderName: "z"}
	b := Record{ContentTitle: "B", FolderName: "a"}
	if !a.Less(b) || b.Less(a) {
		t.Error("ContentTitle should be compared first")
	}

	c := Record{ContentTitle: "A", FolderName: "z", Tooltip: "x"}
	if !a.Less(c) {
		t.Error("later fields should break ties")
	}
	if a.Less(a) {
		t.Error("a record is not less than itself")
	}
}

func TestIDUnmarshal(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": 42, "b": "abc", "c": null}`), &v); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if v.A != "42" || v.B != "abc" || v.C != "" {
		t.Errorf("got %q %q %q", v.A, v.B, v.C)
	}

	if err := json.Unmarshal([]byte(`{"a": true}`), &v); err == nil {
		t.Error("expected error for boolean id")
	}
}

func TestDecodeResult(t *testing.T) {
	body := `{
		"computation_time": 12.34,
		"total_looks_validated": 1200,
		"total_explores_validated": 3,
		"content_with_errors": [
			{"look": {"id": 1, "title": "L", "space": {"id": 2, "name": "S"}},
			 "errors": [{"message": "m", "model_name": "mod"}]}
		]
	}`
	res, err := DecodeResult(strings.NewReader(body))
	if err != nil {
		t.Fatalf("DecodeResult error: %v", err)
	}
	if res.TotalLooksValidated != 1200 || res.ComputationTime != 12.34 {
		t.Errorf("unexpected stats: %+v", res)
	}
	if len(res.ContentWithErrors) != 1 || res.ContentWithErrors[0].Look.Parent().Name != "S" {
		t.Errorf("unexpected items: %+v", res.ContentWithErrors)
	}

	if _, err := DecodeResult(strings.NewReader("{")); !faults.Is(err, faults.KindMalformedInput) {
		t.Errorf("truncated JSON: err = %v, want malformed input fault", err)
	}
}
