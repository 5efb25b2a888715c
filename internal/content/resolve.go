package content

import (
	"fmt"
	"strings"

	"github.com/lookerci/contentcheck/internal/faults"
)

// Kind is the top-level content type an item links to.
type Kind string

const (
	KindLook      Kind = "look"
	KindDashboard Kind = "dashboard"
)

// Variant identifies what an item actually is.
type Variant int

const (
	VariantLook Variant = iota + 1
	VariantDashboard
	VariantTile
	VariantFilter
	VariantSchedule
)

func (v Variant) String() string {
	switch v {
	case VariantLook:
		return "look"
	case VariantDashboard:
		return "dashboard"
	case VariantTile:
		return "dashboard_element"
	case VariantFilter:
		return "dashboard_filter"
	case VariantSchedule:
		return "scheduled_plan"
	default:
		return "unknown"
	}
}

// Kind returns the content type the variant links to.
func (v Variant) Kind() Kind {
	if v == VariantSchedule || v == VariantLook {
		return KindLook
	}
	return KindDashboard
}

// indicator is one row of the resolution table. Rows are checked in order, so
// a scheduled plan wins over a filter, and a filter wins over a tile.
type indicator struct {
	variant Variant
	present func(*Item) bool
}

var indicators = []indicator{
	{VariantSchedule, func(it *Item) bool { return it.ScheduledPlan != nil }},
	{VariantFilter, func(it *Item) bool { return it.DashboardFilter != nil }},
	{VariantTile, func(it *Item) bool { return it.DashboardElement != nil }},
}

// Resolve determines the variant of an item. More than one populated
// indicator, or an item that names both a look and a dashboard without an
// indicator, is reported as malformed rather than guessed at.
func Resolve(it *Item) (Variant, error) {
	var found []Variant
	for _, ind := range indicators {
		if ind.present(it) {
			found = append(found, ind.variant)
		}
	}

	if len(found) > 1 {
		names := make([]string, len(found))
		for i, v := range found {
			names[i] = v.String()
		}
		return 0, faults.MalformedInput(
			fmt.Sprintf("item %s: conflicting content indicators (%s)", it.ID, strings.Join(names, ", ")), nil)
	}

	if len(found) == 1 {
		v := found[0]
		switch v {
		case VariantSchedule:
			if it.Look == nil {
				return 0, faults.MalformedInput(fmt.Sprintf("item %s: scheduled plan without a look", it.ID), nil)
			}
			if it.Dashboard != nil {
				return 0, faults.MalformedInput(fmt.Sprintf("item %s: scheduled plan on both a look and a dashboard", it.ID), nil)
			}
		default:
			if it.Dashboard == nil {
				return 0, faults.MalformedInput(fmt.Sprintf("item %s: %s without a dashboard", it.ID, v), nil)
			}
		}
		return v, nil
	}

	switch {
	case it.Look != nil && it.Dashboard != nil:
		return 0, faults.MalformedInput(fmt.Sprintf("item %s: both look and dashboard set", it.ID), nil)
	case it.Dashboard != nil:
		return VariantDashboard, nil
	case it.Look != nil:
		return VariantLook, nil
	default:
		return 0, faults.MalformedInput(fmt.Sprintf("item %s: neither look nor dashboard set", it.ID), nil)
	}
}
