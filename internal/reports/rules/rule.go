package rules

import "bonsai-backend/internal/workrecords"

// Priority orders recommendations: high before medium before low.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank for a priority; unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Condition references prior work history: the rule is meant to apply only
// when the listed work types last occurred at least MonthsSince months ago.
// Conditions are carried as rule data but are not evaluated by the matcher.
type Condition struct {
	WorkTypes   []workrecords.WorkType `json:"workTypes"`
	MonthsSince int                    `json:"monthsSince"`
}

// Rule is one entry of the seasonal care catalog.
type Rule struct {
	ID          string
	Species     []string // empty list applies to all species
	Months      []int    // calendar months 1..12
	WorkTypes   []workrecords.WorkType
	Description string
	Priority    Priority
	Conditions  []Condition
}

// AppliesToMonth reports whether the rule lists the given month.
func (r Rule) AppliesToMonth(month int) bool {
	for _, m := range r.Months {
		if m == month {
			return true
		}
	}
	return false
}

// AppliesToSpecies reports whether the rule covers the given species.
// An empty species list covers everything; otherwise the match is an exact,
// case-sensitive string comparison.
func (r Rule) AppliesToSpecies(species string) bool {
	if len(r.Species) == 0 {
		return true
	}
	for _, s := range r.Species {
		if s == species {
			return true
		}
	}
	return false
}
