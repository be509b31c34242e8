package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bonsai-backend/internal/workrecords"
)

func ruleIDs(rs []Rule) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestMatchAprilBlackPine(t *testing.T) {
	matched := Match(4, "黒松")
	ids := ruleIDs(matched)

	assert.Contains(t, ids, "spring_budding_pine")
	assert.Contains(t, ids, "repotting_conifer")
	assert.Contains(t, ids, "mild_season_watering")
	assert.Contains(t, ids, "spring_fertilizing")

	// Juniper-only and deciduous-only rules must not fire for a pine.
	assert.NotContains(t, ids, "juniper_pinching")
	assert.NotContains(t, ids, "repotting_deciduous")
}

func TestMatchUnknownSpeciesGetsUniversalRulesOnly(t *testing.T) {
	matched := Match(4, "オリーブ")
	for _, r := range matched {
		assert.Emptyf(t, r.Species, "rule %s is species-restricted", r.ID)
	}
	assert.Contains(t, ruleIDs(matched), "mild_season_watering")
}

func TestMatchEmptySpeciesCoversEverything(t *testing.T) {
	all := Match(4, "")
	pine := Match(4, "黒松")
	assert.Greater(t, len(all), 0)
	assert.GreaterOrEqual(t, len(all), len(pine))
	assert.Contains(t, ruleIDs(all), "juniper_pinching")
}

func TestMatchSpeciesIsExact(t *testing.T) {
	// No normalization: a species string must match a table entry verbatim.
	assert.NotContains(t, ruleIDs(Match(4, "黒松 ")), "spring_budding_pine")
	assert.NotContains(t, ruleIDs(Match(4, "くろまつ")), "spring_budding_pine")
}

func TestMatchPreservesTableOrder(t *testing.T) {
	matched := Match(6, "黒松")
	require.NotEmpty(t, matched)

	pos := map[string]int{}
	for i, r := range Table {
		pos[r.ID] = i
	}
	last := -1
	for _, r := range matched {
		assert.Greater(t, pos[r.ID], last)
		last = pos[r.ID]
	}
}

func TestNextMonthWrapsDecember(t *testing.T) {
	january := Match(1, "もみじ")
	fromDecember := NextMonth(12, "もみじ")
	assert.Equal(t, ruleIDs(january), ruleIDs(fromDecember))
	assert.Contains(t, ruleIDs(fromDecember), "winter_pruning_deciduous")
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Greater(t, Priority("bogus").Rank(), PriorityLow.Rank())
}

func TestTableIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Table {
		require.NotEmpty(t, r.ID)
		assert.Falsef(t, seen[r.ID], "duplicate rule id %s", r.ID)
		seen[r.ID] = true

		require.NotEmptyf(t, r.Months, "rule %s has no months", r.ID)
		for _, m := range r.Months {
			assert.GreaterOrEqual(t, m, 1, "rule %s", r.ID)
			assert.LessOrEqual(t, m, 12, "rule %s", r.ID)
		}

		require.NotEmptyf(t, r.WorkTypes, "rule %s has no work types", r.ID)
		for _, wt := range r.WorkTypes {
			assert.Truef(t, wt.Valid(), "rule %s has unknown work type %s", r.ID, wt)
		}
		for _, cond := range r.Conditions {
			for _, wt := range cond.WorkTypes {
				assert.Truef(t, wt.Valid(), "rule %s condition has unknown work type %s", r.ID, wt)
			}
			assert.Positivef(t, cond.MonthsSince, "rule %s", r.ID)
		}

		assert.NotEqualf(t, 3, r.Priority.Rank(), "rule %s has unknown priority", r.ID)
		assert.NotEmptyf(t, r.Description, "rule %s has no description", r.ID)
	}
}

func TestEveryMonthHasRules(t *testing.T) {
	for m := 1; m <= 12; m++ {
		assert.NotEmptyf(t, Match(m, ""), "month %d has no rules", m)
	}
}

func TestImportantWorkTypesStayImportant(t *testing.T) {
	for _, wt := range []workrecords.WorkType{
		workrecords.TypeRepotting,
		workrecords.TypePruning,
		workrecords.TypeWire,
		workrecords.TypeWireRemove,
	} {
		assert.True(t, wt.Important())
	}
	assert.False(t, workrecords.TypeWatering.Important())
}
