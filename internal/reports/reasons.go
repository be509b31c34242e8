package reports

import (
	"fmt"
	"strings"

	"bonsai-backend/internal/workrecords"
)

// Reason phrasing is driven by an ordered predicate list rather than free-form
// branching. The first matching entry wins, which keeps wording stable for any
// combination of work types.

type reasonEntry struct {
	match  func(types []workrecords.WorkType, month int) bool
	phrase string
}

func hasType(t workrecords.WorkType) func([]workrecords.WorkType, int) bool {
	return func(types []workrecords.WorkType, _ int) bool {
		return workrecords.Contains(types, t)
	}
}

func hasTypeInMonths(t workrecords.WorkType, months ...int) func([]workrecords.WorkType, int) bool {
	return func(types []workrecords.WorkType, month int) bool {
		if !workrecords.Contains(types, t) {
			return false
		}
		for _, m := range months {
			if m == month {
				return true
			}
		}
		return false
	}
}

func anyType(ts ...workrecords.WorkType) func([]workrecords.WorkType, int) bool {
	return func(types []workrecords.WorkType, _ int) bool {
		for _, t := range ts {
			if workrecords.Contains(types, t) {
				return true
			}
		}
		return false
	}
}

var recommendationReasons = []reasonEntry{
	{hasType(workrecords.TypePruning), "樹形を維持するため、定期的な剪定が必要です"},
	{hasType(workrecords.TypeRepotting), "植え替えの適期です。根の健康を保つ大切な作業です"},
	{hasType(workrecords.TypeFertilizing), "生育に合わせた施肥の時期です"},
	{hasTypeInMonths(workrecords.TypeWatering, 6, 7, 8), "夏場は乾燥しやすいため、水やりの回数を増やしましょう"},
	{hasTypeInMonths(workrecords.TypeWatering, 12, 1, 2), "冬場は控えめに、土の乾きを見て水やりをしましょう"},
	{hasType(workrecords.TypeWatering), "季節に合わせた水やりを心がけましょう"},
	{hasTypeInMonths(workrecords.TypeProtection, 6, 7, 8), "強い日差しから樹を守る遮光の時期です"},
	{hasTypeInMonths(workrecords.TypeProtection, 12, 1, 2), "寒さから樹を守る保護の時期です"},
	{hasType(workrecords.TypeProtection), "気候の変化から樹を守りましょう"},
	{hasType(workrecords.TypeWire), "針金かけの適期です"},
	{hasType(workrecords.TypeWireRemove), "針金の食い込みを確認する時期です"},
	{anyType(workrecords.TypeBudPick, workrecords.TypeBudCut), "芽の手入れが樹形を決める時期です"},
	{hasType(workrecords.TypeDisinfection), "病害虫を防ぐ消毒の時期です"},
}

// recommendationReason picks the phrase for a recommended rule's work types.
func recommendationReason(types []workrecords.WorkType, month int) string {
	for _, e := range recommendationReasons {
		if e.match(types, month) {
			return e.phrase
		}
	}
	return fmt.Sprintf("%sの季節です", joinLabels(types))
}

// highlightReason explains why a record was surfaced, keyed off the most
// significant work type it contains.
func highlightReason(types []workrecords.WorkType) string {
	switch {
	case workrecords.Contains(types, workrecords.TypeRepotting):
		return "植え替えは樹の生育を左右する重要な作業です"
	case workrecords.Contains(types, workrecords.TypePruning):
		return "剪定は樹形づくりの基本となる作業です"
	case workrecords.Contains(types, workrecords.TypeWire):
		return "針金かけで枝の流れを整えました"
	case workrecords.Contains(types, workrecords.TypeWireRemove):
		return "針金外しで食い込みを防ぎました"
	default:
		return fmt.Sprintf("%sは成長にとって大切な作業です", joinLabels(types))
	}
}

func joinLabels(types []workrecords.WorkType) string {
	return strings.Join(workrecords.Labels(types), "、")
}
