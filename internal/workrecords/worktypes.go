package workrecords

// WorkType is a closed tag for a kind of care work. Tags double as stable
// storage values; display text comes from the label table only.
type WorkType string

const (
	TypePruning      WorkType = "pruning"
	TypeRepotting    WorkType = "repotting"
	TypeWatering     WorkType = "watering"
	TypeFertilizing  WorkType = "fertilizing"
	TypeWire         WorkType = "wire"
	TypeWireRemove   WorkType = "wireremove"
	TypeBudPick      WorkType = "budpick"
	TypeBudCut       WorkType = "budcut"
	TypeLeafCut      WorkType = "leafcut"
	TypeDisinfection WorkType = "disinfection"
	TypeCarving      WorkType = "carving"
	TypeRemake       WorkType = "remake"
	TypeProtection   WorkType = "protection"
	TypeOther        WorkType = "other"
)

var labels = map[WorkType]string{
	TypePruning:      "剪定",
	TypeRepotting:    "植え替え",
	TypeWatering:     "水やり",
	TypeFertilizing:  "肥料",
	TypeWire:         "針金かけ",
	TypeWireRemove:   "針金外し",
	TypeBudPick:      "芽摘み",
	TypeBudCut:       "芽切り",
	TypeLeafCut:      "葉すかし",
	TypeDisinfection: "消毒",
	TypeCarving:      "彫刻",
	TypeRemake:       "改作",
	TypeProtection:   "保護",
	TypeOther:        "その他",
}

// importantTypes trigger report highlights: major structural or maintenance work.
var importantTypes = map[WorkType]struct{}{
	TypeRepotting:  {},
	TypePruning:    {},
	TypeWire:       {},
	TypeWireRemove: {},
}

// Valid reports whether the tag belongs to the enumeration.
func (t WorkType) Valid() bool {
	_, ok := labels[t]
	return ok
}

// Label returns the display label for the tag. Unknown tags fall back to the
// raw value so they stay visible instead of silently disappearing.
func (t WorkType) Label() string {
	if label, ok := labels[t]; ok {
		return label
	}
	return string(t)
}

// Important reports whether the tag counts as important work.
func (t WorkType) Important() bool {
	_, ok := importantTypes[t]
	return ok
}

// Labels maps a tag list to display labels, preserving order.
func Labels(types []WorkType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.Label())
	}
	return out
}

// HasImportant reports whether any tag in the list is important work.
func HasImportant(types []WorkType) bool {
	for _, t := range types {
		if t.Important() {
			return true
		}
	}
	return false
}

// ImportantSubset returns only the important tags, preserving order.
func ImportantSubset(types []WorkType) []WorkType {
	var out []WorkType
	for _, t := range types {
		if t.Important() {
			out = append(out, t)
		}
	}
	return out
}

// Contains reports whether the list carries the given tag.
func Contains(types []WorkType, target WorkType) bool {
	for _, t := range types {
		if t == target {
			return true
		}
	}
	return false
}
