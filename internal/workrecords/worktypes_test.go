package workrecords

import "testing"

func TestWorkTypeValid(t *testing.T) {
	for _, wt := range []WorkType{
		TypePruning, TypeRepotting, TypeWatering, TypeFertilizing,
		TypeWire, TypeWireRemove, TypeBudPick, TypeBudCut, TypeLeafCut,
		TypeDisinfection, TypeCarving, TypeRemake, TypeProtection, TypeOther,
	} {
		if !wt.Valid() {
			t.Fatalf("%s should be valid", wt)
		}
	}
	if WorkType("trimming").Valid() {
		t.Fatalf("unknown tag must not validate")
	}
}

func TestLabelFallsBackToRawTag(t *testing.T) {
	if got := TypePruning.Label(); got != "剪定" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := WorkType("mystery").Label(); got != "mystery" {
		t.Fatalf("unknown tag should surface raw value, got %q", got)
	}
}

func TestImportantSubset(t *testing.T) {
	types := []WorkType{TypeWatering, TypeRepotting, TypeOther, TypeWire}
	got := ImportantSubset(types)
	if len(got) != 2 || got[0] != TypeRepotting || got[1] != TypeWire {
		t.Fatalf("unexpected subset %v", got)
	}
	if !HasImportant(types) {
		t.Fatalf("expected important work")
	}
	if HasImportant([]WorkType{TypeWatering, TypeOther}) {
		t.Fatalf("watering and other are routine work")
	}
}

func TestLabelsPreserveOrder(t *testing.T) {
	got := Labels([]WorkType{TypeBudCut, TypePruning})
	if len(got) != 2 || got[0] != "芽切り" || got[1] != "剪定" {
		t.Fatalf("unexpected labels %v", got)
	}
}
