package reports

import (
	"strings"
	"testing"

	"bonsai-backend/internal/workrecords"
)

func TestRecommendationReason(t *testing.T) {
	cases := []struct {
		name  string
		types []workrecords.WorkType
		month int
		want  string
	}{
		{
			name:  "pruning wins over later entries",
			types: []workrecords.WorkType{workrecords.TypeWatering, workrecords.TypePruning},
			month: 7,
			want:  "樹形を維持するため、定期的な剪定が必要です",
		},
		{
			name:  "repotting",
			types: []workrecords.WorkType{workrecords.TypeRepotting},
			month: 3,
			want:  "植え替えの適期です。根の健康を保つ大切な作業です",
		},
		{
			name:  "summer watering",
			types: []workrecords.WorkType{workrecords.TypeWatering},
			month: 7,
			want:  "夏場は乾燥しやすいため、水やりの回数を増やしましょう",
		},
		{
			name:  "winter watering",
			types: []workrecords.WorkType{workrecords.TypeWatering},
			month: 1,
			want:  "冬場は控えめに、土の乾きを見て水やりをしましょう",
		},
		{
			name:  "off-season watering",
			types: []workrecords.WorkType{workrecords.TypeWatering},
			month: 4,
			want:  "季節に合わせた水やりを心がけましょう",
		},
		{
			name:  "winter protection",
			types: []workrecords.WorkType{workrecords.TypeProtection},
			month: 12,
			want:  "寒さから樹を守る保護の時期です",
		},
		{
			name:  "bud work",
			types: []workrecords.WorkType{workrecords.TypeBudCut},
			month: 6,
			want:  "芽の手入れが樹形を決める時期です",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := recommendationReason(tc.types, tc.month)
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRecommendationReasonFallbackUsesLabels(t *testing.T) {
	got := recommendationReason([]workrecords.WorkType{workrecords.TypeCarving, workrecords.TypeRemake}, 5)
	if !strings.Contains(got, "彫刻") || !strings.Contains(got, "改作") {
		t.Fatalf("fallback should mention labels, got %q", got)
	}
	if !strings.HasSuffix(got, "の季節です") {
		t.Fatalf("unexpected fallback phrasing %q", got)
	}
}

func TestHighlightReasonPrefersRepotting(t *testing.T) {
	got := highlightReason([]workrecords.WorkType{workrecords.TypePruning, workrecords.TypeRepotting})
	if !strings.Contains(got, "植え替え") {
		t.Fatalf("repotting should take precedence, got %q", got)
	}
}

func TestHighlightReasonFallback(t *testing.T) {
	got := highlightReason([]workrecords.WorkType{workrecords.TypeWatering})
	if !strings.Contains(got, "水やり") {
		t.Fatalf("fallback should mention label, got %q", got)
	}
}
