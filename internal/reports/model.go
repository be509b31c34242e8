package reports

import (
	"time"

	"bonsai-backend/internal/reports/rules"
	"bonsai-backend/internal/workrecords"
)

// MonthlyReport is the aggregated summary of one user's care activity for one
// calendar month, plus forward-looking recommendations. A report is unique per
// (userId, year, month); regeneration overwrites in place.
type MonthlyReport struct {
	ID               string                       `json:"id"`
	UserID           string                       `json:"userId"`
	Year             int                          `json:"year"`
	Month            int                          `json:"month"`
	GeneratedAt      time.Time                    `json:"generatedAt"`
	TotalBonsaiCount int                          `json:"totalBonsaiCount"`
	TotalWorkCount   int                          `json:"totalWorkCount"`
	WorkTypeCounts   map[workrecords.WorkType]int `json:"workTypeCounts"`
	BonsaiSummaries  []BonsaiMonthlySummary       `json:"bonsaiSummaries"`
	Highlights       []WorkHighlight              `json:"highlights"`
	RecommendedWorks []RecommendedWork            `json:"recommendedWorks"`
	ReportTitle      string                       `json:"reportTitle"`
	CoverImageURL    string                       `json:"coverImageUrl,omitempty"`

	// IsNew is computed at list time for the most recent report only; it is
	// never a durable attribute of the stored document.
	IsNew bool `json:"isNew,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BonsaiMonthlySummary summarizes one bonsai's activity within the month.
// Bonsai with no records in the month are excluded from the report.
type BonsaiMonthlySummary struct {
	BonsaiID         string                 `json:"bonsaiId"`
	BonsaiName       string                 `json:"bonsaiName"`
	Species          string                 `json:"species"`
	ImageURL         string                 `json:"imageUrl,omitempty"`
	WorkRecordIDs    []string               `json:"workRecordIds"`
	WorkTypes        []workrecords.WorkType `json:"workTypes"`
	WorkSummary      string                 `json:"workSummary"`
	HasImportantWork bool                   `json:"hasImportantWork"`
}

// WorkHighlight surfaces a single record that contains important work.
type WorkHighlight struct {
	RecordID    string                 `json:"recordId"`
	BonsaiID    string                 `json:"bonsaiId"`
	BonsaiName  string                 `json:"bonsaiName"`
	WorkTypes   []workrecords.WorkType `json:"workTypes"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description,omitempty"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	Importance  rules.Priority         `json:"importance"`
	Reason      string                 `json:"reason"`
}

// RecommendedWork is one next-month care suggestion for one bonsai.
type RecommendedWork struct {
	BonsaiID     string                 `json:"bonsaiId"`
	BonsaiName   string                 `json:"bonsaiName"`
	Species      string                 `json:"species"`
	WorkTypes    []workrecords.WorkType `json:"workTypes"`
	Reason       string                 `json:"reason"`
	Priority     rules.Priority         `json:"priority"`
	SeasonalTips string                 `json:"seasonalTips"`
}

// MonthlyReportListItem is the list-view projection: counts and metadata
// without the aggregate detail.
type MonthlyReportListItem struct {
	ID               string    `json:"id"`
	Year             int       `json:"year"`
	Month            int       `json:"month"`
	GeneratedAt      time.Time `json:"generatedAt"`
	TotalBonsaiCount int       `json:"totalBonsaiCount"`
	TotalWorkCount   int       `json:"totalWorkCount"`
	ReportTitle      string    `json:"reportTitle"`
	CoverImageURL    string    `json:"coverImageUrl,omitempty"`
	IsNew            bool      `json:"isNew,omitempty"`
}

// ListItem projects the report onto its list view.
func (r MonthlyReport) ListItem() MonthlyReportListItem {
	return MonthlyReportListItem{
		ID:               r.ID,
		Year:             r.Year,
		Month:            r.Month,
		GeneratedAt:      r.GeneratedAt,
		TotalBonsaiCount: r.TotalBonsaiCount,
		TotalWorkCount:   r.TotalWorkCount,
		ReportTitle:      r.ReportTitle,
		CoverImageURL:    r.CoverImageURL,
		IsNew:            r.IsNew,
	}
}
