package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"bonsai-backend/internal/bonsai"
	"bonsai-backend/internal/reports/rules"
	"bonsai-backend/internal/shared/metrics"
	"bonsai-backend/internal/shared/telemetry"
	"bonsai-backend/internal/workrecords"
)

// ErrInvalidInput marks request validation failures.
var ErrInvalidInput = errors.New("invalid input")

// PlantSource lists the user's bonsai for aggregation.
type PlantSource interface {
	ListByUser(ctx context.Context, userID string) ([]bonsai.Bonsai, error)
}

// RecordSource lists work records per bonsai for aggregation.
type RecordSource interface {
	ListByBonsai(ctx context.Context, bonsaiID string) ([]workrecords.WorkRecord, error)
}

// Service builds monthly reports from the user's plants and records. A report
// is recomputed from scratch on every generation; an existing report for the
// same (user, year, month) is overwritten in place, keeping its id.
type Service struct {
	Store   *Store
	Plants  PlantSource
	Records RecordSource

	now func() time.Time
}

// NewService constructs a Service.
func NewService(store *Store, plants PlantSource, records RecordSource) *Service {
	return &Service{Store: store, Plants: plants, Records: records, now: time.Now}
}

// Generate aggregates the user's activity for one calendar month and upserts
// the resulting report.
func (s *Service) Generate(ctx context.Context, userID string, year, month int) (MonthlyReport, error) {
	if month < 1 || month > 12 {
		return MonthlyReport{}, fmt.Errorf("%w: month must be 1 through 12", ErrInvalidInput)
	}
	if year < 1 {
		return MonthlyReport{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}

	started := s.now()
	rep, refreshed, err := s.generate(ctx, userID, year, month)
	metrics.ObserveReportDurationMs(float64(s.now().Sub(started)) / float64(time.Millisecond))
	if err != nil {
		metrics.IncReportFailed()
		telemetry.Error("report.generate_failed", map[string]any{
			"user_id": userID,
			"year":    year,
			"month":   month,
			"error":   err.Error(),
		})
		return MonthlyReport{}, err
	}
	if refreshed {
		metrics.IncReportRefreshed()
	} else {
		metrics.IncReportGenerated()
	}
	telemetry.Info("report.generated", map[string]any{
		"user_id":      userID,
		"report_id":    rep.ID,
		"year":         year,
		"month":        month,
		"bonsai_count": rep.TotalBonsaiCount,
		"work_count":   rep.TotalWorkCount,
		"refreshed":    refreshed,
	})
	return rep, nil
}

// Refresh regenerates an existing report by id, preserving its identity.
func (s *Service) Refresh(ctx context.Context, userID, reportID string) (MonthlyReport, error) {
	existing, err := s.Store.GetByID(ctx, reportID)
	if err != nil {
		return MonthlyReport{}, err
	}
	if existing.UserID != userID {
		return MonthlyReport{}, ErrNotFound
	}
	return s.Generate(ctx, userID, existing.Year, existing.Month)
}

// Get returns the user's report for one (year, month) key.
func (s *Service) Get(ctx context.Context, userID string, year, month int) (MonthlyReport, error) {
	if month < 1 || month > 12 {
		return MonthlyReport{}, fmt.Errorf("%w: month must be 1 through 12", ErrInvalidInput)
	}
	return s.Store.GetByKey(ctx, userID, year, month)
}

// List returns one page of the user's reports, newest first.
func (s *Service) List(ctx context.Context, userID, cursor string, limit int) ([]MonthlyReport, string, error) {
	return s.Store.List(ctx, userID, cursor, limit)
}

func (s *Service) generate(ctx context.Context, userID string, year, month int) (MonthlyReport, bool, error) {
	plants, err := s.Plants.ListByUser(ctx, userID)
	if err != nil {
		return MonthlyReport{}, false, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	rep := MonthlyReport{
		UserID:           userID,
		Year:             year,
		Month:            month,
		GeneratedAt:      s.now(),
		TotalBonsaiCount: len(plants),
		WorkTypeCounts:   map[workrecords.WorkType]int{},
		BonsaiSummaries:  []BonsaiMonthlySummary{},
		Highlights:       []WorkHighlight{},
		RecommendedWorks: []RecommendedWork{},
		ReportTitle:      fmt.Sprintf("%d年%d月 盆栽管理レポート", year, month),
	}

	for _, plant := range plants {
		records, err := s.Records.ListByBonsai(ctx, plant.ID)
		if err != nil {
			return MonthlyReport{}, false, err
		}
		inWindow := records[:0:0]
		for _, rec := range records {
			if !rec.Date.Before(start) && rec.Date.Before(end) {
				inWindow = append(inWindow, rec)
			}
		}
		if len(inWindow) > 0 {
			rep.TotalWorkCount += len(inWindow)
			rep.BonsaiSummaries = append(rep.BonsaiSummaries, summarize(plant, inWindow))
			for _, rec := range inWindow {
				for _, t := range rec.WorkTypes {
					rep.WorkTypeCounts[t]++
				}
				if workrecords.HasImportant(rec.WorkTypes) {
					rep.Highlights = append(rep.Highlights, highlight(plant, rec))
				}
			}
		}
		rep.RecommendedWorks = append(rep.RecommendedWorks, recommend(plant, month)...)
	}

	sort.SliceStable(rep.RecommendedWorks, func(i, j int) bool {
		return rep.RecommendedWorks[i].Priority.Rank() < rep.RecommendedWorks[j].Priority.Rank()
	})
	rep.CoverImageURL = coverImage(rep.Highlights, rep.BonsaiSummaries)

	existing, err := s.Store.GetByKey(ctx, userID, year, month)
	switch {
	case err == nil:
		rep.ID = existing.ID
		rep, err = s.Store.Update(ctx, rep)
		return rep, true, err
	case errors.Is(err, ErrNotFound):
		rep, err = s.Store.Create(ctx, rep)
		return rep, false, err
	default:
		return MonthlyReport{}, false, err
	}
}

// summarize builds the per-bonsai line. Records keep their original iteration
// order throughout.
func summarize(plant bonsai.Bonsai, records []workrecords.WorkRecord) BonsaiMonthlySummary {
	sum := BonsaiMonthlySummary{
		BonsaiID:      plant.ID,
		BonsaiName:    plant.Name,
		Species:       plant.Species,
		WorkRecordIDs: make([]string, 0, len(records)),
		WorkTypes:     []workrecords.WorkType{},
	}
	seen := map[workrecords.WorkType]struct{}{}
	parts := make([]string, 0, len(records))
	for _, rec := range records {
		sum.WorkRecordIDs = append(sum.WorkRecordIDs, rec.ID)
		for _, t := range rec.WorkTypes {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			sum.WorkTypes = append(sum.WorkTypes, t)
		}
		if workrecords.HasImportant(rec.WorkTypes) {
			sum.HasImportantWork = true
		}
		if sum.ImageURL == "" && len(rec.ImageURLs) > 0 {
			sum.ImageURL = rec.ImageURLs[0]
		}
		parts = append(parts, fmt.Sprintf("%s(%d/%d)",
			joinLabels(rec.WorkTypes), int(rec.Date.Month()), rec.Date.Day()))
	}
	if sum.ImageURL == "" && len(plant.ImageURLs) > 0 {
		sum.ImageURL = plant.ImageURLs[0]
	}
	sum.WorkSummary = strings.Join(parts, ", ")
	return sum
}

// highlight carries only the record's important tags.
func highlight(plant bonsai.Bonsai, rec workrecords.WorkRecord) WorkHighlight {
	important := workrecords.ImportantSubset(rec.WorkTypes)
	h := WorkHighlight{
		RecordID:    rec.ID,
		BonsaiID:    plant.ID,
		BonsaiName:  plant.Name,
		WorkTypes:   important,
		Date:        rec.Date,
		Description: rec.Description,
		Importance:  rules.PriorityMedium,
		Reason:      highlightReason(important),
	}
	if len(rec.ImageURLs) > 0 {
		h.ImageURL = rec.ImageURLs[0]
	}
	if workrecords.Contains(rec.WorkTypes, workrecords.TypeRepotting) {
		h.Importance = rules.PriorityHigh
	}
	return h
}

// recommend maps next month's applicable rules onto the plant.
func recommend(plant bonsai.Bonsai, month int) []RecommendedWork {
	next := month + 1
	if month == 12 {
		next = 1
	}
	matched := rules.NextMonth(month, plant.Species)
	out := make([]RecommendedWork, 0, len(matched))
	for _, rule := range matched {
		out = append(out, RecommendedWork{
			BonsaiID:     plant.ID,
			BonsaiName:   plant.Name,
			Species:      plant.Species,
			WorkTypes:    rule.WorkTypes,
			Reason:       recommendationReason(rule.WorkTypes, next),
			Priority:     rule.Priority,
			SeasonalTips: rule.Description,
		})
	}
	return out
}

// coverImage prefers the image of the most important highlight, then falls
// back to the first summary image.
func coverImage(highlights []WorkHighlight, summaries []BonsaiMonthlySummary) string {
	byImportance := make([]WorkHighlight, len(highlights))
	copy(byImportance, highlights)
	sort.SliceStable(byImportance, func(i, j int) bool {
		return byImportance[i].Importance.Rank() < byImportance[j].Importance.Rank()
	})
	for _, h := range byImportance {
		if h.ImageURL != "" {
			return h.ImageURL
		}
	}
	for _, sum := range summaries {
		if sum.ImageURL != "" {
			return sum.ImageURL
		}
	}
	return ""
}
