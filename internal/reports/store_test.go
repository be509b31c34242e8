package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	filestore "bonsai-backend/internal/shared/storage/docstore/file"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filestore.New(t.TempDir()).Collection("monthly_reports"))
}

func seedReports(t *testing.T, store *Store, userID string, keys ...[2]int) []MonthlyReport {
	t.Helper()
	out := make([]MonthlyReport, 0, len(keys))
	for _, key := range keys {
		rep, err := store.Create(context.Background(), MonthlyReport{
			UserID:      userID,
			Year:        key[0],
			Month:       key[1],
			GeneratedAt: time.Now(),
			ReportTitle: "test",
		})
		if err != nil {
			t.Fatalf("seed report %v: %v", key, err)
		}
		out = append(out, rep)
	}
	return out
}

func TestListOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	seedReports(t, store, "u1", [2]int{2024, 11}, [2]int{2025, 3}, [2]int{2024, 12}, [2]int{2025, 1})
	seedReports(t, store, "other", [2]int{2025, 6})

	page, next, err := store.List(context.Background(), "u1", "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if next != "" {
		t.Fatalf("unexpected next cursor %q", next)
	}
	want := [][2]int{{2025, 3}, {2025, 1}, {2024, 12}, {2024, 11}}
	if len(page) != len(want) {
		t.Fatalf("expected %d reports, got %d", len(want), len(page))
	}
	for i, rep := range page {
		if rep.Year != want[i][0] || rep.Month != want[i][1] {
			t.Fatalf("position %d: got %d-%d, want %v", i, rep.Year, rep.Month, want[i])
		}
	}
}

func TestListMarksOnlyNewestAsNew(t *testing.T) {
	store := newTestStore(t)
	seedReports(t, store, "u1", [2]int{2025, 1}, [2]int{2025, 2}, [2]int{2025, 3})

	page, _, err := store.List(context.Background(), "u1", "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !page[0].IsNew {
		t.Fatalf("newest report should carry isNew")
	}
	for _, rep := range page[1:] {
		if rep.IsNew {
			t.Fatalf("only the newest report may carry isNew")
		}
	}
}

func TestListPagination(t *testing.T) {
	store := newTestStore(t)
	for month := 1; month <= 5; month++ {
		seedReports(t, store, "u1", [2]int{2025, month})
	}

	first, cursor, err := store.List(context.Background(), "u1", "", 2)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first) != 2 || cursor == "" {
		t.Fatalf("expected a full first page with cursor, got %d %q", len(first), cursor)
	}
	if first[0].Month != 5 || !first[0].IsNew {
		t.Fatalf("first page should start at the newest report")
	}

	second, cursor, err := store.List(context.Background(), "u1", cursor, 2)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second) != 2 || second[0].Month != 3 {
		t.Fatalf("unexpected second page")
	}
	for _, rep := range second {
		if rep.IsNew {
			t.Fatalf("later pages never carry isNew")
		}
	}

	third, cursor, err := store.List(context.Background(), "u1", cursor, 2)
	if err != nil {
		t.Fatalf("third page: %v", err)
	}
	if len(third) != 1 || cursor != "" {
		t.Fatalf("expected trailing page without cursor, got %d %q", len(third), cursor)
	}
}

func TestListMalformedCursorRestarts(t *testing.T) {
	store := newTestStore(t)
	seedReports(t, store, "u1", [2]int{2025, 1}, [2]int{2025, 2})

	for _, cursor := range []string{"###not-base64###", "bm90LWEtbnVtYmVy"} {
		page, _, err := store.List(context.Background(), "u1", cursor, 10)
		if err != nil {
			t.Fatalf("cursor %q: %v", cursor, err)
		}
		if len(page) != 2 || page[0].Month != 2 {
			t.Fatalf("malformed cursor should restart from the top")
		}
	}
}

func TestGetByKey(t *testing.T) {
	store := newTestStore(t)
	seeded := seedReports(t, store, "u1", [2]int{2025, 4})

	rep, err := store.GetByKey(context.Background(), "u1", 2025, 4)
	if err != nil {
		t.Fatalf("get by key: %v", err)
	}
	if rep.ID != seeded[0].ID {
		t.Fatalf("unexpected report %s", rep.ID)
	}

	if _, err := store.GetByKey(context.Background(), "u1", 2025, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetByKey(context.Background(), "other", 2025, 4); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other users must not see the report, got %v", err)
	}
}

func TestUpdateKeepsID(t *testing.T) {
	store := newTestStore(t)
	seeded := seedReports(t, store, "u1", [2]int{2025, 4})

	rep := seeded[0]
	rep.TotalWorkCount = 7
	updated, err := store.Update(context.Background(), rep)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != seeded[0].ID || updated.TotalWorkCount != 7 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := store.Update(context.Background(), MonthlyReport{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
