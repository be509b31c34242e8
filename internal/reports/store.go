package reports

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"bonsai-backend/internal/shared/storage/docstore"
)

// ErrNotFound is returned when a monthly report does not exist.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "report not found" }

const defaultPageSize = 20

// Store persists monthly reports through the generic document store.
type Store struct {
	col docstore.Collection
}

// NewStore constructs a Store over the given collection.
func NewStore(col docstore.Collection) *Store {
	return &Store{col: col}
}

// GetByKey returns the report for one (user, year, month) key.
func (s *Store) GetByKey(ctx context.Context, userID string, year, month int) (MonthlyReport, error) {
	raws, err := s.col.Query(ctx, docstore.Filter{
		"userId": userID,
		"year":   year,
		"month":  month,
	})
	if err != nil {
		return MonthlyReport{}, err
	}
	if len(raws) == 0 {
		return MonthlyReport{}, fmt.Errorf("%w: %d-%02d", ErrNotFound, year, month)
	}
	return decodeReport(raws[0])
}

// GetByID returns one report document.
func (s *Store) GetByID(ctx context.Context, id string) (MonthlyReport, error) {
	raw, err := s.col.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return MonthlyReport{}, ErrNotFound
		}
		return MonthlyReport{}, err
	}
	return decodeReport(raw)
}

// Create stores a new report; id and timestamps are store-assigned.
func (s *Store) Create(ctx context.Context, rep MonthlyReport) (MonthlyReport, error) {
	raw, err := s.col.Create(ctx, rep)
	if err != nil {
		return MonthlyReport{}, err
	}
	return decodeReport(raw)
}

// Update overwrites an existing report document, keeping its id.
func (s *Store) Update(ctx context.Context, rep MonthlyReport) (MonthlyReport, error) {
	raw, err := s.col.Update(ctx, rep.ID, rep)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return MonthlyReport{}, ErrNotFound
		}
		return MonthlyReport{}, err
	}
	return decodeReport(raw)
}

// List returns one page of the user's reports, newest first (year then month
// descending). The most recent report carries IsNew when it falls inside the
// returned page. The cursor is opaque to callers; an undecodable cursor
// restarts the listing from the top rather than failing the request.
func (s *Store) List(ctx context.Context, userID, cursor string, limit int) ([]MonthlyReport, string, error) {
	raws, err := s.col.Query(ctx, docstore.Filter{"userId": userID})
	if err != nil {
		return nil, "", err
	}
	all := make([]MonthlyReport, 0, len(raws))
	for _, raw := range raws {
		rep, err := decodeReport(raw)
		if err != nil {
			return nil, "", err
		}
		all = append(all, rep)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Year != all[j].Year {
			return all[i].Year > all[j].Year
		}
		return all[i].Month > all[j].Month
	})

	if limit <= 0 {
		limit = defaultPageSize
	}
	offset := decodeCursor(cursor)
	if offset >= len(all) {
		return []MonthlyReport{}, "", nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	page := all[offset:end]
	if offset == 0 && len(page) > 0 {
		page[0].IsNew = true
	}

	next := ""
	if end < len(all) {
		next = encodeCursor(end)
	}
	return page, next, nil
}

func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// decodeCursor treats any malformed cursor as the start of the listing.
func decodeCursor(cursor string) int {
	if cursor == "" {
		return 0
	}
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(string(b))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func decodeReport(raw json.RawMessage) (MonthlyReport, error) {
	var rep MonthlyReport
	if err := json.Unmarshal(raw, &rep); err != nil {
		return MonthlyReport{}, err
	}
	return rep, nil
}
