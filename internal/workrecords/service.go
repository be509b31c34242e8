package workrecords

import (
	"context"
	"errors"
	"fmt"

	"bonsai-backend/internal/bonsai"
)

// ErrInvalidInput marks request validation failures.
var ErrInvalidInput = errors.New("invalid input")

// BonsaiSource resolves ownership of the parent bonsai.
type BonsaiSource interface {
	GetForUser(ctx context.Context, userID, id string) (bonsai.Bonsai, error)
}

// Service implements validated CRUD over the repo. Ownership is always
// enforced through the parent bonsai.
type Service struct {
	Repo   *Repo
	Bonsai BonsaiSource
}

// NewService constructs a Service.
func NewService(repo *Repo, bonsaiSrc BonsaiSource) *Service {
	return &Service{Repo: repo, Bonsai: bonsaiSrc}
}

// List returns all records for a bonsai owned by the user.
func (s *Service) List(ctx context.Context, userID, bonsaiID string) ([]WorkRecord, error) {
	if _, err := s.Bonsai.GetForUser(ctx, userID, bonsaiID); err != nil {
		return nil, err
	}
	return s.Repo.ListByBonsai(ctx, bonsaiID)
}

// Create validates and stores a new record under a bonsai owned by the user.
func (s *Service) Create(ctx context.Context, userID string, rec WorkRecord) (WorkRecord, error) {
	if _, err := s.Bonsai.GetForUser(ctx, userID, rec.BonsaiID); err != nil {
		return WorkRecord{}, err
	}
	if err := validate(rec); err != nil {
		return WorkRecord{}, err
	}
	if rec.ImageURLs == nil {
		rec.ImageURLs = []string{}
	}
	return s.Repo.Create(ctx, rec)
}

// Update validates and overwrites an existing record.
func (s *Service) Update(ctx context.Context, userID, id string, rec WorkRecord) (WorkRecord, error) {
	existing, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return WorkRecord{}, err
	}
	rec.ID = existing.ID
	rec.BonsaiID = existing.BonsaiID
	if err := validate(rec); err != nil {
		return WorkRecord{}, err
	}
	if rec.ImageURLs == nil {
		rec.ImageURLs = []string{}
	}
	return s.Repo.Update(ctx, rec)
}

// Delete removes a record owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) getOwned(ctx context.Context, userID, id string) (WorkRecord, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return WorkRecord{}, err
	}
	if _, err := s.Bonsai.GetForUser(ctx, userID, rec.BonsaiID); err != nil {
		if errors.Is(err, bonsai.ErrNotFound) {
			return WorkRecord{}, ErrNotFound
		}
		return WorkRecord{}, err
	}
	return rec, nil
}

func validate(rec WorkRecord) error {
	if len(rec.WorkTypes) == 0 {
		return fmt.Errorf("%w: at least one work type is required", ErrInvalidInput)
	}
	for _, t := range rec.WorkTypes {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown work type %q", ErrInvalidInput, string(t))
		}
	}
	if rec.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
