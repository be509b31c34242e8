package workschedules

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

// Service implements validated CRUD over the repo.
type Service struct {
	Repo   *Repo
	Bonsai BonsaiSource
}

// NewService constructs a Service.
func NewService(repo *Repo, bonsaiSrc BonsaiSource) *Service {
	return &Service{Repo: repo, Bonsai: bonsaiSrc}
}

// List returns all schedules for a bonsai owned by the user.
func (s *Service) List(ctx context.Context, userID, bonsaiID string) ([]WorkSchedule, error) {
	if _, err := s.Bonsai.GetForUser(ctx, userID, bonsaiID); err != nil {
		return nil, err
	}
	return s.Repo.ListByBonsai(ctx, bonsaiID)
}

// Create validates and stores a new schedule under a bonsai owned by the user.
func (s *Service) Create(ctx context.Context, userID string, ws WorkSchedule) (WorkSchedule, error) {
	if _, err := s.Bonsai.GetForUser(ctx, userID, ws.BonsaiID); err != nil {
		return WorkSchedule{}, err
	}
	if err := validate(ws); err != nil {
		return WorkSchedule{}, err
	}
	return s.Repo.Create(ctx, ws)
}

// Update validates and overwrites an existing schedule.
func (s *Service) Update(ctx context.Context, userID, id string, ws WorkSchedule) (WorkSchedule, error) {
	existing, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return WorkSchedule{}, err
	}
	ws.ID = existing.ID
	ws.BonsaiID = existing.BonsaiID
	if err := validate(ws); err != nil {
		return WorkSchedule{}, err
	}
	return s.Repo.Update(ctx, ws)
}

// Delete removes a schedule owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) getOwned(ctx context.Context, userID, id string) (WorkSchedule, error) {
	ws, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return WorkSchedule{}, err
	}
	if _, err := s.Bonsai.GetForUser(ctx, userID, ws.BonsaiID); err != nil {
		if errors.Is(err, bonsai.ErrNotFound) {
			return WorkSchedule{}, ErrNotFound
		}
		return WorkSchedule{}, err
	}
	return ws, nil
}

func validate(ws WorkSchedule) error {
	if len(ws.WorkTypes) == 0 {
		return fmt.Errorf("%w: at least one work type is required", ErrInvalidInput)
	}
	for _, t := range ws.WorkTypes {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown work type %q", ErrInvalidInput, string(t))
		}
	}
	if ws.ScheduledDate.IsZero() {
		return fmt.Errorf("%w: scheduledDate is required", ErrInvalidInput)
	}
	return nil
}
