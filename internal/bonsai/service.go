package bonsai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks request validation failures.
var ErrInvalidInput = errors.New("invalid input")

// Service implements validated CRUD over the repo.
type Service struct {
	Repo *Repo
}

// NewService constructs a Service.
func NewService(repo *Repo) *Service {
	return &Service{Repo: repo}
}

// List returns all bonsai owned by the user.
func (s *Service) List(ctx context.Context, userID string) ([]Bonsai, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns one bonsai scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, id string) (Bonsai, error) {
	return s.Repo.GetForUser(ctx, userID, id)
}

// Create validates and stores a new bonsai for the user.
func (s *Service) Create(ctx context.Context, userID string, b Bonsai) (Bonsai, error) {
	b.UserID = userID
	if err := validate(b); err != nil {
		return Bonsai{}, err
	}
	if b.ImageURLs == nil {
		b.ImageURLs = []string{}
	}
	return s.Repo.Create(ctx, b)
}

// Update validates and overwrites an existing bonsai.
func (s *Service) Update(ctx context.Context, userID, id string, b Bonsai) (Bonsai, error) {
	existing, err := s.Repo.GetForUser(ctx, userID, id)
	if err != nil {
		return Bonsai{}, err
	}
	b.ID = existing.ID
	b.UserID = userID
	if err := validate(b); err != nil {
		return Bonsai{}, err
	}
	if b.ImageURLs == nil {
		b.ImageURLs = []string{}
	}
	return s.Repo.Update(ctx, b)
}

// Delete removes a bonsai owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Repo.GetForUser(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func validate(b Bonsai) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return nil
}
