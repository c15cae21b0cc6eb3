// Package notes implements the note domain: the model, its persistence
// contract and the service applying validation and timestamps.
package notes

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID int64, title, description string) (*Note, error) {

	now := time.Now()
	note := &Note{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	note, err := s.repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return note, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Note, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByOwner(ctx context.Context, ownerID int64) ([]*Note, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *Service) GetAll(ctx context.Context) ([]*Note, error) {
	return s.repo.GetAll(ctx)
}

// Update applies a partial update and bumps UpdatedAt.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Note, error) {

	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Description != nil {
		note.Description = *patch.Description
	}
	note.UpdatedAt = time.Now()

	return s.repo.Update(ctx, note)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
