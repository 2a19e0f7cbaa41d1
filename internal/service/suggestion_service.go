package service

import (
	"context"

	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/model"
	"github.com/vaibh-c/Price-Pilot/internal/repository"

	"github.com/google/uuid"
)

// SuggestionService exposes read access to the suggestion history.
type SuggestionService interface {
	List(ctx context.Context, filter dto.SuggestionFilter) (*dto.SuggestionListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SuggestionResponse, error)
	// PendingReport returns the newest pending suggestions with their
	// products preloaded, for the PDF export.
	PendingReport(ctx context.Context, limit int) ([]model.Suggestion, error)
}

type suggestionService struct {
	repo repository.SuggestionRepository
}

func NewSuggestionService(repo repository.SuggestionRepository) SuggestionService {
	return &suggestionService{repo: repo}
}

func (s *suggestionService) List(ctx context.Context, filter dto.SuggestionFilter) (*dto.SuggestionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	suggestions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SuggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		items = append(items, suggestionToResponse(&suggestions[i]))
	}
	return &dto.SuggestionListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *suggestionService) Get(ctx context.Context, id uuid.UUID) (*dto.SuggestionResponse, error) {
	suggestion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSuggestionNotFound
	}
	resp := suggestionToResponse(suggestion)
	return &resp, nil
}

func (s *suggestionService) PendingReport(ctx context.Context, limit int) ([]model.Suggestion, error) {
	return s.repo.ListPending(ctx, limit)
}
