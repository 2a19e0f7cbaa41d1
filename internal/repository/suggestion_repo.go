package repository

import (
	"context"
	"time"

	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestionRepository defines the data access contract for suggestions.
type SuggestionRepository interface {
	Create(ctx context.Context, s *model.Suggestion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Suggestion, error)
	List(ctx context.Context, filter dto.SuggestionFilter) ([]model.Suggestion, int64, error)
	ListPending(ctx context.Context, limit int) ([]model.Suggestion, error)
	// MarkApplied flips applied only when it is still false — a conditional
	// update so that of two concurrent apply attempts exactly one wins.
	MarkApplied(ctx context.Context, id uuid.UUID) (bool, error)
	// DeleteUnappliedBefore removes stale unapplied suggestions; applied
	// ones are kept as an audit trail.
	DeleteUnappliedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type suggestionRepo struct{ db *gorm.DB }

func NewSuggestionRepository(db *gorm.DB) SuggestionRepository { return &suggestionRepo{db: db} }

func (r *suggestionRepo) Create(ctx context.Context, s *model.Suggestion) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *suggestionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Suggestion, error) {
	var s model.Suggestion
	err := r.db.WithContext(ctx).Preload("Product").First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *suggestionRepo) List(ctx context.Context, filter dto.SuggestionFilter) ([]model.Suggestion, int64, error) {
	var suggestions []model.Suggestion
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Suggestion{})

	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	switch filter.Applied {
	case "true":
		q = q.Where("applied = true")
	case "false":
		q = q.Where("applied = false")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&suggestions).Error
	return suggestions, total, err
}

func (r *suggestionRepo) ListPending(ctx context.Context, limit int) ([]model.Suggestion, error) {
	var suggestions []model.Suggestion
	err := r.db.WithContext(ctx).Preload("Product").
		Where("applied = false").Order("created_at DESC").Limit(limit).Find(&suggestions).Error
	return suggestions, err
}

func (r *suggestionRepo) MarkApplied(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Suggestion{}).
		Where("id = ? AND applied = false", id).
		Update("applied", true)
	return res.RowsAffected > 0, res.Error
}

func (r *suggestionRepo) DeleteUnappliedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("applied = false AND created_at < ?", cutoff).
		Delete(&model.Suggestion{})
	return res.RowsAffected, res.Error
}
