package service

import (
	"context"
	"fmt"

	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/model"
	"github.com/vaibh-c/Price-Pilot/internal/pricing"
	"github.com/vaibh-c/Price-Pilot/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// OptimizeService runs the pricing engine over product selections and owns
// the suggestion lifecycle (create, apply).
type OptimizeService interface {
	Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeResponse, error)
	Apply(ctx context.Context, productID, suggestionID uuid.UUID) (*dto.ApplySuggestionResponse, error)
}

type optimizeService struct {
	products    repository.ProductRepository
	suggestions repository.SuggestionRepository
	engine      *pricing.Engine
	rdb         *redis.Client
}

func NewOptimizeService(
	products repository.ProductRepository,
	suggestions repository.SuggestionRepository,
	engine *pricing.Engine,
	rdb *redis.Client,
) OptimizeService {
	return &optimizeService{products: products, suggestions: suggestions, engine: engine, rdb: rdb}
}

// Optimize computes a recommendation for every selected product and persists
// exactly one unapplied suggestion per product. Each computation is pure and
// reads a single snapshot, so batches can be arbitrarily large.
func (s *optimizeService) Optimize(ctx context.Context, req dto.OptimizeRequest) (*dto.OptimizeResponse, error) {
	products, err := s.resolveProducts(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProductsMatched
	}

	results := make([]dto.OptimizationItem, 0, len(products))
	for i := range products {
		p := &products[i]
		res := s.engine.Optimize(toEngineInput(p))

		suggestion := &model.Suggestion{
			ProductID:                p.ID,
			PreviousPrice:            p.CurrentPrice,
			SuggestedPrice:           decimal.NewFromFloat(res.SuggestedPrice),
			ExpectedRevenueChangePct: decimal.NewFromFloat(res.RevenueChangePct),
			ExpectedMarginChangePct:  decimal.NewFromFloat(res.MarginChangePct),
			Reason:                   res.Reason,
			Applied:                  false,
		}
		if err := s.suggestions.Create(ctx, suggestion); err != nil {
			return nil, fmt.Errorf("create suggestion for %s: %w", p.SKU, err)
		}

		results = append(results, dto.OptimizationItem{
			ProductID:                p.ID.String(),
			ProductName:              p.Name,
			SKU:                      p.SKU,
			CurrentPrice:             p.CurrentPrice,
			SuggestedPrice:           suggestion.SuggestedPrice,
			ExpectedRevenueChangePct: suggestion.ExpectedRevenueChangePct,
			ExpectedMarginChangePct:  suggestion.ExpectedMarginChangePct,
			Reason:                   suggestion.Reason,
			SuggestionID:             suggestion.ID.String(),
		})
	}

	return &dto.OptimizeResponse{
		Message: fmt.Sprintf("Optimized %d product(s)", len(results)),
		Results: results,
	}, nil
}

func (s *optimizeService) resolveProducts(ctx context.Context, req dto.OptimizeRequest) ([]model.Product, error) {
	switch {
	case req.All:
		return s.products.FindAll(ctx)
	case req.Category != "":
		return s.products.FindByCategory(ctx, req.Category)
	case len(req.ProductIDs) > 0:
		ids := make([]uuid.UUID, 0, len(req.ProductIDs))
		for _, raw := range req.ProductIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid product id %q: %w", raw, err)
			}
			ids = append(ids, id)
		}
		return s.products.FindByIDs(ctx, ids)
	default:
		return nil, ErrEmptySelection
	}
}

// Apply transitions a suggestion to its terminal applied state and moves the
// product to the suggested price. Guard order: unknown suggestion, already
// applied, product mismatch, unknown product. The price write lands before
// the applied flag flips, and the flip is conditional on applied=false — a
// crash mid-operation never reports "applied" for an unchanged price, and
// two concurrent applies cannot both succeed.
func (s *optimizeService) Apply(ctx context.Context, productID, suggestionID uuid.UUID) (*dto.ApplySuggestionResponse, error) {
	suggestion, err := s.suggestions.FindByID(ctx, suggestionID)
	if err != nil {
		return nil, ErrSuggestionNotFound
	}
	if suggestion.Applied {
		return nil, ErrSuggestionApplied
	}
	if suggestion.ProductID != productID {
		return nil, ErrSuggestionProductMismatch
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if err := s.products.UpdatePrice(ctx, product.ID, suggestion.SuggestedPrice); err != nil {
		return nil, fmt.Errorf("update product price: %w", err)
	}

	ok, err := s.suggestions.MarkApplied(ctx, suggestion.ID)
	if err != nil {
		return nil, fmt.Errorf("mark suggestion applied: %w", err)
	}
	if !ok {
		// Lost the race — the other apply already moved the price.
		return nil, ErrSuggestionApplied
	}

	product.CurrentPrice = suggestion.SuggestedPrice
	suggestion.Applied = true
	s.invalidatePriceCache(ctx, product.SKU)

	return &dto.ApplySuggestionResponse{
		Message:    "Suggestion applied successfully",
		Product:    productToResponse(product, false),
		Suggestion: suggestionToResponse(suggestion),
	}, nil
}

func (s *optimizeService) invalidatePriceCache(ctx context.Context, sku string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, "price:"+sku).Err()
}
