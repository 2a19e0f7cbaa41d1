package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/model"
	"github.com/vaibh-c/Price-Pilot/internal/pricing"
	"github.com/vaibh-c/Price-Pilot/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository for testing.
type stubProductRepo struct {
	products     map[uuid.UUID]*model.Product
	priceUpdates int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByCategory(_ context.Context, category string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Category), strings.ToLower(category)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	all, _ := r.FindAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) UpdatePrice(_ context.Context, id uuid.UUID, price decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("record not found")
	}
	p.CurrentPrice = price
	r.priceUpdates++
	return nil
}

func (r *stubProductRepo) ReplaceSalesHistory(_ context.Context, productID uuid.UUID, history []model.SalesRecord) error {
	p, ok := r.products[productID]
	if !ok {
		return errors.New("record not found")
	}
	p.SalesHistory = history
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubSuggestionRepo is an in-memory SuggestionRepository for testing.
type stubSuggestionRepo struct {
	suggestions map[uuid.UUID]*model.Suggestion
}

func newStubSuggestionRepo() *stubSuggestionRepo {
	return &stubSuggestionRepo{suggestions: make(map[uuid.UUID]*model.Suggestion)}
}

func (r *stubSuggestionRepo) Create(_ context.Context, s *model.Suggestion) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.suggestions[s.ID] = s
	return nil
}

func (r *stubSuggestionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Suggestion, error) {
	s, ok := r.suggestions[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return s, nil
}

func (r *stubSuggestionRepo) List(_ context.Context, _ dto.SuggestionFilter) ([]model.Suggestion, int64, error) {
	var out []model.Suggestion
	for _, s := range r.suggestions {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSuggestionRepo) ListPending(_ context.Context, limit int) ([]model.Suggestion, error) {
	var out []model.Suggestion
	for _, s := range r.suggestions {
		if !s.Applied && len(out) < limit {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSuggestionRepo) MarkApplied(_ context.Context, id uuid.UUID) (bool, error) {
	s, ok := r.suggestions[id]
	if !ok || s.Applied {
		return false, nil
	}
	s.Applied = true
	return true, nil
}

func (r *stubSuggestionRepo) DeleteUnappliedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, s := range r.suggestions {
		if !s.Applied && s.CreatedAt.Before(cutoff) {
			delete(r.suggestions, id)
			deleted++
		}
	}
	return deleted, nil
}

var _ repository.SuggestionRepository = (*stubSuggestionRepo)(nil)

// flatCompetitor always quotes the current price, so the competitor signal
// never adjusts the decision.
type flatCompetitor struct{}

func (flatCompetitor) Quote(currentPrice float64) float64 { return currentPrice }

// ── Fixtures ──────────────────────────────────────────────────────────────────

func newOptimizeFixture() (*stubProductRepo, *stubSuggestionRepo, OptimizeService) {
	products := newStubProductRepo()
	suggestions := newStubSuggestionRepo()
	svc := NewOptimizeService(products, suggestions, pricing.NewEngine(flatCompetitor{}), nil)
	return products, suggestions, svc
}

func testProduct(sku string, price float64, inventory int) *model.Product {
	history := make([]model.SalesRecord, 0, 14)
	base := time.Now().AddDate(0, 0, -14)
	for i := 0; i < 14; i++ {
		history = append(history, model.SalesRecord{
			Seq:       i,
			Date:      base.AddDate(0, 0, i),
			UnitsSold: 10,
			Price:     decimal.NewFromFloat(price),
		})
	}
	return &model.Product{
		Name:         "Product " + sku,
		SKU:          sku,
		Category:     "Electronics",
		Cost:         decimal.NewFromFloat(price / 2),
		CurrentPrice: decimal.NewFromFloat(price),
		Inventory:    inventory,
		SalesHistory: history,
	}
}

// ── Optimize ─────────────────────────────────────────────────────────────────

func TestOptimizeCreatesOneSuggestionPerProduct(t *testing.T) {
	products, suggestions, svc := newOptimizeFixture()
	p1 := products.add(testProduct("AA-001", 20.00, 100))
	p2 := products.add(testProduct("BB-002", 50.00, 3))

	resp, err := svc.Optimize(context.Background(), dto.OptimizeRequest{All: true})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Optimized 2 product(s)", resp.Message)
	assert.Len(t, suggestions.suggestions, 2)

	for _, s := range suggestions.suggestions {
		assert.False(t, s.Applied)
		switch s.ProductID {
		case p1.ID:
			assert.True(t, s.PreviousPrice.Equal(decimal.NewFromFloat(20.00)))
		case p2.ID:
			assert.True(t, s.PreviousPrice.Equal(decimal.NewFromFloat(50.00)))
		default:
			t.Fatalf("suggestion for unknown product %s", s.ProductID)
		}
		assert.NotEmpty(t, s.Reason)
	}

	// Optimize never touches the product itself.
	assert.True(t, p1.CurrentPrice.Equal(decimal.NewFromFloat(20.00)))
	assert.True(t, p2.CurrentPrice.Equal(decimal.NewFromFloat(50.00)))
}

func TestOptimizeByIDs(t *testing.T) {
	products, _, svc := newOptimizeFixture()
	p1 := products.add(testProduct("AA-001", 20.00, 100))
	products.add(testProduct("BB-002", 50.00, 3))

	resp, err := svc.Optimize(context.Background(), dto.OptimizeRequest{
		ProductIDs: []string{p1.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, p1.ID.String(), resp.Results[0].ProductID)
	assert.Equal(t, "AA-001", resp.Results[0].SKU)
}

func TestOptimizeByCategory(t *testing.T) {
	products, _, svc := newOptimizeFixture()
	products.add(testProduct("AA-001", 20.00, 100))
	fitness := testProduct("CC-003", 30.00, 50)
	fitness.Category = "Fitness"
	products.add(fitness)

	resp, err := svc.Optimize(context.Background(), dto.OptimizeRequest{Category: "fit"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "CC-003", resp.Results[0].SKU)
}

func TestOptimizeEmptySelection(t *testing.T) {
	_, _, svc := newOptimizeFixture()

	_, err := svc.Optimize(context.Background(), dto.OptimizeRequest{})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestOptimizeNoProductsMatched(t *testing.T) {
	_, _, svc := newOptimizeFixture()

	_, err := svc.Optimize(context.Background(), dto.OptimizeRequest{
		ProductIDs: []string{uuid.NewString()},
	})
	assert.ErrorIs(t, err, ErrNoProductsMatched)
}

// ── Apply ────────────────────────────────────────────────────────────────────

func applyFixture(t *testing.T) (*stubProductRepo, *stubSuggestionRepo, OptimizeService, *model.Product, *model.Suggestion) {
	t.Helper()
	products, suggestions, svc := newOptimizeFixture()
	p := products.add(testProduct("AA-001", 20.00, 100))

	resp, err := svc.Optimize(context.Background(), dto.OptimizeRequest{All: true})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	sid, err := uuid.Parse(resp.Results[0].SuggestionID)
	require.NoError(t, err)
	return products, suggestions, svc, p, suggestions.suggestions[sid]
}

func TestApplyUpdatesPriceAndFlag(t *testing.T) {
	products, _, svc, p, s := applyFixture(t)

	resp, err := svc.Apply(context.Background(), p.ID, s.ID)
	require.NoError(t, err)

	assert.True(t, p.CurrentPrice.Equal(s.SuggestedPrice))
	assert.True(t, s.Applied)
	assert.Equal(t, 1, products.priceUpdates)
	assert.True(t, resp.Suggestion.Applied)
	assert.True(t, resp.Product.CurrentPrice.Equal(s.SuggestedPrice))
}

func TestApplyTwiceFails(t *testing.T) {
	products, _, svc, p, s := applyFixture(t)

	_, err := svc.Apply(context.Background(), p.ID, s.ID)
	require.NoError(t, err)
	priceAfterFirst := p.CurrentPrice

	_, err = svc.Apply(context.Background(), p.ID, s.ID)
	assert.ErrorIs(t, err, ErrSuggestionApplied)

	// Second attempt must not move the price again.
	assert.True(t, p.CurrentPrice.Equal(priceAfterFirst))
	assert.Equal(t, 1, products.priceUpdates)
}

func TestApplyProductMismatch(t *testing.T) {
	products, _, svc, _, s := applyFixture(t)
	other := products.add(testProduct("BB-002", 50.00, 10))

	_, err := svc.Apply(context.Background(), other.ID, s.ID)
	assert.ErrorIs(t, err, ErrSuggestionProductMismatch)

	// Nothing mutated.
	assert.False(t, s.Applied)
	assert.True(t, other.CurrentPrice.Equal(decimal.NewFromFloat(50.00)))
	assert.Equal(t, 0, products.priceUpdates)
}

func TestApplyUnknownSuggestion(t *testing.T) {
	_, _, svc, p, _ := applyFixture(t)

	_, err := svc.Apply(context.Background(), p.ID, uuid.New())
	assert.ErrorIs(t, err, ErrSuggestionNotFound)
}

func TestApplyUnknownProduct(t *testing.T) {
	products, _, svc, p, s := applyFixture(t)
	delete(products.products, p.ID)

	_, err := svc.Apply(context.Background(), p.ID, s.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.False(t, s.Applied)
}
