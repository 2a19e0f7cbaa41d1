package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/model"
	"github.com/vaibh-c/Price-Pilot/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// ProductService defines the business logic contract for the product catalog,
// including bulk CSV/JSON ingestion with upsert-by-SKU semantics.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertBatch(ctx context.Context, rows []dto.CreateProductRequest) (*dto.UploadProductsResponse, error)
	ImportCSV(ctx context.Context, data []byte) (*dto.UploadProductsResponse, error)
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, rdb: rdb}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if existing, err := s.repo.FindBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, fmt.Errorf("a product with SKU %s already exists", req.SKU)
	}

	history, err := parseHistory(req.SalesHistory)
	if err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:         strings.TrimSpace(req.Name),
		SKU:          strings.TrimSpace(req.SKU),
		Category:     strings.TrimSpace(req.Category),
		Cost:         req.Cost,
		CurrentPrice: req.CurrentPrice,
		Inventory:    req.Inventory,
		SalesHistory: history,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p, true)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	resp := productToResponse(p, true)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productToResponse(&products[i], false))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, errors.New("cost must not be negative")
		}
		p.Cost = *req.Cost
	}
	if req.CurrentPrice != nil {
		if req.CurrentPrice.IsNegative() {
			return nil, errors.New("current_price must not be negative")
		}
		p.CurrentPrice = *req.CurrentPrice
	}
	if req.Inventory != nil {
		p.Inventory = *req.Inventory
	}

	if req.SalesHistory != nil {
		history, err := parseHistory(*req.SalesHistory)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceSalesHistory(ctx, p.ID, history); err != nil {
			return nil, err
		}
		p.SalesHistory = history
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidatePriceCache(ctx, p.SKU)

	resp := productToResponse(p, true)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePriceCache(ctx, p.SKU)
	return nil
}

// ─── Bulk ingestion ──────────────────────────────────────────────────────────

// UpsertBatch validates each row and inserts or updates by SKU. Rows that
// fail validation are reported per-index and do not abort the batch.
func (s *productService) UpsertBatch(ctx context.Context, rows []dto.CreateProductRequest) (*dto.UploadProductsResponse, error) {
	resp := &dto.UploadProductsResponse{}

	for i, row := range rows {
		if msg := validateRow(row); msg != "" {
			ref := row.Name
			if ref == "" {
				ref = row.SKU
			}
			resp.Errors = append(resp.Errors, dto.UploadRowError{Index: i, Ref: ref, Error: msg})
			continue
		}

		history, err := parseHistory(row.SalesHistory)
		if err != nil {
			resp.Errors = append(resp.Errors, dto.UploadRowError{Index: i, Ref: row.SKU, Error: err.Error()})
			continue
		}

		existing, err := s.repo.FindBySKU(ctx, strings.TrimSpace(row.SKU))
		if err == nil && existing != nil {
			existing.Name = strings.TrimSpace(row.Name)
			existing.Category = strings.TrimSpace(row.Category)
			existing.Cost = row.Cost
			existing.CurrentPrice = row.CurrentPrice
			existing.Inventory = row.Inventory
			if err := s.repo.ReplaceSalesHistory(ctx, existing.ID, history); err != nil {
				return nil, err
			}
			existing.SalesHistory = history
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, err
			}
			s.invalidatePriceCache(ctx, existing.SKU)
			resp.Updated++
			resp.Products = append(resp.Products, productToResponse(existing, false))
			continue
		}

		p := &model.Product{
			Name:         strings.TrimSpace(row.Name),
			SKU:          strings.TrimSpace(row.SKU),
			Category:     strings.TrimSpace(row.Category),
			Cost:         row.Cost,
			CurrentPrice: row.CurrentPrice,
			Inventory:    row.Inventory,
			SalesHistory: history,
		}
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, err
		}
		resp.Inserted++
		resp.Products = append(resp.Products, productToResponse(p, false))
	}

	return resp, nil
}

// ImportCSV parses a CSV export and funnels the rows through UpsertBatch.
// Header names are matched case-insensitively with the aliases the dashboard
// historically produced (price/currentPrice for current_price, etc.); the
// sales_history column holds a JSON array.
func (s *productService) ImportCSV(ctx context.Context, data []byte) (*dto.UploadProductsResponse, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, errors.New("CSV must contain a header row and at least one product")
	}

	cols := indexColumns(records[0])
	rows := make([]dto.CreateProductRequest, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, dto.CreateProductRequest{
			Name:         cols.get(rec, "name"),
			SKU:          cols.get(rec, "sku"),
			Category:     cols.get(rec, "category"),
			Cost:         parseDecimal(cols.get(rec, "cost")),
			CurrentPrice: parseDecimal(firstNonEmpty(cols.get(rec, "current_price"), cols.get(rec, "currentprice"), cols.get(rec, "price"))),
			Inventory:    parseInt(cols.get(rec, "inventory")),
			SalesHistory: parseHistoryJSON(firstNonEmpty(cols.get(rec, "sales_history"), cols.get(rec, "saleshistory"))),
		})
	}

	return s.UpsertBatch(ctx, rows)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func validateRow(row dto.CreateProductRequest) string {
	switch {
	case strings.TrimSpace(row.Name) == "":
		return "name is required"
	case strings.TrimSpace(row.SKU) == "":
		return "sku is required"
	case strings.TrimSpace(row.Category) == "":
		return "category is required"
	case row.Cost.IsNegative():
		return "cost must not be negative"
	case row.CurrentPrice.IsNegative():
		return "current_price must not be negative"
	case row.Inventory < 0:
		return "inventory must not be negative"
	}
	return ""
}

func parseHistory(rows []dto.SalesRecordInput) ([]model.SalesRecord, error) {
	history := make([]model.SalesRecord, 0, len(rows))
	for i, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("sales_history[%d]: %w", i, err)
		}
		history = append(history, model.SalesRecord{
			Seq:       i,
			Date:      date,
			UnitsSold: row.UnitsSold,
			Price:     row.Price,
		})
	}
	return history, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t, nil
}

type columnIndex map[string]int

func indexColumns(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

func (c columnIndex) get(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseDecimal mirrors the forgiving CSV semantics of the original importer:
// unparseable numbers read as zero and fail row validation later if required.
func parseDecimal(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func parseHistoryJSON(raw string) []dto.SalesRecordInput {
	if raw == "" {
		return nil
	}
	var rows []dto.SalesRecordInput
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil
	}
	return rows
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (s *productService) invalidatePriceCache(ctx context.Context, sku string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, "price:"+sku).Err()
}
