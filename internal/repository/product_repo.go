package repository

import (
	"context"

	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	// UpdatePrice writes only current_price; used by the apply path so the
	// price change is durable before the suggestion flag flips.
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	ReplaceSalesHistory(ctx context.Context, productID uuid.UUID, history []model.SalesRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

// historyPreload loads the sales history in recorded order so the demand
// window reads the tail as it was supplied.
func historyPreload(db *gorm.DB) *gorm.DB {
	return db.Order("sales_records.seq ASC")
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("SalesHistory", historyPreload).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("SalesHistory", historyPreload).Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("SalesHistory", historyPreload).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("SalesHistory", historyPreload).
		Where("category ILIKE ?", "%"+category+"%").Find(&products).Error
	return products, err
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("SalesHistory", historyPreload).Find(&products).Error
	return products, err
}

// List returns a page of products without their histories (list views
// exclude sales_history to keep payloads small).
func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Category != "" {
		q = q.Where("category ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Update("current_price", price).Error
}

func (r *productRepo) ReplaceSalesHistory(ctx context.Context, productID uuid.UUID, history []model.SalesRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.SalesRecord{}).Error; err != nil {
			return err
		}
		if len(history) == 0 {
			return nil
		}
		for i := range history {
			history[i].ProductID = productID
			history[i].Seq = i
		}
		return tx.Create(&history).Error
	})
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}
