package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SalesRecordInput is one history entry as supplied by clients (JSON or the
// sales_history CSV column). Date accepts "2006-01-02" or RFC 3339.
type SalesRecordInput struct {
	Date      string          `json:"date"       validate:"required"`
	UnitsSold int             `json:"units_sold" validate:"min=0"`
	Price     decimal.Decimal `json:"price"`
}

type CreateProductRequest struct {
	Name         string             `json:"name"          validate:"required,min=2,max=120"`
	SKU          string             `json:"sku"           validate:"required,min=2,max=40"`
	Category     string             `json:"category"      validate:"required"`
	Cost         decimal.Decimal    `json:"cost"          validate:"min=0"`
	CurrentPrice decimal.Decimal    `json:"current_price" validate:"min=0"`
	Inventory    int                `json:"inventory"     validate:"min=0"`
	SalesHistory []SalesRecordInput `json:"sales_history" validate:"omitempty,dive"`
}

// UpdateProductRequest covers the mutable fields. SKU is the upsert identity
// and cannot change; price changes through apply-suggestion are separate.
type UpdateProductRequest struct {
	Name         *string             `json:"name"          validate:"omitempty,min=2,max=120"`
	Category     *string             `json:"category"`
	Cost         *decimal.Decimal    `json:"cost"`
	CurrentPrice *decimal.Decimal    `json:"current_price"`
	Inventory    *int                `json:"inventory"     validate:"omitempty,min=0"`
	SalesHistory *[]SalesRecordInput `json:"sales_history" validate:"omitempty,dive"`
}

// UploadProductsRequest is the JSON body variant of the bulk upload endpoint.
// The CSV variant arrives as a multipart file instead.
type UploadProductsRequest struct {
	Products []CreateProductRequest `json:"products" validate:"required,min=1,dive"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SalesRecordResponse struct {
	Date      string          `json:"date"`
	UnitsSold int             `json:"units_sold"`
	Price     decimal.Decimal `json:"price"`
}

type ProductResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	SKU          string                `json:"sku"`
	Category     string                `json:"category"`
	Cost         decimal.Decimal       `json:"cost"`
	CurrentPrice decimal.Decimal       `json:"current_price"`
	Inventory    int                   `json:"inventory"`
	SalesHistory []SalesRecordResponse `json:"sales_history,omitempty"`
	CreatedAt    string                `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// UploadRowError reports one rejected row of a bulk upload.
type UploadRowError struct {
	Index int    `json:"index"`
	Ref   string `json:"ref"` // name or SKU when available
	Error string `json:"error"`
}

type UploadProductsResponse struct {
	Inserted int               `json:"inserted"`
	Updated  int               `json:"updated"`
	Errors   []UploadRowError  `json:"errors,omitempty"`
	Products []ProductResponse `json:"products"`
}

// PriceCheckResponse is served by the public, cached price endpoint.
type PriceCheckResponse struct {
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Inventory    int             `json:"inventory"`
}
