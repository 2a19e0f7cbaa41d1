package dto

import "github.com/shopspring/decimal"

// OptimizeRequest selects which products to optimize: explicit ids, a
// category (case-insensitive substring), or everything.
type OptimizeRequest struct {
	ProductIDs []string `json:"product_ids" validate:"omitempty,dive,uuid"`
	Category   string   `json:"category"`
	All        bool     `json:"all"`
}

// OptimizationItem is one recommendation produced by an optimize run, paired
// with the id of the suggestion record created for it.
type OptimizationItem struct {
	ProductID                string          `json:"product_id"`
	ProductName              string          `json:"product_name"`
	SKU                      string          `json:"sku"`
	CurrentPrice             decimal.Decimal `json:"current_price"`
	SuggestedPrice           decimal.Decimal `json:"suggested_price"`
	ExpectedRevenueChangePct decimal.Decimal `json:"expected_revenue_change_pct"`
	ExpectedMarginChangePct  decimal.Decimal `json:"expected_margin_change_pct"`
	Reason                   string          `json:"reason"`
	SuggestionID             string          `json:"suggestion_id"`
}

type OptimizeResponse struct {
	Message string             `json:"message"`
	Results []OptimizationItem `json:"results"`
}

type ApplySuggestionRequest struct {
	ProductID    string `json:"product_id"    validate:"required,uuid"`
	SuggestionID string `json:"suggestion_id" validate:"required,uuid"`
}

type ApplySuggestionResponse struct {
	Message    string             `json:"message"`
	Product    ProductResponse    `json:"product"`
	Suggestion SuggestionResponse `json:"suggestion"`
}
