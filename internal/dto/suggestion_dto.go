package dto

import "github.com/shopspring/decimal"

type SuggestionFilter struct {
	ProductID string `form:"product_id" validate:"omitempty,uuid"`
	// Applied filters by lifecycle state: "true", "false", or empty for all.
	Applied string `form:"applied" validate:"omitempty,oneof=true false"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SuggestionResponse struct {
	ID                       string          `json:"id"`
	ProductID                string          `json:"product_id"`
	ProductName              string          `json:"product_name,omitempty"`
	SKU                      string          `json:"sku,omitempty"`
	PreviousPrice            decimal.Decimal `json:"previous_price"`
	SuggestedPrice           decimal.Decimal `json:"suggested_price"`
	ExpectedRevenueChangePct decimal.Decimal `json:"expected_revenue_change_pct"`
	ExpectedMarginChangePct  decimal.Decimal `json:"expected_margin_change_pct"`
	Reason                   string          `json:"reason"`
	Applied                  bool            `json:"applied"`
	CreatedAt                string          `json:"created_at"`
}

type SuggestionListResponse struct {
	Data  []SuggestionResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
