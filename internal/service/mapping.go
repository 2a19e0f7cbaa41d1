package service

import (
	"time"

	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/model"
	"github.com/vaibh-c/Price-Pilot/internal/pricing"
)

const dateLayout = "2006-01-02"

func productToResponse(p *model.Product, includeHistory bool) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		SKU:          p.SKU,
		Category:     p.Category,
		Cost:         p.Cost,
		CurrentPrice: p.CurrentPrice,
		Inventory:    p.Inventory,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if includeHistory {
		resp.SalesHistory = make([]dto.SalesRecordResponse, 0, len(p.SalesHistory))
		for _, s := range p.SalesHistory {
			resp.SalesHistory = append(resp.SalesHistory, dto.SalesRecordResponse{
				Date:      s.Date.Format(dateLayout),
				UnitsSold: s.UnitsSold,
				Price:     s.Price,
			})
		}
	}
	return resp
}

func suggestionToResponse(s *model.Suggestion) dto.SuggestionResponse {
	resp := dto.SuggestionResponse{
		ID:                       s.ID.String(),
		ProductID:                s.ProductID.String(),
		PreviousPrice:            s.PreviousPrice,
		SuggestedPrice:           s.SuggestedPrice,
		ExpectedRevenueChangePct: s.ExpectedRevenueChangePct,
		ExpectedMarginChangePct:  s.ExpectedMarginChangePct,
		Reason:                   s.Reason,
		Applied:                  s.Applied,
		CreatedAt:                s.CreatedAt.Format(time.RFC3339),
	}
	if s.Product != nil {
		resp.ProductName = s.Product.Name
		resp.SKU = s.Product.SKU
	}
	return resp
}

// toEngineInput maps a stored product onto the engine's snapshot type.
// History stays in recorded order — the engine sorts internally where needed.
func toEngineInput(p *model.Product) pricing.ProductInput {
	history := make([]pricing.SalesPoint, 0, len(p.SalesHistory))
	for _, s := range p.SalesHistory {
		history = append(history, pricing.SalesPoint{
			Date:      s.Date,
			UnitsSold: s.UnitsSold,
			Price:     s.Price.InexactFloat64(),
		})
	}
	return pricing.ProductInput{
		Cost:         p.Cost.InexactFloat64(),
		CurrentPrice: p.CurrentPrice.InexactFloat64(),
		Inventory:    p.Inventory,
		History:      history,
	}
}
