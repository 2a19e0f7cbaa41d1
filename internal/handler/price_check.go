package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/vaibh-c/Price-Pilot/internal/apierror"
	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const priceCacheTTL = 4 * time.Hour

// PriceCheckHandler serves the public price lookup endpoint.
// Read-only, Redis-backed; no side effects whatsoever.
type PriceCheckHandler struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewPriceCheckHandler(repo repository.ProductRepository, rdb *redis.Client) *PriceCheckHandler {
	return &PriceCheckHandler{repo: repo, rdb: rdb}
}

// GetPriceBySKU godoc
// @Summary Price lookup by SKU (cached)
// @Tags price
// @Produce json
// @Param sku path string true "SKU"
// @Success 200 {object} dto.PriceCheckResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/price/{sku} [get]
func (h *PriceCheckHandler) GetPriceBySKU(c *gin.Context) {
	sku := c.Param("sku")
	ctx := c.Request.Context()
	cacheKey := "price:" + sku

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceCheckResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	product, err := h.repo.FindBySKU(ctx, sku)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Product not found"))
		return
	}

	resp := dto.PriceCheckResponse{
		Name:         product.Name,
		SKU:          product.SKU,
		Category:     product.Category,
		CurrentPrice: product.CurrentPrice,
		Inventory:    product.Inventory,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, priceCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
