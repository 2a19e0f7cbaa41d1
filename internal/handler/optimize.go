package handler

import (
	"net/http"

	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/service"
	"github.com/vaibh-c/Price-Pilot/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OptimizeHandler struct {
	svc         service.OptimizeService
	dispatcher  *worker.Dispatcher
	notifyEmail string
}

func NewOptimizeHandler(svc service.OptimizeService, dispatcher *worker.Dispatcher, notifyEmail string) *OptimizeHandler {
	return &OptimizeHandler{svc: svc, dispatcher: dispatcher, notifyEmail: notifyEmail}
}

// Optimize godoc
// @Summary Run price optimization over selected products
// @Tags optimize
// @Accept json
// @Produce json
// @Param selection body dto.OptimizeRequest true "Selection: product_ids, category, or all"
// @Success 200 {object} dto.OptimizeResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/optimize [post]
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req dto.OptimizeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Optimize(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// OptimizeAsync godoc
// @Summary Queue a bulk optimization to run in the background
// @Tags optimize
// @Accept json
// @Produce json
// @Param selection body dto.OptimizeRequest true "Selection: product_ids, category, or all"
// @Success 202 {object} map[string]string
// @Router /v1/optimize/async [post]
func (h *OptimizeHandler) OptimizeAsync(c *gin.Context) {
	var req dto.OptimizeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	payload := worker.OptimizeJobPayload{
		ProductIDs:  req.ProductIDs,
		Category:    req.Category,
		All:         req.All,
		NotifyEmail: h.notifyEmail,
	}
	if err := h.dispatcher.EnqueueOptimize(c.Request.Context(), payload); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Optimization queued"})
}

// Apply godoc
// @Summary Apply a price suggestion to its product
// @Tags optimize
// @Accept json
// @Produce json
// @Param apply body dto.ApplySuggestionRequest true "Product and suggestion ids"
// @Success 200 {object} dto.ApplySuggestionResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/suggestions/apply [post]
func (h *OptimizeHandler) Apply(c *gin.Context) {
	var req dto.ApplySuggestionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// uuid format already validated by the request tags
	productID, _ := uuid.Parse(req.ProductID)
	suggestionID, _ := uuid.Parse(req.SuggestionID)

	resp, err := h.svc.Apply(c.Request.Context(), productID, suggestionID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
