package handler

import (
	"bytes"
	"net/http"

	"github.com/vaibh-c/Price-Pilot/internal/apierror"
	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/infra"
	"github.com/vaibh-c/Price-Pilot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const reportLimit = 500

type SuggestionsHandler struct{ svc service.SuggestionService }

func NewSuggestionsHandler(svc service.SuggestionService) *SuggestionsHandler {
	return &SuggestionsHandler{svc: svc}
}

// List godoc
// @Summary List suggestions, newest first
// @Tags suggestions
// @Produce json
// @Param product_id query string false "Filter by product"
// @Param applied query string false "Filter by lifecycle state (true/false)"
// @Success 200 {object} dto.SuggestionListResponse
// @Router /v1/suggestions [get]
func (h *SuggestionsHandler) List(c *gin.Context) {
	var filter dto.SuggestionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid filter parameters"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list suggestions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuggestionsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Report godoc
// @Summary Download the pending suggestions as a PDF report
// @Tags suggestions
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /v1/suggestions/report [get]
func (h *SuggestionsHandler) Report(c *gin.Context) {
	suggestions, err := h.svc.PendingReport(c.Request.Context(), reportLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build report"))
		return
	}

	var buf bytes.Buffer
	if err := infra.WriteSuggestionsReport(&buf, suggestions); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build report"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="suggestions_report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
