package handler

import (
	"io"
	"net/http"

	"github.com/vaibh-c/Price-Pilot/internal/apierror"
	"github.com/vaibh-c/Price-Pilot/internal/dto"
	"github.com/vaibh-c/Price-Pilot/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product"
// @Success 201 {object} dto.ProductResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List products with optional category/search filters
// @Tags products
// @Produce json
// @Param category query string false "Category filter (substring)"
// @Param search query string false "Name or SKU search"
// @Success 200 {object} dto.ProductListResponse
// @Router /v1/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Get(c *gin.Context) {
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

func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Upload godoc
// @Summary Bulk upload products (CSV file or JSON array), upserting by SKU
// @Tags products
// @Accept json
// @Accept mpfd
// @Produce json
// @Success 200 {object} dto.UploadProductsResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/products/upload [post]
//
// Two input shapes are accepted: a multipart form with a "file" field
// holding a CSV, or a JSON body with a "products" array (a single product
// object also works). Rows are upserted by SKU; invalid rows are reported
// per-index without aborting the batch.
func (h *ProductsHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Could not read uploaded file"))
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Could not read uploaded file"))
			return
		}
		resp, err := h.svc.ImportCSV(ctx, data)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	// ShouldBindBodyWith caches the body so the single-object fallback can
	// re-bind it.
	var req dto.UploadProductsRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err == nil && len(req.Products) > 0 {
		resp, err := h.svc.UpsertBatch(ctx, req.Products)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	// Single-object fallback: a bare product posted without the wrapper.
	var single dto.CreateProductRequest
	if err := c.ShouldBindBodyWith(&single, binding.JSON); err == nil && single.Name != "" && single.SKU != "" {
		resp, err := h.svc.UpsertBatch(ctx, []dto.CreateProductRequest{single})
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	c.JSON(http.StatusBadRequest, apierror.New("Provide a CSV file or a JSON products array"))
}
