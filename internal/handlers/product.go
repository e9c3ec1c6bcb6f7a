// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	catalog        config.CatalogConfig
}

func NewProductHandler(productService *services.ProductService, catalog config.CatalogConfig) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		catalog:        catalog,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c, h.catalog.DefaultPageSize, h.catalog.MaxPageSize)

	query := services.ProductQuery{PaginationParams: params}

	// Unparseable filters are ignored
	if collectionIDStr := c.Query("collection_id"); collectionIDStr != "" {
		if collectionID, err := strconv.ParseUint(collectionIDStr, 10, 64); err == nil {
			id := uint(collectionID)
			query.CollectionID = &id
		}
	}

	if priceMinStr := c.Query("price_min"); priceMinStr != "" {
		if priceMin, err := decimal.NewFromString(priceMinStr); err == nil {
			query.PriceMin = &priceMin
		}
	}

	if priceMaxStr := c.Query("price_max"); priceMaxStr != "" {
		if priceMax, err := decimal.NewFromString(priceMaxStr); err == nil {
			query.PriceMax = &priceMax
		}
	}

	products, total, err := h.productService.SearchProducts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ProductResponse, 0, len(products))
	for i := range products {
		response = append(response, newProductResponse(&products[i]))
	}

	result := utils.CreatePaginationResult(response, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if !bindRequest(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, newProductResponse(product))
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id", services.ResourceProduct)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, newProductResponse(product))
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id", services.ResourceProduct)
	if !ok {
		return
	}

	var req services.ProductRequest
	if !bindRequest(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, newProductResponse(product))
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id", services.ResourceProduct)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
