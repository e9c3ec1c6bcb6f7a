// internal/handlers/collection.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type CollectionHandler struct {
	collectionService *services.CollectionService
}

func NewCollectionHandler(collectionService *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// GET /collections
func (h *CollectionHandler) GetCollections(c *gin.Context) {
	collections, err := h.collectionService.ListCollections(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CollectionResponse, 0, len(collections))
	for i := range collections {
		response = append(response, newCollectionResponse(&collections[i]))
	}
	utils.SuccessResponse(c, response)
}

// POST /collections
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var req services.CollectionRequest
	if !bindRequest(c, &req) {
		return
	}

	collection, err := h.collectionService.CreateCollection(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, newCollectionResponse(collection))
}

// GET /collections/:id
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, ok := pathID(c, "id", services.ResourceCollection)
	if !ok {
		return
	}

	collection, err := h.collectionService.GetCollection(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, newCollectionResponse(collection))
}

// PUT /collections/:id
func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	id, ok := pathID(c, "id", services.ResourceCollection)
	if !ok {
		return
	}

	var req services.CollectionRequest
	if !bindRequest(c, &req) {
		return
	}

	collection, err := h.collectionService.UpdateCollection(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, newCollectionResponse(collection))
}

// DELETE /collections/:id
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	id, ok := pathID(c, "id", services.ResourceCollection)
	if !ok {
		return
	}

	if err := h.collectionService.DeleteCollection(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
