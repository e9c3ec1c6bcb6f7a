// internal/handlers/review.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

// ReviewHandler serves /products/:id/reviews. The product id always comes
// from the path, never from the body.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GET /products/:id/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	productID, ok := pathID(c, "id", services.ResourceProduct)
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		response = append(response, newReviewResponse(&reviews[i]))
	}
	utils.SuccessResponse(c, response)
}

// POST /products/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	productID, ok := pathID(c, "id", services.ResourceProduct)
	if !ok {
		return
	}

	var req services.ReviewRequest
	if !bindRequest(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), productID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, newReviewResponse(review))
}

// GET /products/:id/reviews/:review_id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	productID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), productID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, newReviewResponse(review))
}

// PUT /products/:id/reviews/:review_id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	productID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	var req services.ReviewRequest
	if !bindRequest(c, &req) {
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), productID, reviewID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, newReviewResponse(review))
}

// DELETE /products/:id/reviews/:review_id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	productID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), productID, reviewID); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

func reviewPath(c *gin.Context) (uint, uint, bool) {
	productID, ok := pathID(c, "id", services.ResourceProduct)
	if !ok {
		return 0, 0, false
	}
	reviewID, ok := pathID(c, "review_id", services.ResourceReview)
	if !ok {
		return 0, 0, false
	}
	return productID, reviewID, true
}
