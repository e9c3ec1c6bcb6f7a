// internal/services/review_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/models"
)

// ReviewService works on the reviews of a single product. Every lookup is
// filtered by the product id taken from the request path.
type ReviewService struct {
	db *gorm.DB
}

type ReviewRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) ListReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	db := s.db.WithContext(ctx)
	if err := requireProduct(db, productID); err != nil {
		return nil, err
	}

	reviews := []models.Review{}
	if err := db.Where("product_id = ?", productID).Order("id").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) GetReview(ctx context.Context, productID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", reviewID, productID).
		First(&review).Error
	if err != nil {
		return nil, notFound(err, ResourceReview, reviewID)
	}
	return &review, nil
}

func (s *ReviewService) CreateReview(ctx context.Context, productID uint, req *ReviewRequest) (*models.Review, error) {
	db := s.db.WithContext(ctx)
	if err := requireProduct(db, productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, productID, reviewID uint, req *ReviewRequest) (*models.Review, error) {
	review, err := s.GetReview(ctx, productID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Name = req.Name
	review.Description = req.Description
	if err := s.db.WithContext(ctx).Save(review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, productID, reviewID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", reviewID, productID).
		Delete(&models.Review{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: ResourceReview, ID: reviewID}
	}
	return nil
}

func requireProduct(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return &NotFoundError{Resource: ResourceProduct, ID: id}
	}
	return nil
}
