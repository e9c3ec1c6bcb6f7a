// internal/services/collection_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/storefront/internal/database"
	"github.com/javajoker/storefront/internal/models"
)

type CollectionService struct {
	db *gorm.DB
}

type CollectionRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

// withProductCount selects collections annotated with a live product count.
func (s *CollectionService) withProductCount(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Collection{}).
		Select("collections.id, collections.title, collections.created_at, COUNT(products.id) AS product_count").
		Joins("LEFT JOIN products ON products.collection_id = collections.id").
		Group("collections.id, collections.title, collections.created_at")
}

func (s *CollectionService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	collections := []models.Collection{}
	if err := s.withProductCount(ctx).Order("collections.id").Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}
	return collections, nil
}

func (s *CollectionService) GetCollection(ctx context.Context, id uint) (*models.Collection, error) {
	var collection models.Collection
	if err := s.withProductCount(ctx).Where("collections.id = ?", id).Take(&collection).Error; err != nil {
		return nil, notFound(err, ResourceCollection, id)
	}
	return &collection, nil
}

func (s *CollectionService) CreateCollection(ctx context.Context, req *CollectionRequest) (*models.Collection, error) {
	collection := &models.Collection{Title: req.Title}
	if err := s.db.WithContext(ctx).Create(collection).Error; err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return collection, nil
}

func (s *CollectionService) UpdateCollection(ctx context.Context, id uint, req *CollectionRequest) (*models.Collection, error) {
	result := s.db.WithContext(ctx).Model(&models.Collection{}).Where("id = ?", id).Update("title", req.Title)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update collection: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: ResourceCollection, ID: id}
	}
	return s.GetCollection(ctx, id)
}

// DeleteCollection refuses with ErrCollectionNotEmpty while any product
// belongs to the collection. The count runs under a lock on the collection
// row so a product cannot be attached between the check and the delete.
func (s *CollectionService) DeleteCollection(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var collection models.Collection
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&collection, id).Error; err != nil {
			return notFound(err, ResourceCollection, id)
		}

		var productCount int64
		if err := tx.Model(&models.Product{}).Where("collection_id = ?", id).Count(&productCount).Error; err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if productCount > 0 {
			return ErrCollectionNotEmpty
		}

		if err := tx.Delete(&collection).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return ErrCollectionNotEmpty
			}
			return fmt.Errorf("failed to delete collection: %w", err)
		}
		return nil
	})
}
