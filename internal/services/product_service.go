// internal/services/product_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/storefront/internal/database"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/utils"
)

// ProductOrderingFields are the columns a listing may be sorted by.
var ProductOrderingFields = []string{"unit_price", "last_update"}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type ProductService struct {
	db *gorm.DB
}

type ProductRequest struct {
	Title       string           `json:"title" validate:"required,max=255"`
	Slug        string           `json:"slug" validate:"required,max=255,slug"`
	Description string           `json:"description"`
	Inventory   int              `json:"inventory" validate:"min=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"required,min=0,max=99999999.99,decimal_places=2"`
	Collection  uint             `json:"collection" validate:"required"`
}

type ProductQuery struct {
	utils.PaginationParams
	CollectionID *uint
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) SearchProducts(ctx context.Context, query ProductQuery) ([]models.Product, int64, error) {
	db := s.db.WithContext(ctx).Model(&models.Product{})

	if query.Search != "" {
		term := "%" + likeEscaper.Replace(strings.ToLower(query.Search)) + "%"
		db = db.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, term, term)
	}
	if query.CollectionID != nil {
		db = db.Where("collection_id = ?", *query.CollectionID)
	}
	if query.PriceMin != nil {
		db = db.Where("unit_price >= ?", *query.PriceMin)
	}
	if query.PriceMax != nil {
		db = db.Where("unit_price <= ?", *query.PriceMax)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	db = utils.ApplyOrdering(db, query.Ordering, ProductOrderingFields, "id")
	if err := utils.ApplyPagination(db, query.PaginationParams).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err, ResourceProduct, id)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	product := &models.Product{}
	req.apply(product)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCollection(tx, req.Collection); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req *ProductRequest) (*models.Product, error) {
	var product models.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return notFound(err, ResourceProduct, id)
		}
		if err := requireCollection(tx, req.Collection); err != nil {
			return err
		}

		req.apply(&product)
		if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes the product with its reviews and cart lines unless an
// order item references it, in which case ErrProductInUse is returned and
// nothing changes.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, id).Error; err != nil {
			return notFound(err, ResourceProduct, id)
		}

		var orderItemCount int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&orderItemCount).Error; err != nil {
			return fmt.Errorf("failed to count order items: %w", err)
		}
		if orderItemCount > 0 {
			return ErrProductInUse
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			if database.IsForeignKeyViolation(err) {
				return ErrProductInUse
			}
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

func (r *ProductRequest) apply(product *models.Product) {
	product.Title = r.Title
	product.Slug = r.Slug
	product.Description = r.Description
	product.Inventory = r.Inventory
	if r.UnitPrice != nil {
		product.UnitPrice = *r.UnitPrice
	}
	product.CollectionID = r.Collection
}

func requireCollection(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Collection{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if count == 0 {
		return &ValidationError{Field: "collection", Resource: ResourceCollection, Reason: ReasonDoesNotExist}
	}
	return nil
}
