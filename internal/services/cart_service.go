// internal/services/cart_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/storefront/internal/models"
)

type CartService struct {
	db *gorm.DB
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1,max=32767"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=32767"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

func (s *CartService) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{Items: []models.CartItem{}}
	if err := s.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

// GetCart loads the cart with every item and the item's product, ready for
// total computation.
func (s *CartService) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		First(&cart, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, ResourceCart, id)
	}
	return &cart, nil
}

func (s *CartService) DeleteCart(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Cart{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete cart: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return &NotFoundError{Resource: ResourceCart, ID: id}
		}
		return nil
	})
}

func (s *CartService) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	db := s.db.WithContext(ctx)
	if err := requireCart(db, cartID); err != nil {
		return nil, err
	}

	items := []models.CartItem{}
	if err := db.Preload("Product").Where("cart_id = ?", cartID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}
	return items, nil
}

func (s *CartService) GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return nil, notFound(err, ResourceCartItem, itemID)
	}
	return &item, nil
}

// AddItem puts quantity units of a product into the cart. When the cart
// already holds the product the quantities are summed in a single upsert, so
// concurrent adds for the same pair never lose an increment. A merge that
// would pass MaxCartItemQuantity leaves the line untouched.
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, req *AddCartItemRequest) (*models.CartItem, error) {
	db := s.db.WithContext(ctx)
	if err := requireCart(db, cartID); err != nil {
		return nil, err
	}

	var productCount int64
	if err := db.Model(&models.Product{}).Where("id = ?", req.ProductID).Count(&productCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if productCount == 0 {
		return nil, &ValidationError{Field: "product_id", Resource: ResourceProduct, Reason: ReasonDoesNotExist}
	}

	item := &models.CartItem{CartID: cartID, ProductID: req.ProductID, Quantity: req.Quantity}
	result := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("cart_items.quantity + excluded.quantity <= ?", models.MaxCartItemQuantity),
		}},
	}).Create(item)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &ValidationError{Field: "quantity", Resource: ResourceCartItem, Reason: ReasonQuantityLimit}
	}

	var merged models.CartItem
	err := db.Preload("Product").
		Where("cart_id = ? AND product_id = ?", cartID, req.ProductID).
		First(&merged).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload cart item: %w", err)
	}
	return &merged, nil
}

// UpdateItem overwrites the quantity of an existing line.
func (s *CartService) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID uint, req *UpdateCartItemRequest) (*models.CartItem, error) {
	result := s.db.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", req.Quantity)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &NotFoundError{Resource: ResourceCartItem, ID: itemID}
	}
	return s.GetItem(ctx, cartID, itemID)
}

func (s *CartService) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: ResourceCartItem, ID: itemID}
	}
	return nil
}

func requireCart(db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Cart{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check cart: %w", err)
	}
	if count == 0 {
		return &NotFoundError{Resource: ResourceCart, ID: id}
	}
	return nil
}
