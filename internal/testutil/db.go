// Package testutil provides the in-memory database used by package tests.
package testutil

import (
	"fmt"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront/internal/database"
	"github.com/javajoker/storefront/internal/models"
)

// NewDB opens a private in-memory SQLite database with foreign keys on and
// all migrations applied. The pool is pinned to a single connection so the
// database lives as long as the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		uuid.NewString())

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.Open(sqlite.Open(dsn), "silent", log)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// Fixtures creates rows directly, bypassing the services.
type Fixtures struct {
	T  testing.TB
	DB *gorm.DB
}

func (f Fixtures) Collection(title string) models.Collection {
	f.T.Helper()
	c := models.Collection{Title: title}
	if err := f.DB.Create(&c).Error; err != nil {
		f.T.Fatalf("create collection: %v", err)
	}
	return c
}

func (f Fixtures) Product(collectionID uint, title, price string) models.Product {
	f.T.Helper()
	p := models.Product{
		Title:        title,
		Slug:         slugify(title),
		Description:  title + " description",
		Inventory:    10,
		UnitPrice:    decimal.RequireFromString(price),
		CollectionID: collectionID,
	}
	if err := f.DB.Create(&p).Error; err != nil {
		f.T.Fatalf("create product: %v", err)
	}
	return p
}

func (f Fixtures) Review(productID uint, name string) models.Review {
	f.T.Helper()
	r := models.Review{ProductID: productID, Name: name, Description: "review by " + name}
	if err := f.DB.Create(&r).Error; err != nil {
		f.T.Fatalf("create review: %v", err)
	}
	return r
}

func (f Fixtures) Cart() models.Cart {
	f.T.Helper()
	var c models.Cart
	if err := f.DB.Create(&c).Error; err != nil {
		f.T.Fatalf("create cart: %v", err)
	}
	return c
}

// OrderItem places a one-line order for the product.
func (f Fixtures) OrderItem(product models.Product, quantity int) models.OrderItem {
	f.T.Helper()
	order := models.Order{PaymentStatus: models.PaymentStatusComplete}
	if err := f.DB.Create(&order).Error; err != nil {
		f.T.Fatalf("create order: %v", err)
	}
	item := models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: quantity, UnitPrice: product.UnitPrice}
	if err := f.DB.Create(&item).Error; err != nil {
		f.T.Fatalf("create order item: %v", err)
	}
	return item
}

func slugify(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
