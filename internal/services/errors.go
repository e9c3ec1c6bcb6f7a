// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrProductInUse       = errors.New("product is referenced by order items")
	ErrCollectionNotEmpty = errors.New("collection still contains products")
)

// Resource names, also the prefix of the not-found translation keys.
const (
	ResourceCollection = "collection"
	ResourceProduct    = "product"
	ResourceReview     = "review"
	ResourceCart       = "cart"
	ResourceCartItem   = "cart_item"
)

// NotFoundError is returned when a scoped lookup finds no row. It matches
// ErrNotFound with errors.Is.
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Validation reasons
const (
	ReasonDoesNotExist  = "does_not_exist"
	ReasonQuantityLimit = "quantity_limit"
)

// ValidationError rejects a request field before anything is written.
type ValidationError struct {
	Field    string
	Resource string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Field, e.Resource, e.Reason)
}

func notFound(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return fmt.Errorf("database error: %w", err)
}
