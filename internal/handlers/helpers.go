// internal/handlers/helpers.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

// bindRequest decodes the JSON body into req and validates it. On failure the
// error response has already been written.
func bindRequest(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, "")
		return false
	}

	if err := utils.ValidateStruct(req); err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
		} else {
			utils.InternalErrorResponse(c, err)
		}
		return false
	}
	return true
}

// pathID parses a numeric path parameter. A malformed id can never match a
// row, so it is answered with the resource's not-found response.
func pathID(c *gin.Context, param, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.NotFoundResponse(c, resource)
		return 0, false
	}
	return uint(id), true
}

func pathCartID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, services.ResourceCart)
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps a service error onto the HTTP error responses.
func respondError(c *gin.Context, err error) {
	var notFoundErr *services.NotFoundError
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		utils.ValidationErrorResponse(c, []utils.ValidationError{{
			Field:   validationErr.Field,
			Tag:     validationErr.Reason,
			Message: validationMessage(utils.GetLangFromContext(c), validationErr),
		}})
	case errors.As(err, &notFoundErr):
		utils.NotFoundResponse(c, notFoundErr.Resource)
	case errors.Is(err, services.ErrProductInUse):
		utils.ConflictResponse(c, i18n.KeyProductInUse)
	case errors.Is(err, services.ErrCollectionNotEmpty):
		utils.ConflictResponse(c, i18n.KeyCollectionNotEmpty)
	default:
		utils.InternalErrorResponse(c, err)
	}
}

func validationMessage(lang string, err *services.ValidationError) string {
	if err.Reason == services.ReasonQuantityLimit {
		return i18n.T(lang, i18n.KeyValidationQuantityLimit, models.MaxCartItemQuantity)
	}
	return i18n.T(lang, i18n.KeyValidationDoesNotExist, err.Resource)
}
