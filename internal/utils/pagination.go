// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaginationParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Ordering string `json:"ordering"`
	Search   string `json:"search"`
}

type PaginationResult struct {
	Count      int64       `json:"count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	Results    interface{} `json:"results"`
}

func GetPaginationParams(c *gin.Context, defaultPageSize, maxPageSize int) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))

	// Validate and set defaults
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Ordering: strings.TrimSpace(c.Query("ordering")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := (params.Page - 1) * params.PageSize
	return db.Offset(offset).Limit(params.PageSize)
}

// ApplyOrdering sorts by ordering ("field" ascending, "-field" descending)
// when field is allowed, otherwise by fallback. The primary key is always the
// last sort key so pages are stable.
func ApplyOrdering(db *gorm.DB, ordering string, allowedFields []string, fallback string) *gorm.DB {
	field, direction := strings.TrimPrefix(ordering, "-"), "ASC"
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
	}

	valid := false
	for _, allowed := range allowedFields {
		if allowed == field {
			valid = true
			break
		}
	}

	if !valid {
		return db.Order(fallback)
	}
	return db.Order(field + " " + direction).Order(fallback)
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	return PaginationResult{
		Count:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
		Results:    data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Count, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.PageSize))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
