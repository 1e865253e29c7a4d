package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"talenthub/internal/shared/constants"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for SQL queries.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ValidatePagination validates and normalizes pagination parameters.
func ValidatePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}

	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// ParsePagination parses pagination parameters from Gin context query string.
// Returns validated pagination with defaults applied.
func ParsePagination(c *gin.Context) Pagination {
	page := parseQueryInt(c, "page", constants.DefaultPage)
	pageSize := parseQueryInt(c, "page_size", constants.DefaultPageSize)
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize == 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages == 0 {
		return 1
	}
	return pages
}
