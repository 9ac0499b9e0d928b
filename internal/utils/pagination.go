// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The storefront renders a 12-product grid per page; the limit cap keeps
// catalog scans bounded.
const (
	DefaultPageSize = 12
	MaxPageSize     = 60
)

// PaginationParams carries the catalog listing controls read from query
// parameters: the page window, sort column and direction, and the free-text
// and category filters.
type PaginationParams struct {
	Page     int
	Limit    int
	Sort     string
	Order    string
	Search   string
	Category string
}

// GetPaginationParams reads the listing controls from the request, clamping
// anything out of range back to the defaults.
func GetPaginationParams(c *gin.Context) PaginationParams {
	p := PaginationParams{
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", DefaultPageSize),
		Sort:     c.DefaultQuery("sort", "created_at"),
		Order:    c.DefaultQuery("order", "desc"),
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > MaxPageSize {
		p.Limit = DefaultPageSize
	}
	if p.Order != "asc" {
		p.Order = "desc"
	}
	return p
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

// Scope applies the page window as a gorm scope.
func (p PaginationParams) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((p.Page - 1) * p.Limit).Limit(p.Limit)
	}
}

// SortClause builds the ORDER BY fragment. A requested column outside the
// allow-list falls back to created_at; the direction has already been
// normalized to asc/desc.
func (p PaginationParams) SortClause(allowed ...string) string {
	column := "created_at"
	for _, a := range allowed {
		if a == p.Sort {
			column = p.Sort
			break
		}
	}
	return column + " " + p.Order
}

// PaginationResult wraps one page of items with its paging envelope.
type PaginationResult struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       interface{} `json:"data"`
}

// Result assembles the envelope for one page of data.
func (p PaginationParams) Result(data interface{}, total int64) PaginationResult {
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return PaginationResult{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
		Data:       data,
	}
}

// SetPaginationHeaders mirrors the envelope into response headers so list
// consumers can page without parsing the body.
func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
