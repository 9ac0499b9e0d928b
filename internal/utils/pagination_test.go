// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/products"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	p := paramsFor(t, "")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Limit)
	assert.Equal(t, "created_at", p.Sort)
	assert.Equal(t, "desc", p.Order)
}

func TestGetPaginationParamsClamping(t *testing.T) {
	p := paramsFor(t, "?page=-3&limit=9999&order=sideways")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.Limit)
	assert.Equal(t, "desc", p.Order)

	p = paramsFor(t, "?page=2&limit=24&order=asc&search=soap&category=Home")
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 24, p.Limit)
	assert.Equal(t, "asc", p.Order)
	assert.Equal(t, "soap", p.Search)
	assert.Equal(t, "Home", p.Category)
}

func TestSortClauseAllowList(t *testing.T) {
	p := PaginationParams{Sort: "price", Order: "asc"}
	assert.Equal(t, "price asc", p.SortClause("created_at", "price", "name"))

	// Columns outside the allow-list fall back to created_at.
	p = PaginationParams{Sort: "password_hash", Order: "desc"}
	assert.Equal(t, "created_at desc", p.SortClause("created_at", "price", "name"))
}

func TestResultPageMath(t *testing.T) {
	p := PaginationParams{Page: 2, Limit: 12}

	result := p.Result([]string{}, 25)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 3, result.TotalPages)

	result = p.Result([]string{}, 24)
	assert.Equal(t, 2, result.TotalPages)

	result = p.Result([]string{}, 0)
	assert.Equal(t, 0, result.TotalPages)
}
