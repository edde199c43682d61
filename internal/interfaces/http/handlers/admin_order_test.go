// internal/interfaces/http/handlers/admin_order_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/orders?"+query, nil)
	return c
}

func TestParseOrderListFilterDefaults(t *testing.T) {
	filter, err := parseOrderListFilter(filterContext(t, ""))
	require.NoError(t, err)

	assert.Empty(t, filter.Status)
	assert.Empty(t, filter.CustomerEmail)
	assert.Nil(t, filter.UserID)
	assert.Nil(t, filter.From)
	assert.Nil(t, filter.To)
	assert.Nil(t, filter.MinTotal)
	assert.Nil(t, filter.MaxTotal)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 20, filter.Limit)
}

func TestParseOrderListFilterAllParams(t *testing.T) {
	query := "status=completed&email=ada%40example.com&user_id=7" +
		"&from=2026-01-01&to=2026-01-31&min_total=500&max_total=2000" +
		"&page=3&limit=50"
	filter, err := parseOrderListFilter(filterContext(t, query))
	require.NoError(t, err)

	assert.Equal(t, "completed", filter.Status)
	assert.Equal(t, "ada@example.com", filter.CustomerEmail)
	require.NotNil(t, filter.UserID)
	assert.Equal(t, uint(7), *filter.UserID)
	require.NotNil(t, filter.From)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *filter.From)
	require.NotNil(t, filter.To)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), *filter.To)
	require.NotNil(t, filter.MinTotal)
	assert.Equal(t, int64(500), *filter.MinTotal)
	require.NotNil(t, filter.MaxTotal)
	assert.Equal(t, int64(2000), *filter.MaxTotal)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 50, filter.Limit)
}

func TestParseOrderListFilterTotalRangeOnly(t *testing.T) {
	filter, err := parseOrderListFilter(filterContext(t, "min_total=1000"))
	require.NoError(t, err)
	require.NotNil(t, filter.MinTotal)
	assert.Equal(t, int64(1000), *filter.MinTotal)
	assert.Nil(t, filter.MaxTotal)
}

func TestParseOrderListFilterBadInput(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"non-numeric min_total", "min_total=abc"},
		{"non-numeric max_total", "max_total=12.50"},
		{"malformed from date", "from=01-01-2026"},
		{"malformed to date", "to=yesterday"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseOrderListFilter(filterContext(t, tc.query))
			assert.Error(t, err)
		})
	}
}
