package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	t.Run("first page", func(t *testing.T) {
		page, p := Paginate(items, 1, 20)
		assert.Len(t, page, 20)
		assert.Equal(t, 0, page[0])
		assert.Equal(t, Pagination{Page: 1, Limit: 20, Total: 45, TotalPages: 3}, p)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, p := Paginate(items, 3, 20)
		assert.Len(t, page, 5)
		assert.Equal(t, 40, page[0])
		assert.Equal(t, 3, p.TotalPages)
	})

	t.Run("page past the end", func(t *testing.T) {
		page, p := Paginate(items, 99, 20)
		assert.Empty(t, page)
		assert.Equal(t, 45, p.Total)
	})

	t.Run("zero values are clamped", func(t *testing.T) {
		page, p := Paginate(items, 0, 0)
		assert.Len(t, page, 1)
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 1, p.Limit)
	})

	t.Run("empty input", func(t *testing.T) {
		page, p := Paginate([]int(nil), 1, 20)
		assert.Empty(t, page)
		assert.Equal(t, Pagination{Page: 1, Limit: 20, Total: 0, TotalPages: 0}, p)
	})
}

func TestIntQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got int
	r.GET("/", func(c *gin.Context) {
		got = IntQuery(c, "page", 1)
		c.Status(http.StatusOK)
	})

	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=abc", 1},
		{"?page=-2", 1},
		{"?page=0", 1},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/"+tc.query, nil)
		r.ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, tc.want, got, tc.query)
	}
}
