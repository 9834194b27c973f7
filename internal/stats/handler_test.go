package stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	dashboard *Dashboard
	err       error
	calls     int
}

func (f *fakeSource) Dashboard(ctx context.Context) (*Dashboard, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.dashboard, nil
}

type memCache struct {
	entry *Dashboard
	sets  int
}

func (m *memCache) Get(ctx context.Context) (*Dashboard, bool) {
	return m.entry, m.entry != nil
}

func (m *memCache) Set(ctx context.Context, d *Dashboard) {
	m.entry = d
	m.sets++
}

func setupRouter(source Source, cache Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(source, cache).Register(r.Group("/stats"))
	return r
}

func TestDashboard(t *testing.T) {
	source := &fakeSource{dashboard: &Dashboard{Stats: Totals{TotalUsers: 7, PendingRequests: 3}}}
	cache := &memCache{}
	router := setupRouter(source, cache)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/stats/dashboard", nil)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp Dashboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Stats.TotalUsers)
	assert.Equal(t, int64(3), resp.Stats.PendingRequests)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1, cache.sets, "computed payload should be cached")
}

func TestDashboardCacheHit(t *testing.T) {
	source := &fakeSource{dashboard: &Dashboard{Stats: Totals{TotalUsers: 99}}}
	cache := &memCache{entry: &Dashboard{Stats: Totals{TotalUsers: 7}}}
	router := setupRouter(source, cache)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/stats/dashboard", nil)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp Dashboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Stats.TotalUsers, "cached payload wins")
	assert.Zero(t, source.calls, "a cache hit must not recompute")
}

func TestDashboardWithoutCache(t *testing.T) {
	source := &fakeSource{dashboard: &Dashboard{Stats: Totals{TotalUsers: 1}}}
	router := setupRouter(source, nil)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/stats/dashboard", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, source.calls)
}

func TestDashboardSourceError(t *testing.T) {
	source := &fakeSource{err: errors.New("backend down")}
	router := setupRouter(source, nil)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/stats/dashboard", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Failed to fetch dashboard statistics")
}
