package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	items     map[string]*Category
	counts    map[string]int64
	hasPictos map[string]bool
	created   []string
	deleted   []string
	listErr   error
	nextID    string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:     map[string]*Category{},
		counts:    map[string]int64{},
		hasPictos: map[string]bool{},
		nextID:    "new-id",
	}
}

func (f *fakeStore) List(ctx context.Context, status string) ([]Category, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []Category
	for _, cat := range f.items {
		if status == "active" && !cat.IsActive {
			continue
		}
		if status == "inactive" && cat.IsActive {
			continue
		}
		out = append(out, *cat)
	}
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (*Category, error) {
	cat, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *cat
	return &cp, nil
}

func (f *fakeStore) Create(ctx context.Context, name, nameEn, nameNl string, description *string) (string, error) {
	f.created = append(f.created, name)
	f.items[f.nextID] = &Category{ID: f.nextID, Name: name, NameEn: nameEn, NameNl: nameNl, Description: description, IsActive: true}
	return f.nextID, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, patch Patch) (*Category, error) {
	cat, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		cat.Name = *patch.Name
	}
	if patch.IsActive != nil {
		cat.IsActive = *patch.IsActive
	}
	cp := *cat
	return &cp, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.items, id)
	return nil
}

func (f *fakeStore) HasPictograms(ctx context.Context, id string) (bool, error) {
	return f.hasPictos[id], nil
}

func (f *fakeStore) PictogramCount(ctx context.Context, id string) (int64, error) {
	return f.counts[id], nil
}

func (f *fakeStore) ActiveList(ctx context.Context) ([]ActiveCategory, error) {
	var out []ActiveCategory
	for _, cat := range f.items {
		if cat.IsActive {
			out = append(out, ActiveCategory{ID: cat.ID, Name: cat.Name, NameEn: cat.NameEn, NameNl: cat.NameNl})
		}
	}
	return out, nil
}

func setupRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store).Register(r.Group("/categories"))
	return r
}

func TestListCategories(t *testing.T) {
	store := newFakeStore()
	store.items["c1"] = &Category{ID: "c1", Name: "Eten", NameEn: "Food", NameNl: "Eten", IsActive: true}
	store.counts["c1"] = 7
	router := setupRouter(store)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/categories", nil)
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Categories []Category `json:"categories"`
		Pagination struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, resp.Categories, 1)
	assert.Equal(t, int64(7), resp.Categories[0].PictogramCount)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 50, resp.Pagination.Limit)
	assert.Equal(t, 1, resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}

func TestListCategoriesStoreError(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("backend down")
	router := setupRouter(store)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/categories", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Failed to fetch categories")
}

func TestGetCategoryNotFound(t *testing.T) {
	router := setupRouter(newFakeStore())

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/categories/missing", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Category not found")
}

func TestCreateCategoryValidation(t *testing.T) {
	store := newFakeStore()
	router := setupRouter(store)

	cases := []struct {
		name string
		body string
	}{
		{"missing all names", `{}`},
		{"missing dutch name", `{"name":"Eten","nameEn":"Food"}`},
		{"whitespace only", `{"name":"  ","nameEn":"Food","nameNl":"Eten"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/categories", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "Name, Name (English), and Name (Dutch) are required")
		})
	}

	assert.Empty(t, store.created, "no record should be written on validation failure")
}

func TestCreateCategory(t *testing.T) {
	store := newFakeStore()
	router := setupRouter(store)

	body := `{"name":"Eten","nameEn":"Food","nameNl":"Eten","description":"  "}`
	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success  bool     `json:"success"`
		Category Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Eten", resp.Category.Name)
	assert.True(t, resp.Category.IsActive)
	assert.Nil(t, resp.Category.Description, "blank description should be dropped")
	assert.Equal(t, int64(0), resp.Category.PictogramCount)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	router := setupRouter(newFakeStore())

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/categories/missing", strings.NewReader(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Category not found")
}

func TestDeleteCategoryGuard(t *testing.T) {
	store := newFakeStore()
	store.items["c1"] = &Category{ID: "c1", Name: "Eten", IsActive: true}
	store.hasPictos["c1"] = true
	router := setupRouter(store)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/categories/c1", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Cannot delete category")
	assert.Empty(t, store.deleted, "guarded category must not be deleted")
}

func TestDeleteCategory(t *testing.T) {
	store := newFakeStore()
	store.items["c1"] = &Category{ID: "c1", Name: "Eten", IsActive: true}
	router := setupRouter(store)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/categories/c1", nil)
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"c1"}, store.deleted)
}

func TestActiveListDispatch(t *testing.T) {
	store := newFakeStore()
	store.items["c1"] = &Category{ID: "c1", Name: "Eten", NameEn: "Food", NameNl: "Eten", IsActive: true}
	store.items["c2"] = &Category{ID: "c2", Name: "Oud", IsActive: false}
	router := setupRouter(store)

	t.Run("active list", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/categories/active/list", nil)
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Categories []ActiveCategory `json:"categories"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Categories, 1)
		assert.Equal(t, "c1", resp.Categories[0].ID)
	})

	t.Run("other ids 404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/categories/c1/list", nil)
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
