package mealdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (m *memoryCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memoryCache) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *memoryCache) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) (*Client, *int32) {
	t.Helper()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL
	return NewClient(opts, zap.NewNop()), &hits
}

func TestSearchByName(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.php", r.URL.Path)
		assert.Equal(t, "Arrabiata", r.URL.Query().Get("s"))
		_, _ = w.Write([]byte(`{"meals":[{"idMeal":"52771","strMeal":"Spicy Arrabiata Penne","strMealThumb":"https://img/x.jpg"}]}`))
	}, Options{})

	meals, ok := client.SearchByName(context.Background(), "Arrabiata")
	require.True(t, ok)
	require.Len(t, meals, 1)
	assert.Equal(t, "52771", meals[0].ID)
	assert.Equal(t, "Spicy Arrabiata Penne", meals[0].Name)
}

func TestNullMealsIsPresentButEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	}, Options{})

	meals, ok := client.FilterByArea(context.Background(), "Atlantis")
	assert.True(t, ok)
	assert.Empty(t, meals)
}

func TestQueryValuesAreEncoded(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filter.php", r.URL.Path)
		assert.Equal(t, "Chicken Breast", r.URL.Query().Get("i"))
		_, _ = w.Write([]byte(`{"meals":[]}`))
	}, Options{})

	_, ok := client.FilterByIngredient(context.Background(), "Chicken Breast")
	assert.True(t, ok)
}

func TestFailuresAreAbsent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"meals":[`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler, Options{})

			meals, ok := client.SearchByFirstLetter(context.Background(), "a")
			assert.False(t, ok)
			assert.Nil(t, meals)
		})
	}
}

func TestTransportErrorIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(Options{BaseURL: baseURL}, zap.NewNop())
	_, ok := client.ListAreas(context.Background())
	assert.False(t, ok)
}

func TestLookupMeal(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lookup.php", r.URL.Path)
		if r.URL.Query().Get("i") == "52772" {
			_, _ = w.Write([]byte(`{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole","strArea":"Japanese","strIngredient1":"soy sauce","strMeasure1":"3/4 cup"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"meals":null}`))
	}, Options{})

	meal := client.LookupMeal(context.Background(), "52772")
	require.NotNil(t, meal)
	assert.Equal(t, "Japanese", meal.Area)
	assert.Equal(t, "soy sauce", meal.Slots[0].Name)
	assert.Equal(t, "3/4 cup", meal.Slots[0].Measure)

	assert.Nil(t, client.LookupMeal(context.Background(), "0"))
}

func TestListEndpoints(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/categories.php":
			_, _ = w.Write([]byte(`{"categories":[{"idCategory":"1","strCategory":"Beef","strCategoryThumb":"t","strCategoryDescription":"d"}]}`))
		case r.URL.Query().Get("a") == "list":
			_, _ = w.Write([]byte(`{"meals":[{"strArea":"Italian"}]}`))
		case r.URL.Query().Get("i") == "list":
			_, _ = w.Write([]byte(`{"meals":[{"idIngredient":"1","strIngredient":"Chicken","strDescription":null}]}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}, Options{})

	ctx := context.Background()

	categories, ok := client.ListCategories(ctx)
	require.True(t, ok)
	require.Len(t, categories, 1)
	assert.Equal(t, "Beef", categories[0].Name)

	areas, ok := client.ListAreas(ctx)
	require.True(t, ok)
	require.Len(t, areas, 1)
	assert.Equal(t, "Italian", areas[0].Name)

	ingredients, ok := client.ListIngredients(ctx)
	require.True(t, ok)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Chicken", ingredients[0].Name)
	assert.Empty(t, ingredients[0].Description)
}

func TestCircuitBreakerShortCircuits(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, Options{BreakerThreshold: 2, BreakerReset: time.Minute})

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		_, ok := client.SearchByName(ctx, "x")
		assert.False(t, ok)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestResponseCache(t *testing.T) {
	cache := newMemoryCache()
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":[{"idMeal":"1","strMeal":"Soup"}]}`))
	}, Options{Cache: cache, CacheTTL: time.Minute})

	ctx := context.Background()
	first, ok := client.SearchByName(ctx, "soup")
	require.True(t, ok)
	second, ok := client.SearchByName(ctx, "soup")
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestUndecodableCacheEntryIsEvicted(t *testing.T) {
	cache := newMemoryCache()
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{Cache: cache, CacheTTL: time.Minute})

	key := client.URL("/search.php", "s", "soup")
	cache.items[key] = []byte("{broken")

	_, ok := client.SearchByName(context.Background(), "soup")

	assert.False(t, ok)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.NotContains(t, cache.items, key)
}

func TestFailedResponsesAreNotCached(t *testing.T) {
	cache := newMemoryCache()
	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, Options{Cache: cache, CacheTTL: time.Minute})

	ctx := context.Background()
	client.SearchByName(ctx, "soup")
	client.SearchByName(ctx, "soup")

	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
	assert.Empty(t, cache.items)
}

func TestURL(t *testing.T) {
	client := NewClient(Options{BaseURL: "https://example.test/api/"}, nil)

	assert.Equal(t, "https://example.test/api/categories.php", client.URL("/categories.php"))
	assert.Equal(t, "https://example.test/api/list.php?a=list", client.URL("/list.php", "a", "list"))
}
