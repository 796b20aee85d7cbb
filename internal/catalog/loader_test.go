package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShopFront/internal/catalog"
)

const catalogJSON = `[
	{"id": 1, "title": "Phone A", "brand": "Apple", "category": "MOB", "price": 999, "stock": 5, "img": "a.jpg"},
	{"id": 2, "title": "Laptop B", "brand": "Dell", "category": "IT", "price": 1500, "stock": 0, "img": "b.jpg"}
]`

func TestLoadFromHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer ts.Close()

	products, err := catalog.NewLoader().Load(context.Background(), ts.URL)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, catalog.ID("1"), products[0].ID)
	assert.Equal(t, "Laptop B", products[1].Title)
}

func TestLoadHTTPBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := catalog.NewLoader().Load(context.Background(), ts.URL)
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
}

func TestLoadHTTPMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer ts.Close()

	_, err := catalog.NewLoader().Load(context.Background(), ts.URL)
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
}

func TestLoadHTTPUnreachable(t *testing.T) {
	_, err := catalog.NewLoader().Load(context.Background(), "http://127.0.0.1:1/products.json")
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))

	products, err := catalog.NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := catalog.NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
}
