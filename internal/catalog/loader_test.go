package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadJSONFile(t *testing.T) {
	l := NewLoader(filepath.Join("testdata", "products.json"), WithImages(DefaultImages))

	assert.ErrorIs(t, l.Err(), ErrNotLoaded)
	require.NoError(t, l.Load(context.Background()))
	require.NoError(t, l.Err())

	assert.Equal(t, []string{"All Jerseys", "Club Jerseys", "National Teams", "Retro"}, l.Categories())
	assert.Len(t, l.Products(), 4)

	barca, ok := l.Product("1")
	require.True(t, ok)
	assert.Equal(t, "/assets/jerseys/barcelona-home.jpg", barca.Image)
	assert.True(t, barca.EffectivePrice().Equal(decimal.NewFromInt(1200)))

	other, ok := l.Product("20")
	require.True(t, ok)
	assert.Equal(t, "", other.Image)

	_, ok = l.Product("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"1", "7"}, ids(l.Featured()))
	assert.Equal(t, []string{"4"}, ids(l.View(Filter{Category: "Retro"})))
}

func TestLoader_ImageFallsBackToGallery(t *testing.T) {
	l := NewLoader(filepath.Join("testdata", "products.json"))
	require.NoError(t, l.Load(context.Background()))

	arg, ok := l.Product("7")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/arg-front.jpg", arg.Image)
}

func TestLoader_LoadYAMLDerivesCategories(t *testing.T) {
	l := NewLoader(filepath.Join("testdata", "products.yaml"))
	require.NoError(t, l.Load(context.Background()))

	assert.Equal(t, []string{"Club Jerseys"}, l.Categories())

	rm, ok := l.Product("2")
	require.True(t, ok)
	assert.True(t, rm.Price.Equal(decimal.RequireFromString("1550.5")))
	assert.Equal(t, []string{"M", "L"}, rm.Sizes)
	assert.Equal(t, []string{"10"}, ids(l.Featured()))
}

func TestLoader_LoadFromURL(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "products.json"))
	require.NoError(t, err)

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products.json":
			_, _ = w.Write(data)
		case "/products.json.gz":
			_, _ = w.Write(gz.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	for _, path := range []string{"/products.json", "/products.json.gz"} {
		t.Run(path, func(t *testing.T) {
			l := NewLoader(srv.URL+path+"?v=1", WithHTTPClient(srv.Client()))
			require.NoError(t, l.Load(context.Background()))
			assert.Len(t, l.Products(), 4)
		})
	}

	t.Run("not found yields empty catalog", func(t *testing.T) {
		l := NewLoader(srv.URL+"/missing.json", WithHTTPClient(srv.Client()))
		err := l.Load(context.Background())
		require.Error(t, err)
		assert.Equal(t, err, l.Err())
		assert.Empty(t, l.Products())
		assert.Empty(t, l.View(Filter{}))
		assert.Empty(t, l.Categories())
	})
}

func TestLoader_FailuresAreNotFatal(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(corrupt, []byte(`{"products": [`), 0o644))

	for name, source := range map[string]string{
		"missing file": filepath.Join(dir, "nope.json"),
		"corrupt json": corrupt,
	} {
		t.Run(name, func(t *testing.T) {
			l := NewLoader(source)
			assert.Error(t, l.Load(context.Background()))
			assert.Error(t, l.Err())
			assert.Empty(t, l.Products())
			assert.Empty(t, l.Featured())
		})
	}
}

func TestLoader_LoadOnceReloadReplaces(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(source, []byte(`{"products":[{"id":"1","name":"A","price":10,"sizes":["M"]}]}`), 0o644))

	l := NewLoader(source)
	ctx := context.Background()
	require.NoError(t, l.Load(ctx))

	require.NoError(t, os.WriteFile(source, []byte(`{"products":[{"id":"1","name":"A","price":10},{"id":"2","name":"B","price":20}]}`), 0o644))
	require.NoError(t, l.Load(ctx))
	assert.Len(t, l.Products(), 1, "Load must not refetch")

	require.NoError(t, l.Reload(ctx))
	assert.Len(t, l.Products(), 2)
}

func TestLoader_PrepareSkipsBadProducts(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "products.json")
	doc := `{"products":[
		{"id":"","name":"No Id","price":10},
		{"id":"1","name":"First","price":10,"discount":140},
		{"id":"1","name":"Duplicate","price":12}
	]}`
	require.NoError(t, os.WriteFile(source, []byte(doc), 0o644))

	l := NewLoader(source)
	require.NoError(t, l.Load(context.Background()))

	products := l.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "First", products[0].Name)
	assert.Equal(t, 100, products[0].Discount)
	assert.True(t, products[0].EffectivePrice().IsZero())
}
