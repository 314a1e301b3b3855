package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/freshcart/pkg/enums"
)

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalog([]Product{
		{ID: "1", Name: "Milk", Category: enums.ProductCategoryDairy},
		{ID: "1", Name: "Curd", Category: enums.ProductCategoryDairy},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewCatalogValidatesFields(t *testing.T) {
	cases := map[string]Product{
		"missing id":     {Name: "Milk", Category: enums.ProductCategoryDairy},
		"bad category":   {ID: "1", Name: "Milk", Category: "Toys"},
		"all sentinel":   {ID: "1", Name: "Milk", Category: enums.CategoryAll},
		"negative price": {ID: "1", Name: "Milk", Category: enums.ProductCategoryDairy, Price: -1},
		"rating too big": {ID: "1", Name: "Milk", Category: enums.ProductCategoryDairy, Rating: 5.5},
		"negative count": {ID: "1", Name: "Milk", Category: enums.ProductCategoryDairy, ReviewCount: -2},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog([]Product{p})
			assert.Error(t, err)
		})
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	original := 80.0
	c, err := NewCatalog([]Product{
		{ID: "1", Name: "Bananas", Category: enums.ProductCategoryFruits, Price: 60, OriginalPrice: &original},
	})
	require.NoError(t, err)

	all := c.All()
	all[0].Name = "Changed"
	*all[0].OriginalPrice = 1

	got, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Bananas", got.Name)
	assert.Equal(t, 80.0, *got.OriginalPrice)
	assert.True(t, got.OnSale())

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestProductJSONCarriesOnSale(t *testing.T) {
	original := 80.0
	for _, tc := range []struct {
		name    string
		product Product
		want    bool
	}{
		{name: "discounted", product: Product{ID: "1", Price: 60, OriginalPrice: &original}, want: true},
		{name: "full price", product: Product{ID: "2", Price: 60}, want: false},
		{name: "original not higher", product: Product{ID: "3", Price: 90, OriginalPrice: &original}, want: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.product)
			require.NoError(t, err)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.Equal(t, tc.want, decoded["on_sale"])
			assert.Equal(t, tc.product.ID, decoded["id"])
			assert.Equal(t, tc.product.Price, decoded["price"])
		})
	}
}

func TestNilCatalogIsEmpty(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.All())
	_, ok := c.Get("1")
	assert.False(t, ok)
}

func TestLoadSeed(t *testing.T) {
	c, err := LoadSeed()
	require.NoError(t, err)
	require.Greater(t, c.Len(), 0)

	seen := map[enums.ProductCategory]bool{}
	for _, p := range c.All() {
		seen[p.Category] = true
	}
	for _, category := range enums.ProductCategories() {
		assert.True(t, seen[category], "seed has no %s products", category)
	}
}

func TestLoadFileAndDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"x","name":"Dates","category":"Fruits","price":300,"rating":4,"review_count":1,"in_stock":true,"unit":"per kg"}]`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader(`[{"id":"x","colour":"red"}]`))
	assert.Error(t, err, "unknown fields must be rejected")
}
