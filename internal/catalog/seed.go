package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

//go:embed seed/products.json
var seedProducts []byte

// LoadSeed builds the catalog bundled with the binary.
func LoadSeed() (*Catalog, error) {
	return Decode(bytes.NewReader(seedProducts))
}

// LoadFile builds a catalog from a JSON product list on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Load picks the override file when one is configured and the embedded seed otherwise.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return LoadSeed()
	}
	return LoadFile(path)
}

// Decode reads a JSON array of products and validates it into a Catalog.
func Decode(r io.Reader) (*Catalog, error) {
	var products []Product
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(products)
}
