package catalog

import (
	"encoding/json"

	"github.com/angelmondragon/freshcart/pkg/enums"
)

// Product is an immutable catalog entry. Values are copied out of the
// catalog, so callers can never alter what other readers see.
type Product struct {
	ID            string                `json:"id" validate:"required"`
	Name          string                `json:"name" validate:"required"`
	Description   string                `json:"description"`
	Category      enums.ProductCategory `json:"category" validate:"required,category"`
	Price         float64               `json:"price" validate:"gte=0"`
	OriginalPrice *float64              `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	Discount      *int                  `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Rating        float64               `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int                   `json:"review_count" validate:"gte=0"`
	InStock       bool                  `json:"in_stock"`
	Unit          string                `json:"unit"`
	Image         string                `json:"image,omitempty"`
}

// OnSale reports whether the product carries a struck-through original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

type productFields Product

// MarshalJSON adds the derived on_sale flag so clients can badge discounted
// items without comparing prices themselves.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		productFields
		OnSale bool `json:"on_sale"`
	}{productFields(p), p.OnSale()})
}
