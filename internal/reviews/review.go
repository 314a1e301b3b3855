package reviews

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
)

// DateLayout is the calendar-day format reviews are stamped with.
const DateLayout = "2006-01-02"

// Review is a shopper's rating and comment on a product.
type Review struct {
	ID        string `json:"id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	UserID    string `json:"user_id" validate:"required"`
	UserName  string `json:"user_name" validate:"required"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Comment   string `json:"comment" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

// SubmitInput is what a signed-in shopper posts for a product.
type SubmitInput struct {
	ProductID string `json:"-"`
	UserID    string `json:"-"`
	UserName  string `json:"-"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Comment   string `json:"comment" validate:"required,max=2000"`
}

//go:embed seed/reviews.json
var seedReviews []byte

// DecodeSeed reads the bundled reviews.
func DecodeSeed() ([]Review, error) {
	return Decode(bytes.NewReader(seedReviews))
}

// Decode reads a JSON array of reviews and validates every entry.
func Decode(r io.Reader) ([]Review, error) {
	var out []Review
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	for i := range out {
		if err := reviewValidator.Struct(out[i]); err != nil {
			return nil, fmt.Errorf("review %d: %w", i, err)
		}
	}
	return out, nil
}
