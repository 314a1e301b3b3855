package reviews

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/angelmondragon/freshcart/internal/catalog"
	pkgerrors "github.com/angelmondragon/freshcart/pkg/errors"
)

var reviewValidator = newReviewValidator()

func newReviewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Service manages product reviews.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
}

type productLoader interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

// ServiceParams bundles the review service dependencies.
type ServiceParams struct {
	Products productLoader
	Seed     []Review
	// Now overrides the clock used to date new reviews.
	Now func() time.Time
}

type service struct {
	products productLoader
	now      func() time.Time

	mu        sync.RWMutex
	byProduct map[string][]Review
}

// NewService builds a review service holding the seed reviews, newest first per product.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}

	byProduct := make(map[string][]Review)
	for _, r := range params.Seed {
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r)
	}
	for id := range byProduct {
		list := byProduct[id]
		// YYYY-MM-DD sorts chronologically as text.
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date > list[j].Date })
	}

	return &service{
		products:  params.Products,
		now:       now,
		byProduct: byProduct,
	}, nil
}

// Submit records a review for an existing product and returns it.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*Review, error) {
	input.ProductID = strings.TrimSpace(input.ProductID)
	input.Comment = strings.TrimSpace(input.Comment)

	if strings.TrimSpace(input.UserID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to write a review")
	}
	if err := reviewValidator.Struct(input); err != nil {
		return nil, validationError(err)
	}
	if _, err := s.products.Get(ctx, input.ProductID); err != nil {
		return nil, err
	}

	review := Review{
		ID:        uuid.NewString(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		UserName:  input.UserName,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Date:      s.now().UTC().Format(DateLayout),
	}

	s.mu.Lock()
	existing := s.byProduct[review.ProductID]
	list := make([]Review, 0, len(existing)+1)
	list = append(list, review)
	list = append(list, existing...)
	s.byProduct[review.ProductID] = list
	s.mu.Unlock()

	return &review, nil
}

// ListByProduct returns a product's reviews, newest first.
func (s *service) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	productID = strings.TrimSpace(productID)
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.byProduct[productID]
	out := make([]Review, len(list))
	copy(out, list)
	return out, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid review")
	}
	fields := pkgerrors.FieldErrors{}
	for _, fe := range verrs {
		switch {
		case fe.Field() == "rating":
			fields.Add("rating", "rating must be between 1 and 5")
		case fe.Field() == "comment" && fe.Tag() == "required":
			fields.Add("comment", "comment is required")
		case fe.Field() == "comment":
			fields.Add("comment", "comment is too long")
		default:
			fields.Add(fe.Field(), fe.Tag())
		}
	}
	return fields.Err("invalid review")
}
