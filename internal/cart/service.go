package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/freshcart/internal/catalog"
	pkgerrors "github.com/angelmondragon/freshcart/pkg/errors"
)

const (
	OpAdd         = "add"
	OpSetQuantity = "set_quantity"
	OpRemove      = "remove"
	OpClear       = "clear"

	// DefaultMaxQuantity caps a single request's quantity when none is configured.
	DefaultMaxQuantity = 999
)

// Service exposes session cart operations to the HTTP layer.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Summary, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (*Summary, error)
	SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (*Summary, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*Summary, error)
	Clear(ctx context.Context, sessionID string) (*Summary, error)
}

// LedgerStore hands out the ledger owned by a session and serialises access to it.
type LedgerStore interface {
	Do(ctx context.Context, sessionID string, fn func(*Ledger)) error
}

type productLoader interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

type mutationRecorder interface {
	IncCartMutation(op string)
}

// ServiceParams bundles the dependencies required to build a cart service.
type ServiceParams struct {
	Store    LedgerStore
	Products productLoader
	Delivery DeliveryPolicy
	// MaxQuantity caps a single request's quantity; zero uses DefaultMaxQuantity.
	MaxQuantity int
	Metrics     mutationRecorder
}

type service struct {
	store       LedgerStore
	products    productLoader
	delivery    DeliveryPolicy
	maxQuantity int
	metrics     mutationRecorder
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("ledger store required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if params.MaxQuantity < 0 {
		return nil, fmt.Errorf("max quantity must be non-negative")
	}
	maxQuantity := params.MaxQuantity
	if maxQuantity == 0 {
		maxQuantity = DefaultMaxQuantity
	}
	return &service{
		store:       params.Store,
		products:    params.Products,
		delivery:    params.Delivery,
		maxQuantity: maxQuantity,
		metrics:     params.Metrics,
	}, nil
}

// Get returns the current summary of the session's cart.
func (s *service) Get(ctx context.Context, sessionID string) (*Summary, error) {
	return s.run(ctx, sessionID, "", func(*Ledger) {})
}

// AddItem resolves the product and adds it quantity times, matching the
// product page's quantity picker. Out-of-stock products are refused here
// because this is the layer shoppers reach the ledger through.
func (s *service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*Summary, error) {
	if quantity < 1 {
		return nil, pkgerrors.Invalid("quantity", "quantity must be at least 1")
	}
	if err := s.checkCap(quantity); err != nil {
		return nil, err
	}

	product, err := s.products.Get(ctx, strings.TrimSpace(productID))
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) || pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve product")
	}
	if !product.InStock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock").
			WithDetails(map[string]any{"product_id": product.ID})
	}

	return s.run(ctx, sessionID, OpAdd, func(l *Ledger) {
		l.AddItem(*product)
		if quantity > 1 {
			line, _ := l.Line(product.ID)
			l.SetQuantity(product.ID, line.Quantity+quantity-1)
		}
	})
}

// SetQuantity follows ledger semantics: <= 0 removes, unknown ids are ignored.
func (s *service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (*Summary, error) {
	if err := s.checkCap(quantity); err != nil {
		return nil, err
	}
	productID = strings.TrimSpace(productID)
	return s.run(ctx, sessionID, OpSetQuantity, func(l *Ledger) {
		l.SetQuantity(productID, quantity)
	})
}

// RemoveItem drops a line; removing an absent product is not an error.
func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (*Summary, error) {
	productID = strings.TrimSpace(productID)
	return s.run(ctx, sessionID, OpRemove, func(l *Ledger) {
		l.RemoveItem(productID)
	})
}

// Clear empties the session's cart.
func (s *service) Clear(ctx context.Context, sessionID string) (*Summary, error) {
	return s.run(ctx, sessionID, OpClear, func(l *Ledger) {
		l.Clear()
	})
}

func (s *service) run(ctx context.Context, sessionID, op string, fn func(*Ledger)) (*Summary, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}

	var summary Summary
	if err := s.store.Do(ctx, sessionID, func(l *Ledger) {
		fn(l)
		summary = Summarize(l, s.delivery)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "access cart session")
	}

	if op != "" && s.metrics != nil {
		s.metrics.IncCartMutation(op)
	}
	return &summary, nil
}

func (s *service) checkCap(quantity int) error {
	if quantity > s.maxQuantity {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity exceeds limit").
			WithDetails(map[string]any{"max": s.maxQuantity})
	}
	return nil
}
