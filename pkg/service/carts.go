//go:generate mockgen -source carts.go -destination carts_mock.go -package service Carts

package service

import (
	"context"
	"fmt"
	"pharmacy/pkg/errors"
	"pharmacy/pkg/models"
	"pharmacy/pkg/pricing"
	"pharmacy/pkg/repository"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxQty - max qty of a single cart line.
const MaxQty = 10000

type (
	Carts interface {
		// Get returns the cart with id, an unknown id is an empty cart.
		Get(ctx context.Context, id string) (*models.Cart, error)
		Add(ctx context.Context, id string, code string, qty int, margin decimal.Decimal) (*models.Cart, error)
		Clear(ctx context.Context, id string) error
		// Take detaches the cart with id and returns it, the stored cart is left empty.
		Take(ctx context.Context, id string) (*models.Cart, error)
		// Restore puts the items of a taken cart back, merging them with lines added since.
		Restore(ctx context.Context, cart *models.Cart) error
	}

	// carts - in memory carts, one per client session.
	carts struct {
		logger   *zap.Logger
		products repository.Products

		mu sync.Mutex
		// id -> Cart
		data map[string]*models.Cart
	}
)

func NewCarts(logger *zap.Logger, products repository.Products) Carts {
	log := logger.Named("CartsService")
	c := &carts{
		logger:   log,
		products: products,
		data:     make(map[string]*models.Cart),
	}
	return c
}

func (c *carts) Get(_ context.Context, id string) (*models.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copy(id), nil
}

// Add prices the product with margin and puts qty of it into the cart.
// A line with the same product and margin is merged, qty below 1 counts as 1.
func (c *carts) Add(ctx context.Context, id string, code string, qty int, margin decimal.Decimal) (*models.Cart, error) {
	product, err := c.products.Get(ctx, code)
	if err != nil {
		if !errors.ErrorIs(err, errors.ErrProductNotFound) {
			c.logger.Sugar().Errorf("can't get product, code=%s: (%s)", code, err.Error())
			return nil, errors.ErrInternal
		}
		return nil, err
	}

	finalPrice, err := pricing.FinalPrice(product.Cost, margin)
	if err != nil {
		return nil, err
	}
	if margin.Abs().GreaterThan(models.MaxAmount) || finalPrice.GreaterThan(models.MaxAmount) {
		return nil, fmt.Errorf("%w: margin=%s is too large for product code=%s", errors.ErrInvalidInput, margin, code)
	}

	if qty < 1 {
		qty = 1
	}
	if qty > MaxQty {
		return nil, errors.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cart, ok := c.data[id]
	if !ok {
		cart = &models.Cart{ID: id}
		c.data[id] = cart
	}

	for _, item := range cart.Items {
		if item.Code == product.Code && item.Margin.Equal(margin) {
			if item.Qty+qty > MaxQty {
				return nil, errors.ErrInvalidInput
			}
			item.Qty += qty
			return c.copy(id), nil
		}
	}

	cart.Items = append(cart.Items, &models.LineItem{
		Code:       product.Code,
		Name:       product.Name,
		Expiration: product.Expiration,
		Cost:       product.Cost,
		Margin:     margin,
		FinalPrice: finalPrice,
		Qty:        qty,
	})
	return c.copy(id), nil
}

func (c *carts) Clear(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, id)
	return nil
}

func (c *carts) Take(_ context.Context, id string) (*models.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := c.copy(id)
	delete(c.data, id)
	return res, nil
}

func (c *carts) Restore(_ context.Context, taken *models.Cart) error {
	if taken == nil || taken.Empty() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cart, ok := c.data[taken.ID]
	if !ok {
		cart = &models.Cart{ID: taken.ID}
		c.data[taken.ID] = cart
	}

	items := make([]*models.LineItem, 0, len(taken.Items)+len(cart.Items))
	for _, item := range taken.Items {
		i := *item
		items = append(items, &i)
	}
	for _, added := range cart.Items {
		merged := false
		for _, item := range items {
			if item.Code == added.Code && item.Margin.Equal(added.Margin) {
				item.Qty += added.Qty
				merged = true
				break
			}
		}
		if !merged {
			items = append(items, added)
		}
	}
	cart.Items = items
	return nil
}

// copy must be called with mu held.
func (c *carts) copy(id string) *models.Cart {
	res := &models.Cart{ID: id}
	cart, ok := c.data[id]
	if !ok {
		return res
	}
	for _, item := range cart.Items {
		i := *item
		res.Items = append(res.Items, &i)
	}
	return res
}
