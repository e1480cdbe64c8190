package repository

import (
	"context"
	"pharmacy/pkg/errors"
	"pharmacy/pkg/models"
	"sort"
	"strings"
	"sync"
)

type (
	// MemoryProducts - in memory implementation of Products, ordered like MySQLProducts.
	// Safe for concurrent usage.
	MemoryProducts struct {
		mu sync.RWMutex
		// code -> Product
		data map[string]models.Product
	}

	// MemoryOrders - in memory implementation of Orders.
	// Safe for concurrent usage.
	MemoryOrders struct {
		mu   sync.RWMutex
		data map[string]*models.Order
	}
)

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{
		data: make(map[string]models.Product),
	}
}

func (r *MemoryProducts) CreateMany(_ context.Context, products []*models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		r.data[p.Code] = *p
	}
	return nil
}

func (r *MemoryProducts) Replace(_ context.Context, products []*models.Product) error {
	data := make(map[string]models.Product, len(products))
	for _, p := range products {
		data[p.Code] = *p
	}
	r.mu.Lock()
	r.data = data
	r.mu.Unlock()
	return nil
}

func (r *MemoryProducts) Get(_ context.Context, code string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[code]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryProducts) List(_ context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	query := strings.ToLower(filter.Query)

	r.mu.RLock()
	var products []*models.Product
	for _, p := range r.data {
		if strings.Contains(strings.ToLower(p.Name), query) {
			product := p
			products = append(products, &product)
		}
	}
	r.mu.RUnlock()

	sort.Slice(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].Code < products[j].Code
	})
	return products, nil
}

func (r *MemoryProducts) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data), nil
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{
		data: make(map[string]*models.Order),
	}
}

func (r *MemoryOrders) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[order.ID] = copyOrder(order)
	return nil
}

func (r *MemoryOrders) Get(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.data[id]
	if !ok {
		return nil, errors.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (r *MemoryOrders) List(_ context.Context) ([]*models.OrderSummary, error) {
	r.mu.RLock()
	orders := make([]*models.OrderSummary, 0, len(r.data))
	for _, o := range r.data {
		orders = append(orders, &models.OrderSummary{
			ID:         o.ID,
			ClientName: o.ClientName,
			CreatedAt:  o.CreatedAt,
			Total:      o.Total,
		})
	}
	r.mu.RUnlock()

	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}

func (r *MemoryOrders) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data), nil
}

func copyOrder(order *models.Order) *models.Order {
	o := *order
	o.Items = make([]*models.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		i := *item
		o.Items = append(o.Items, &i)
	}
	return &o
}
