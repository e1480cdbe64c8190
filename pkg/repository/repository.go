//go:generate mockgen -source repository.go -destination repository_mock.go -package repository Products,Orders

package repository

import (
	"context"
	"fmt"
	"pharmacy/pkg/config"
	"pharmacy/pkg/models"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type (
	Products interface {
		// CreateMany inserts products, existing codes are overwritten.
		CreateMany(ctx context.Context, products []*models.Product) error
		// Replace drops every stored product and stores products instead.
		Replace(ctx context.Context, products []*models.Product) error
		Get(ctx context.Context, code string) (*models.Product, error)
		List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
		Count(ctx context.Context) (int, error)
	}

	Orders interface {
		Create(ctx context.Context, order *models.Order) error
		Get(ctx context.Context, id string) (*models.Order, error)
		// List returns summaries, newest first.
		List(ctx context.Context) ([]*models.OrderSummary, error)
		Count(ctx context.Context) (int, error)
	}
)

func NewProducts(config config.Storage) (Products, error) {
	switch config.Type {
	case StorageMySQL:
		return NewMySQLProducts(config)
	case StorageMemory:
		return NewMemoryProducts(), nil
	default:
		return nil, fmt.Errorf("can't create storage, unknown type=%s", config.Type)
	}
}

func NewOrders(config config.Storage) (Orders, error) {
	switch config.Type {
	case StorageMySQL:
		return NewMySQLOrders(config)
	case StorageMemory:
		return NewMemoryOrders(), nil
	default:
		return nil, fmt.Errorf("can't create storage, unknown type=%s", config.Type)
	}
}
