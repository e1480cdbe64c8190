//go:generate mockgen -source catalog.go -destination catalog_mock.go -package service Catalog

package service

import (
	"context"
	"io"
	"pharmacy/pkg/config"
	"pharmacy/pkg/errors"
	"pharmacy/pkg/models"
	"pharmacy/pkg/pricelist"
	"pharmacy/pkg/pricing"
	"pharmacy/pkg/repository"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type (
	Catalog interface {
		List(ctx context.Context, query string, margin decimal.Decimal) ([]*models.PricedProduct, error)
		Get(ctx context.Context, code string, margin decimal.Decimal) (*models.PricedProduct, error)
		// Import reads a full price list, it replaces the whole catalog.
		Import(ctx context.Context, src io.Reader, fileName string) (*models.ImportResult, error)
		// ImportProducts replaces the whole catalog with products.
		ImportProducts(ctx context.Context, products []*models.Product) error
		Stats(ctx context.Context) (*models.Stats, error)
	}

	catalog struct {
		logger   *zap.Logger
		products repository.Products
		orders   repository.Orders
		reader   *pricelist.Reader
		config   config.Pricing
		now      func() time.Time
	}
)

func NewCatalog(
	logger *zap.Logger,
	products repository.Products,
	orders repository.Orders,
	reader *pricelist.Reader,
	config config.Pricing,
) Catalog {
	log := logger.Named("CatalogService")
	c := &catalog{
		logger:   log,
		products: products,
		orders:   orders,
		reader:   reader,
		config:   config,
		now:      time.Now,
	}
	return c
}

func (c *catalog) List(ctx context.Context, query string, margin decimal.Decimal) ([]*models.PricedProduct, error) {
	products, err := c.products.List(ctx, models.ProductFilter{Query: query})
	if err != nil {
		c.logger.Sugar().Errorf("can't list products, query=%s: (%s)", query, err.Error())
		return nil, errors.ErrInternal
	}

	priced := make([]*models.PricedProduct, 0, len(products))
	for _, p := range products {
		pp, err := price(p, margin)
		if err != nil {
			return nil, err
		}
		priced = append(priced, pp)
	}
	return priced, nil
}

func (c *catalog) Get(ctx context.Context, code string, margin decimal.Decimal) (*models.PricedProduct, error) {
	product, err := c.products.Get(ctx, code)
	if err != nil {
		if !errors.ErrorIs(err, errors.ErrProductNotFound) {
			c.logger.Sugar().Errorf("can't get product, code=%s: (%s)", code, err.Error())
			return nil, errors.ErrInternal
		}
		return nil, err
	}
	return price(product, margin)
}

func (c *catalog) Import(ctx context.Context, src io.Reader, fileName string) (*models.ImportResult, error) {
	res, err := c.reader.Read(src, fileName)
	if err != nil {
		c.logger.Sugar().Infof("can't read price list file=%s: (%s)", fileName, err.Error())
		return nil, err
	}

	err = c.ImportProducts(ctx, res.Products)
	if err != nil {
		return nil, err
	}

	c.logger.Sugar().Infof("imported price list file=%s, imported=%d skipped=%d", fileName, len(res.Products), res.Skipped)
	return &models.ImportResult{
		Imported: len(res.Products),
		Skipped:  res.Skipped,
	}, nil
}

func (c *catalog) ImportProducts(ctx context.Context, products []*models.Product) error {
	err := c.products.Replace(ctx, products)
	if err != nil {
		c.logger.Sugar().Errorf("can't replace catalog with %d products: (%s)", len(products), err.Error())
		return errors.ErrInternal
	}
	return nil
}

func (c *catalog) Stats(ctx context.Context) (*models.Stats, error) {
	products, err := c.products.Count(ctx)
	if err != nil {
		c.logger.Sugar().Errorf("can't count products: (%s)", err.Error())
		return nil, errors.ErrInternal
	}

	orders, err := c.orders.List(ctx)
	if err != nil {
		c.logger.Sugar().Errorf("can't list orders: (%s)", err.Error())
		return nil, errors.ErrInternal
	}

	year, month, day := c.now().Date()
	clients := make(map[string]struct{})
	salesToday := 0
	for _, o := range orders {
		clients[o.ClientName] = struct{}{}
		y, m, d := o.CreatedAt.In(time.Local).Date()
		if y == year && m == month && d == day {
			salesToday++
		}
	}

	return &models.Stats{
		Products:      products,
		Orders:        len(orders),
		Clients:       len(clients),
		SalesToday:    salesToday,
		DefaultMargin: decimal.NewFromFloat(c.config.DefaultMargin),
	}, nil
}

func price(p *models.Product, margin decimal.Decimal) (*models.PricedProduct, error) {
	finalPrice, err := pricing.FinalPrice(p.Cost, margin)
	if err != nil {
		return nil, err
	}
	return &models.PricedProduct{
		Product:    *p,
		Margin:     margin,
		FinalPrice: finalPrice,
	}, nil
}
