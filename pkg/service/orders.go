//go:generate mockgen -source orders.go -destination orders_mock.go -package service Orders

package service

import (
	"context"
	"os"
	"path/filepath"
	"pharmacy/pkg/config"
	"pharmacy/pkg/errors"
	"pharmacy/pkg/models"
	"pharmacy/pkg/pricing"
	"pharmacy/pkg/remito"
	"pharmacy/pkg/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultClientName = "Cliente"
	orderIDLayout     = "20060102-150405"
)

type (
	Orders interface {
		// Checkout takes the cart, turns it into an order and renders its remito.
		// On failure the cart items are put back.
		Checkout(ctx context.Context, cartID string, clientName string, clientEmail string) (*models.Order, error)
		Get(ctx context.Context, id string) (*models.Order, error)
		List(ctx context.Context) ([]*models.OrderSummary, error)
		// RemitoPath returns the path of an existing remito file.
		RemitoPath(name string) (string, error)
	}

	orders struct {
		logger    *zap.Logger
		repo      repository.Orders
		carts     Carts
		config    config.Remitos
		formatter *pricing.Formatter
		now       func() time.Time
		suffix    func() string
	}
)

func NewOrders(
	logger *zap.Logger,
	repo repository.Orders,
	carts Carts,
	config config.Remitos,
	formatter *pricing.Formatter,
) Orders {
	log := logger.Named("OrdersService")
	o := &orders{
		logger:    log,
		repo:      repo,
		carts:     carts,
		config:    config,
		formatter: formatter,
		now:       time.Now,
		suffix:    randomSuffix,
	}
	return o
}

func (o *orders) Checkout(ctx context.Context, cartID string, clientName string, clientEmail string) (*models.Order, error) {
	cart, err := o.carts.Take(ctx, cartID)
	if err != nil {
		o.logger.Sugar().Errorf("can't take cart, id=%s: (%s)", cartID, err.Error())
		return nil, errors.ErrInternal
	}
	if cart.Empty() {
		return nil, errors.ErrEmptyCart
	}

	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		clientName = DefaultClientName
	}

	now := o.now()
	order := &models.Order{
		ID:          now.Format(orderIDLayout) + "-" + o.suffix(),
		ClientName:  clientName,
		ClientEmail: strings.TrimSpace(clientEmail),
		CreatedAt:   now,
		Items:       cart.Items,
		Total:       cart.Total(),
	}

	if err = o.writeRemito(order); err != nil {
		o.logger.Sugar().Errorf("can't write remito for order=%s: (%s)", order.ID, err.Error())
		o.restore(ctx, cart)
		return nil, errors.ErrInternal
	}

	if err = o.repo.Create(ctx, order); err != nil {
		o.logger.Sugar().Errorf("can't create order=%s: (%s)", order.ID, err.Error())
		o.removeRemito(order.ID)
		o.restore(ctx, cart)
		return nil, errors.ErrInternal
	}

	o.logger.Sugar().Infof("created order=%s, client=%s total=%s", order.ID, order.ClientName, order.Total)
	return order, nil
}

func (o *orders) restore(ctx context.Context, cart *models.Cart) {
	if err := o.carts.Restore(ctx, cart); err != nil {
		o.logger.Sugar().Errorf("can't restore cart, id=%s: (%s)", cart.ID, err.Error())
	}
}

func (o *orders) removeRemito(orderID string) {
	err := os.Remove(filepath.Join(o.config.Directory, remito.FileName(orderID)))
	if err != nil && !os.IsNotExist(err) {
		o.logger.Sugar().Errorf("can't remove remito for order=%s: (%s)", orderID, err.Error())
	}
}

func (o *orders) writeRemito(order *models.Order) error {
	doc, err := remito.Generate(order, remito.Options{
		CompanyName: o.config.CompanyName,
		Formatter:   o.formatter,
	})
	if err != nil {
		return err
	}
	if err = os.MkdirAll(o.config.Directory, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(o.config.Directory, remito.FileName(order.ID)), doc, 0o644)
}

func (o *orders) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := o.repo.Get(ctx, id)
	if err != nil {
		if !errors.ErrorIs(err, errors.ErrOrderNotFound) {
			o.logger.Sugar().Errorf("can't get order, id=%s: (%s)", id, err.Error())
			return nil, errors.ErrInternal
		}
		return nil, err
	}
	return order, nil
}

// List returns order summaries newest first, Remito is set only for remitos present on disk.
func (o *orders) List(ctx context.Context) ([]*models.OrderSummary, error) {
	list, err := o.repo.List(ctx)
	if err != nil {
		o.logger.Sugar().Errorf("can't list orders: (%s)", err.Error())
		return nil, errors.ErrInternal
	}
	for _, summary := range list {
		name := remito.FileName(summary.ID)
		if _, err := o.RemitoPath(name); err == nil {
			summary.Remito = name
		}
	}
	return list, nil
}

func (o *orders) RemitoPath(name string) (string, error) {
	if name != filepath.Base(name) || !strings.HasPrefix(name, "remito-") || !strings.HasSuffix(name, ".pdf") {
		return "", errors.ErrRemitoNotFound
	}
	path := filepath.Join(o.config.Directory, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", errors.ErrRemitoNotFound
	}
	return path, nil
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
}
