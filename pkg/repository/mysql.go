package repository

import (
	"context"
	"database/sql"
	"fmt"
	"pharmacy/pkg/config"
	"pharmacy/pkg/errors"
	"pharmacy/pkg/models"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // DB driver
	"github.com/nullism/bqb"
)

// insertBatchSize - rows per INSERT, keeps a statement below the 65535 placeholders limit.
const insertBatchSize = 1000

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type (
	MySQLProducts struct {
		db     *sql.DB
		config config.Storage
	}

	MySQLOrders struct {
		db     *sql.DB
		config config.Storage
	}
)

func openMySQL(config config.Storage) (*sql.DB, error) {
	db, err := sql.Open(config.Type, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("can't establish connection to the data storage: %w", err)
	}
	db.SetMaxOpenConns(config.MaxConnections)
	db.SetMaxIdleConns(config.MaxConnections)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't ping data storage: %w", err)
	}
	return db, nil
}

func NewMySQLProducts(config config.Storage) (*MySQLProducts, error) {
	db, err := openMySQL(config)
	if err != nil {
		return nil, err
	}
	return &MySQLProducts{
		db:     db,
		config: config,
	}, nil
}

func (r *MySQLProducts) CreateMany(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return insertProducts(ctx, tx, products)
	})
}

// Replace deletes the whole catalog and stores products in one transaction.
func (r *MySQLProducts) Replace(ctx context.Context, products []*models.Product) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
			return fmt.Errorf("can't execute delete products query: %w", err)
		}
		return insertProducts(ctx, tx, products)
	})
}

func (r *MySQLProducts) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin products transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit products transaction: %w", err)
	}
	return nil
}

// insertProducts upserts products in chunks of insertBatchSize rows.
func insertProducts(ctx context.Context, tx *sql.Tx, products []*models.Product) error {
	for _, chunk := range chunks(products, insertBatchSize) {
		values := bqb.Q()
		for _, p := range chunk {
			values.Comma("(?,?,?,?,?)", p.Code, p.Name, p.Description, p.Cost, p.Expiration)
		}
		query, args, err := bqb.New(
			`
			INSERT INTO products (code, name, description, cost, expiration) VALUES
			?
			ON DUPLICATE KEY UPDATE
				name = VALUES(name),
				description = VALUES(description),
				cost = VALUES(cost),
				expiration = VALUES(expiration)
		`,
			values,
		).ToMysql()
		if err != nil {
			return fmt.Errorf("can't build create products query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("can't execute create products query: %w", err)
		}
	}
	return nil
}

// chunks splits items in slices of at most size elements.
func chunks[T any](items []T, size int) [][]T {
	var res [][]T
	for len(items) > size {
		res = append(res, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		res = append(res, items)
	}
	return res
}

func (r *MySQLProducts) Get(ctx context.Context, code string) (*models.Product, error) {
	q := bqb.New(
		`
			SELECT code, name, description, cost, expiration FROM products
			WHERE code = ?
		`,
		code,
	)
	query, args, err := q.ToMysql()
	if err != nil {
		return nil, fmt.Errorf("can't build get product query: %w", err)
	}

	var product models.Product

	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&product.Code, &product.Name, &product.Description, &product.Cost, &product.Expiration)
	if err != nil {
		if errors.ErrorIs(err, sql.ErrNoRows) {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("can't execute get product query: %w", err)
	}

	return &product, nil
}

func (r *MySQLProducts) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	where := bqb.Optional("WHERE")
	if filter.Query != "" {
		where.And("LOWER(name) LIKE ?", "%"+likeEscaper.Replace(strings.ToLower(filter.Query))+"%")
	}
	q := bqb.New(
		`
			SELECT code, name, description, cost, expiration FROM products
			?
			ORDER BY name, code
		`,
		where,
	)
	query, args, err := q.ToMysql()
	if err != nil {
		return nil, fmt.Errorf("can't build list products query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't execute list products query: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var product models.Product
		err = rows.Scan(&product.Code, &product.Name, &product.Description, &product.Cost, &product.Expiration)
		if err != nil {
			return nil, fmt.Errorf("can't scan product row: %w", err)
		}
		products = append(products, &product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLProducts) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "products")
}

func NewMySQLOrders(config config.Storage) (*MySQLOrders, error) {
	db, err := openMySQL(config)
	if err != nil {
		return nil, err
	}
	return &MySQLOrders{
		db:     db,
		config: config,
	}, nil
}

// Create stores the order and its items in one transaction.
func (r *MySQLOrders) Create(ctx context.Context, order *models.Order) error {
	orderQuery, orderArgs, err := bqb.New(
		`
			INSERT INTO orders (id, client_name, client_email, created_at, total) VALUES
			(?,?,?,?,?)
		`,
		order.ID, order.ClientName, order.ClientEmail, order.CreatedAt, order.Total,
	).ToMysql()
	if err != nil {
		return fmt.Errorf("can't build create order query: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin create order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, orderQuery, orderArgs...); err != nil {
		return fmt.Errorf("can't execute create order query, id=%s: %w", order.ID, err)
	}

	position := 0
	for _, chunk := range chunks(order.Items, insertBatchSize) {
		values := bqb.Q()
		for _, item := range chunk {
			values.Comma(
				"(?,?,?,?,?,?,?,?,?)",
				order.ID, position, item.Code, item.Name, item.Expiration, item.Cost, item.Margin, item.FinalPrice, item.Qty,
			)
			position++
		}
		itemsQuery, itemsArgs, err := bqb.New(
			`
			INSERT INTO order_items (order_id, position, code, name, expiration, cost, margin, final_price, qty) VALUES
			?
		`,
			values,
		).ToMysql()
		if err != nil {
			return fmt.Errorf("can't build create order items query: %w", err)
		}
		if _, err = tx.ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
			return fmt.Errorf("can't execute create order items query, id=%s: %w", order.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit create order transaction, id=%s: %w", order.ID, err)
	}
	return nil
}

func (r *MySQLOrders) Get(ctx context.Context, id string) (*models.Order, error) {
	query, args, err := bqb.New(
		`
			SELECT id, client_name, client_email, created_at, total FROM orders
			WHERE id = ?
		`,
		id,
	).ToMysql()
	if err != nil {
		return nil, fmt.Errorf("can't build get order query: %w", err)
	}

	var order models.Order

	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&order.ID, &order.ClientName, &order.ClientEmail, &order.CreatedAt, &order.Total)
	if err != nil {
		if errors.ErrorIs(err, sql.ErrNoRows) {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("can't execute get order query: %w", err)
	}

	order.Items, err = r.items(ctx, id)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *MySQLOrders) items(ctx context.Context, orderID string) ([]*models.LineItem, error) {
	query, args, err := bqb.New(
		`
			SELECT code, name, expiration, cost, margin, final_price, qty FROM order_items
			WHERE order_id = ?
			ORDER BY position
		`,
		orderID,
	).ToMysql()
	if err != nil {
		return nil, fmt.Errorf("can't build get order items query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't execute get order items query: %w", err)
	}
	defer rows.Close()

	var items []*models.LineItem
	for rows.Next() {
		var item models.LineItem
		err = rows.Scan(&item.Code, &item.Name, &item.Expiration, &item.Cost, &item.Margin, &item.FinalPrice, &item.Qty)
		if err != nil {
			return nil, fmt.Errorf("can't scan order item row: %w", err)
		}
		items = append(items, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read order item rows: %w", err)
	}

	return items, nil
}

func (r *MySQLOrders) List(ctx context.Context) ([]*models.OrderSummary, error) {
	query, args, err := bqb.New(
		`
			SELECT id, client_name, created_at, total FROM orders
			ORDER BY created_at DESC, id DESC
		`,
	).ToMysql()
	if err != nil {
		return nil, fmt.Errorf("can't build list orders query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't execute list orders query: %w", err)
	}
	defer rows.Close()

	var orders []*models.OrderSummary
	for rows.Next() {
		var order models.OrderSummary
		err = rows.Scan(&order.ID, &order.ClientName, &order.CreatedAt, &order.Total)
		if err != nil {
			return nil, fmt.Errorf("can't scan order row: %w", err)
		}
		orders = append(orders, &order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrders) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "orders")
}

func count(ctx context.Context, db *sql.DB, table string) (int, error) {
	query, args, err := bqb.New(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).ToMysql()
	if err != nil {
		return 0, fmt.Errorf("can't build count %s query: %w", table, err)
	}

	var n int
	err = db.QueryRowContext(ctx, query, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("can't execute count %s query: %w", table, err)
	}
	return n, nil
}
