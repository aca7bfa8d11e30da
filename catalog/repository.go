// Package catalog looks up product display data for the cart. The aggregator
// treats the returned snapshot as opaque.
package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"goflare.io/cart/driver"
	"goflare.io/cart/models"
)

var ErrProductNotFound = errors.New("catalog: product not found")

var _ Repository = (*repository)(nil)

type Repository interface {
	GetProduct(ctx context.Context, tx pgx.Tx, productID string) (*models.Product, error)
	StockAvailable(ctx context.Context, tx pgx.Tx, productID string) (bool, error)
}

type repository struct {
	conn   driver.PostgresPool
	logger *zap.Logger
}

func NewRepository(conn driver.PostgresPool, logger *zap.Logger) Repository {
	return &repository{
		conn:   conn,
		logger: logger,
	}
}

const getProductSQL = `
SELECT id, name, images, price, currency
FROM products
WHERE id = $1`

const stockAvailableSQL = `
SELECT quantity - reserved_quantity > 0
FROM stocks
WHERE product_id = $1`

func (r *repository) GetProduct(ctx context.Context, tx pgx.Tx, productID string) (*models.Product, error) {
	row := r.queryRow(ctx, tx, getProductSQL, productID)

	var p models.Product
	var currency string
	if err := row.Scan(&p.ID, &p.Name, &p.Images, &p.CatalogPrice, &currency); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		r.logger.Error("Failed to get product", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}
	p.Currency = stripe.Currency(currency)

	return &p, nil
}

func (r *repository) StockAvailable(ctx context.Context, tx pgx.Tx, productID string) (bool, error) {
	row := r.queryRow(ctx, tx, stockAvailableSQL, productID)

	var available bool
	if err := row.Scan(&available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No stock row means the product is not stocked.
			return false, nil
		}
		r.logger.Error("Failed to check stock", zap.String("product_id", productID), zap.Error(err))
		return false, err
	}

	return available, nil
}

func (r *repository) queryRow(ctx context.Context, tx pgx.Tx, sql string, args ...any) pgx.Row {
	if tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.conn.QueryRow(ctx, sql, args...)
}
