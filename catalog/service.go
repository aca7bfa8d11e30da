package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"goflare.io/cart/driver"
	"goflare.io/cart/models"
)

type Service interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

type service struct {
	repo   Repository
	cache  Cache
	tm     *driver.TransactionManager
	sfg    singleflight.Group // prevents cache stampede
	logger *zap.Logger
}

// NewService builds the catalog lookup used to enrich cart lines. cache and
// tm may be nil: without a cache every lookup hits the repository, without a
// transaction manager the product and stock reads run outside a transaction.
func NewService(repo Repository, cache Cache, tm *driver.TransactionManager, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:   repo,
		cache:  cache,
		tm:     tm,
		logger: logger,
	}
}

func (s *service) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	v, err, _ := s.sfg.Do(productID, func() (interface{}, error) {
		if s.cache != nil {
			product, err := s.cache.Get(ctx, productID)
			if err == nil {
				return product, nil
			}
			if !errors.Is(err, ErrCacheMiss) {
				s.logger.Warn("Failed to get product from cache", zap.Error(err))
			}
		}

		product, err := s.fetch(ctx, productID)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := s.cache.Set(ctx, product); err != nil {
					s.logger.Warn("Failed to cache product", zap.Error(err))
				}
			}()
		}

		return product, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.Product), nil
}

// fetch reads the product row and its stock flag. With a transaction manager
// both reads share one RepeatableRead snapshot so the flag matches the row.
func (s *service) fetch(ctx context.Context, productID string) (*models.Product, error) {
	if s.tm == nil {
		return s.read(ctx, nil, productID)
	}

	var product *models.Product
	err := s.tm.ExecuteTransaction(ctx, func(tx pgx.Tx) error {
		p, err := s.read(ctx, tx, productID)
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) read(ctx context.Context, tx pgx.Tx, productID string) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, tx, productID)
	if err != nil {
		return nil, err
	}

	inStock, err := s.repo.StockAvailable(ctx, tx, productID)
	if err != nil {
		return nil, err
	}
	product.InStock = inStock

	return product, nil
}
