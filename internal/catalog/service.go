package catalog

import (
	"context"
	"errors"
	"log"
	"strconv"

	"golang.org/x/sync/singleflight"
)

// ProductSource is the remote boundary the service reads through.
type ProductSource interface {
	GetProducts(ctx context.Context, query ProductQuery) ([]Product, error)
	GetProductByID(ctx context.Context, id int64) (Product, error)
}

type Service struct {
	source ProductSource
	cache  ProductCache
	sfg    singleflight.Group // Prevents cache stampede
}

// NewService wraps the source with a product cache. The cache may be
// nil; lookups then always hit the source.
func NewService(source ProductSource, cache ProductCache) *Service {
	return &Service{
		source: source,
		cache:  cache,
	}
}

func (s *Service) GetProducts(ctx context.Context, query ProductQuery) ([]Product, error) {
	return s.source.GetProducts(ctx, query)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (Product, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		if s.cache != nil {
			product, err := s.cache.Get(ctx, id)
			if err == nil {
				return product, nil
			}
			if !errors.Is(err, ErrCacheMiss) {
				log.Printf("cache get error: %v", err) // log cache error but continue
			}
		}

		product, err := s.source.GetProductByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			go func() {
				if errSet := s.cache.Set(context.Background(), &product); errSet != nil {
					log.Printf("cache set error: %v", errSet)
				}
			}()
		}

		return &product, nil
	})
	if err != nil {
		return Product{}, err
	}

	return *v.(*Product), nil
}
