package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/b3rknt/Modanist/internal/domain"
)

const cacheInvalidateTimeout = time.Second

// Service fronts the product repository with a read-through cache for the
// full listing. Every write invalidates the cached listing.
type Service struct {
	repo  ProductRepository
	cache ProductCache
	log   zerolog.Logger
	sfg   singleflight.Group // prevents cache stampede on the listing
}

func NewService(repo ProductRepository, cache ProductCache, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do(catalogKey, func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn().Err(err).Msg("catalog cache get failed")
		}

		products, err = s.repo.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), products); err != nil {
				s.log.Warn().Err(err).Msg("catalog cache set failed")
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.GetByCategory(ctx, category)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) Create(ctx context.Context, form domain.ProductForm) (string, error) {
	id, err := s.repo.Create(ctx, form)
	if err != nil {
		return "", err
	}
	s.invalidate()
	return id, nil
}

func (s *Service) Update(ctx context.Context, id string, update domain.ProductUpdate) error {
	if err := s.repo.Update(ctx, id, update); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) DecrementStock(ctx context.Context, id string, quantity int) error {
	if err := s.repo.DecrementStock(ctx, id, quantity); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *Service) invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), cacheInvalidateTimeout)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidate failed")
	}
}
