package inventory

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/scwtools/scwinv/internal/cache"
	inverrors "github.com/scwtools/scwinv/internal/errors"
	"github.com/scwtools/scwinv/internal/models"
)

// Service wires the aggregator to the read-through cache. One invocation
// produces at most one atomic replace of one cache entry.
type Service struct {
	aggregator   *Aggregator
	store        *cache.Store
	cacheEnabled bool
}

// NewService creates a service. A nil store behaves as if caching were
// disabled.
func NewService(aggregator *Aggregator, store *cache.Store, cacheEnabled bool) *Service {
	return &Service{
		aggregator:   aggregator,
		store:        store,
		cacheEnabled: cacheEnabled && store != nil,
	}
}

// Hosts returns the host records for one inventory source. key identifies
// the source in the cache store. useCache is the per-invocation flag: a
// refresh run passes false to skip the read and overwrite the entry. With
// caching disabled both flags are ignored and every call fetches live.
func (s *Service) Hosts(ctx context.Context, filters Filters, key string, useCache bool) ([]models.Host, error) {
	if !s.cacheEnabled {
		cacheResults.WithLabelValues("disabled").Inc()
		return s.aggregator.Aggregate(ctx, filters)
	}

	if useCache {
		hosts, err := s.store.Read(key)
		if err == nil {
			cacheResults.WithLabelValues("hit").Inc()
			log.Debug().Str("key", key).Int("hosts", len(hosts)).Msg("Serving inventory from cache")
			return hosts, nil
		}
		if !errors.Is(err, inverrors.ErrCacheMiss) {
			return nil, err
		}
		// A miss is not an error: fall through to the live path and
		// write the result back.
		cacheResults.WithLabelValues("miss").Inc()
	} else {
		cacheResults.WithLabelValues("bypass").Inc()
	}

	hosts, err := s.aggregator.Aggregate(ctx, filters)
	if err != nil {
		return nil, err
	}

	if err := s.store.Write(key, hosts); err != nil {
		// The inventory itself is good; a failed cache write only costs
		// the next run a live fetch.
		log.Warn().Str("key", key).Err(err).Msg("Failed to write inventory cache entry")
	}

	return hosts, nil
}
