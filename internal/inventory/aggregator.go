package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	inverrors "github.com/scwtools/scwinv/internal/errors"
	"github.com/scwtools/scwinv/internal/models"
	"github.com/scwtools/scwinv/pkg/scaleway"
)

// defaultParallelism bounds the number of in-flight zone queries.
const defaultParallelism = 4

// Aggregator runs every (source class, zone) fetch and concatenates the
// results. Source classes keep their configured order in the output: all
// instance records grouped by zone in configured zone order, then all
// elastic metal records likewise, regardless of completion order.
type Aggregator struct {
	fetchers    []fetcher
	parallelism int
}

// NewAggregator creates an aggregator over the two source classes.
func NewAggregator(instances InstanceLister, baremetal BaremetalLister) *Aggregator {
	return &Aggregator{
		fetchers: []fetcher{
			&instanceFetcher{api: instances},
			&baremetalFetcher{api: baremetal},
		},
		parallelism: defaultParallelism,
	}
}

// SetParallelism bounds the worker pool. Values below one reset the
// default.
func (a *Aggregator) SetParallelism(n int) {
	if n < 1 {
		n = defaultParallelism
	}
	a.parallelism = n
}

// Aggregate fetches all source classes across all configured zones. It
// fails only when a required source class fails; optional source classes
// degrade to an empty contribution for the failing zone.
func (a *Aggregator) Aggregate(ctx context.Context, filters Filters) ([]models.Host, error) {
	start := time.Now()
	runID := uuid.NewString()
	zones := filters.queryZones()

	logger := log.With().Str("run_id", runID).Logger()
	logger.Debug().
		Strs("zones", zones).
		Strs("tags", filters.Tags).
		Int("parallelism", a.parallelism).
		Msg("Starting inventory aggregation")

	// One result slot per (source class, zone) pair. Workers write only
	// their own slot, so the merge below is the only synchronization
	// point and the output order is fully determined by slot order.
	slots := make([][]models.Host, len(a.fetchers)*len(zones))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)

	for fi, f := range a.fetchers {
		for zi, zone := range zones {
			f, zone := f, zone
			slot := fi*len(zones) + zi
			g.Go(func() error {
				hosts, err := f.fetchZone(gctx, zone, filters)
				if err != nil {
					fetchTotal.WithLabelValues(string(f.source()), "error").Inc()

					if f.required() {
						qerr := inverrors.NewRemoteQueryError("list_servers", f.source(), zone, err)
						var apiErr *scaleway.APIError
						if errors.As(err, &apiErr) {
							qerr = qerr.WithStatusCode(apiErr.StatusCode)
						}
						return qerr
					}

					// A sibling's fatal error cancels the group; that is
					// not a zone failure worth reporting here.
					if errors.Is(err, context.Canceled) {
						return nil
					}
					logger.Info().
						Str("source", string(f.source())).
						Str("zone", zone).
						Err(err).
						Msg("Optional source query failed, dropping zone contribution")
					return nil
				}

				fetchTotal.WithLabelValues(string(f.source()), "success").Inc()
				slots[slot] = hosts
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Inventory aggregation failed")
		return nil, err
	}

	var results []models.Host
	counts := make(map[inverrors.Source]int, len(a.fetchers))
	for fi, f := range a.fetchers {
		for zi := range zones {
			hosts := slots[fi*len(zones)+zi]
			counts[f.source()] += len(hosts)
			results = append(results, hosts...)
		}
		hostsFound.WithLabelValues(string(f.source())).Set(float64(counts[f.source()]))
	}

	fetchDuration.Observe(time.Since(start).Seconds())

	logger.Info().
		Int("count", counts[inverrors.SourceBaremetal]).
		Msg("Found elastic metal servers")
	logger.Info().
		Int("instances", counts[inverrors.SourceInstance]).
		Int("baremetal", counts[inverrors.SourceBaremetal]).
		Dur("duration", time.Since(start)).
		Msg("Inventory aggregation completed")

	return results, nil
}
