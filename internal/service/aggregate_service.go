package service

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/delaywise/flights-backend-go/internal/aggregate"
	"github.com/delaywise/flights-backend-go/internal/airports"
	"github.com/delaywise/flights-backend-go/internal/features"
	"github.com/delaywise/flights-backend-go/internal/models"
)

// AggregateService owns the read-only aggregate tables. Readers load the
// current snapshot through an atomic pointer, so a rebuild swaps both tables
// at once and a request never observes a half-replaced snapshot.
type AggregateService struct {
	airports   *airports.Table
	statsDir   string
	corpusRoot string
	workers    int

	tables atomic.Pointer[aggregate.Result]
}

// NewAggregateService loads the persisted snapshot from statsDir. Missing
// snapshot files yield empty tables; scoring then uses zeroed airline
// aggregates until the first batch run.
func NewAggregateService(table *airports.Table, statsDir, corpusRoot string, workers int) (*AggregateService, error) {
	res, err := aggregate.LoadSnapshot(statsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load aggregate snapshot: %w", err)
	}

	s := &AggregateService{
		airports:   table,
		statsDir:   statsDir,
		corpusRoot: corpusRoot,
		workers:    workers,
	}
	s.tables.Store(&res)
	log.Printf("Loaded aggregate tables: %d airlines, %d airports", len(res.AirlineStats), len(res.AirportBusyness))
	return s, nil
}

// AirlineStats returns the current per-airline aggregate table.
func (s *AggregateService) AirlineStats() map[string]models.AirlineStats {
	return s.tables.Load().AirlineStats
}

// AirportBusyness returns the current per-airport busyness table.
func (s *AggregateService) AirportBusyness() map[string]float64 {
	return s.tables.Load().AirportBusyness
}

// Rebuild runs the offline builder over the corpus, persists the snapshot
// atomically, and swaps the in-memory tables. The builder is idempotent:
// an unchanged corpus reproduces byte-identical output.
func (s *AggregateService) Rebuild(ctx context.Context) (aggregate.Manifest, error) {
	builder := aggregate.NewBuilder(s.airports, s.corpusRoot, s.workers)
	res, fileStats, err := builder.Run(ctx)
	if err != nil {
		return aggregate.Manifest{}, fmt.Errorf("aggregate rebuild failed: %w", err)
	}

	manifest := aggregate.Manifest{Root: s.corpusRoot, Files: fileStats}
	if err := aggregate.WriteSnapshot(s.statsDir, res, manifest, features.FeatureNames()); err != nil {
		return aggregate.Manifest{}, fmt.Errorf("failed to persist aggregate snapshot: %w", err)
	}

	s.tables.Store(&res)
	log.Printf("Aggregate tables rebuilt: %d airlines, %d airports", len(res.AirlineStats), len(res.AirportBusyness))
	return manifest, nil
}
