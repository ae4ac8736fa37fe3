package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"immo-dashboard/metrics"
	"immo-dashboard/models"
	"immo-dashboard/storage"
	"immo-dashboard/utils"
)

// Loader reads the dataset from its source exactly once per process and
// hands out the same immutable *models.Dataset afterwards.
//
// A failing source does not abort the process: Load returns an empty
// dataset whose Diagnostic explains what went wrong.
type Loader struct {
	source  storage.ListingSource
	cleaner *Cleaner
	logger  *utils.Logger

	once    sync.Once
	dataset *models.Dataset
}

// NewLoader creates a Loader over source.
func NewLoader(source storage.ListingSource, logger *utils.Logger) *Loader {
	return &Loader{
		source:  source,
		cleaner: NewCleaner(logger),
		logger:  logger,
	}
}

// Load returns the memoized dataset, reading the source on first call.
// The context of the first call bounds the read.
func (l *Loader) Load(ctx context.Context) *models.Dataset {
	l.once.Do(func() {
		l.dataset = l.load(ctx)
	})
	return l.dataset
}

func (l *Loader) load(ctx context.Context) *models.Dataset {
	name := l.source.Name()
	l.logger.Info("[loader] Loading listings from %s", name)

	listings, err := l.source.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrDataUnavailable) {
			err = fmt.Errorf("%w: %w", storage.ErrDataUnavailable, err)
		}
		diag := fmt.Sprintf("Dataset unavailable from %s: %v", name, err)
		l.logger.Error("[loader] %s", diag)
		metrics.DatasetLoadFailures.Inc()
		metrics.DatasetRows.Set(0)
		return &models.Dataset{Listings: []*models.Listing{}, Source: name, Diagnostic: diag}
	}

	listings = l.cleaner.Clean(listings)
	metrics.DatasetRows.Set(float64(len(listings)))
	l.logger.Info("[loader] Loaded %d listings from %s", len(listings), name)
	return &models.Dataset{Listings: listings, Source: name}
}
