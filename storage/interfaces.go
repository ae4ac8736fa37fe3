package storage

import (
	"context"
	"errors"

	"immo-dashboard/models"
)

// ErrDataUnavailable reports that the listing source could not be read.
var ErrDataUnavailable = errors.New("data unavailable")

// ListingSource is any backend able to produce the full listing dataset.
type ListingSource interface {
	Load(ctx context.Context) ([]*models.Listing, error)
	Name() string
}

// ListingWriter is the interface any storage backend must satisfy.
type ListingWriter interface {
	Write(ctx context.Context, listings []*models.Listing) error
	Close() error
}

var (
	_ ListingSource = (*CSVReader)(nil)
	_ ListingSource = (*PostgresStore)(nil)
	_ ListingWriter = (*CSVWriter)(nil)
	_ ListingWriter = (*PostgresStore)(nil)
)
