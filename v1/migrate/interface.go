package migrate

import (
	"context"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// Client is the capability a migration needs from a Qdrant endpoint. Values
// are carried in the REST model regardless of the transport behind it.
//
//go:generate mockgen -source=interface.go -destination=mock_interface.go -package=migrate
type Client interface {
	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// GetCollection returns the configuration and payload schema of a collection.
	GetCollection(ctx context.Context, name string) (*rest.CollectionInfo, error)

	// CreateOrReplaceCollection deletes the collection if it exists and
	// creates it with the given settings.
	CreateOrReplaceCollection(ctx context.Context, name string, create *rest.CreateCollection) error

	// CreatePayloadIndex indexes one payload field.
	CreatePayloadIndex(ctx context.Context, name, field string, schema rest.PayloadFieldSchema) error

	// Scroll returns one page of records and the offset of the next page.
	// A nil offset means the collection is exhausted.
	Scroll(ctx context.Context, name string, req ScrollRequest) ([]rest.Record, rest.ExtendedPointID, error)

	// Upload writes records and waits until they are applied.
	Upload(ctx context.Context, name string, records []rest.Record) error

	// CountPoints returns the exact number of points in a collection.
	CountPoints(ctx context.Context, name string) (uint64, error)
}

// Logger is the logging surface of the migrator.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// ScrollRequest asks for one page. A nil Offset starts at the first point.
type ScrollRequest struct {
	Offset      rest.ExtendedPointID
	Limit       uint32
	WithPayload bool
	WithVectors bool
}
