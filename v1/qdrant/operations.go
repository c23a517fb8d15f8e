package qdrant

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/conversion"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/migrate"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

var _ migrate.Client = (*Client)(nil)

// ListCollections returns the names of all collections on the server.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	names, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}
	return names, nil
}

// GetCollection fetches collection info and converts it to the REST model.
func (c *Client) GetCollection(ctx context.Context, name string) (*rest.CollectionInfo, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to get collection '%s': %w", name, err)
	}
	out, err := conversion.ToRestCollectionInfo(info)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to convert collection '%s': %w", name, err)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────
// CreateOrReplaceCollection
// ──────────────────────────────────────────────────────────────
//
// CreateOrReplaceCollection drops the collection when it exists and creates
// it again from create. The request is converted before anything is deleted,
// so a request that cannot be expressed over gRPC leaves the server untouched.
func (c *Client) CreateOrReplaceCollection(ctx context.Context, name string, create *rest.CreateCollection) error {
	req, err := conversion.ToGrpcCreateCollection(name, create)
	if err != nil {
		return fmt.Errorf("[Qdrant] invalid create request for '%s': %w", name, err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	exists, err := c.api.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to check collection '%s': %w", name, err)
	}
	if exists {
		c.logger.Debug("Deleting existing collection", nil, map[string]interface{}{
			"collection": name,
		})
		if err := c.api.DeleteCollection(ctx, name); err != nil {
			return fmt.Errorf("[Qdrant] failed to delete collection '%s': %w", name, err)
		}
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}

	c.logger.Debug("Created collection", nil, map[string]interface{}{
		"collection": name,
		"replaced":   exists,
	})
	return nil
}

// CreatePayloadIndex indexes field and waits for the index to be built.
func (c *Client) CreatePayloadIndex(ctx context.Context, name, field string, schema rest.PayloadFieldSchema) error {
	req, err := conversion.ToGrpcCreateFieldIndex(name, &rest.CreateFieldIndex{
		FieldName:   field,
		FieldSchema: schema,
	})
	if err != nil {
		return fmt.Errorf("[Qdrant] invalid index request for '%s.%s': %w", name, field, err)
	}
	req.Wait = qdrant.PtrOf(true)

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.api.CreateFieldIndex(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create index '%s.%s': %w", name, field, err)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────
// Scroll
// ──────────────────────────────────────────────────────────────
//
// Scroll reads one page of points. The returned offset is nil once the
// collection is exhausted.
func (c *Client) Scroll(ctx context.Context, name string, req migrate.ScrollRequest) ([]rest.Record, rest.ExtendedPointID, error) {
	scroll := &qdrant.ScrollPoints{
		CollectionName: name,
		WithPayload:    qdrant.NewWithPayload(req.WithPayload),
		WithVectors:    qdrant.NewWithVectors(req.WithVectors),
	}
	if req.Limit > 0 {
		scroll.Limit = qdrant.PtrOf(req.Limit)
	}
	if req.Offset != nil {
		offset, err := conversion.ToGrpcPointID(req.Offset)
		if err != nil {
			return nil, nil, fmt.Errorf("[Qdrant] invalid scroll offset: %w", err)
		}
		scroll.Offset = offset
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	points, next, err := c.api.ScrollAndOffset(ctx, scroll)
	if err != nil {
		return nil, nil, fmt.Errorf("[Qdrant] failed to scroll '%s': %w", name, err)
	}

	records := make([]rest.Record, 0, len(points))
	for i, p := range points {
		r, err := conversion.ToRestRecord(p)
		if err != nil {
			return nil, nil, fmt.Errorf("[Qdrant] failed to convert point %d of '%s': %w", i, name, err)
		}
		records = append(records, *r)
	}

	if next == nil {
		return records, nil, nil
	}
	nextOffset, err := conversion.ToRestPointID(next)
	if err != nil {
		return nil, nil, fmt.Errorf("[Qdrant] invalid next offset from '%s': %w", name, err)
	}
	return records, nextOffset, nil
}

// ──────────────────────────────────────────────────────────────
// Upload
// ──────────────────────────────────────────────────────────────
//
// Upload upserts records in a single request and waits for it to be applied.
func (c *Client) Upload(ctx context.Context, name string, records []rest.Record) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for i, r := range records {
		ps := conversion.RecordToPointStruct(r)
		p, err := conversion.ToGrpcPointStruct(&ps)
		if err != nil {
			return fmt.Errorf("[Qdrant] failed to convert record %d for '%s': %w", i, name, err)
		}
		points = append(points, p)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: name,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	}); err != nil {
		return fmt.Errorf("[Qdrant] failed to upsert %d points into '%s': %w", len(points), name, err)
	}
	return nil
}

// CountPoints returns the exact number of points in the collection.
func (c *Client) CountPoints(ctx context.Context, name string) (uint64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	n, err := c.api.Count(ctx, &qdrant.CountPoints{
		CollectionName: name,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("[Qdrant] failed to count points in '%s': %w", name, err)
	}
	return n, nil
}

// UpdateAliases applies alias actions in order as one request.
func (c *Client) UpdateAliases(ctx context.Context, ops *rest.ChangeAliasesOperation) error {
	actions, err := conversion.ToGrpcAliasOperations(ops)
	if err != nil {
		return fmt.Errorf("[Qdrant] invalid alias operations: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.api.UpdateAliases(ctx, actions); err != nil {
		return fmt.Errorf("[Qdrant] failed to update aliases: %w", err)
	}
	return nil
}
