package qdranthttp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/lo"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/migrate"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

var _ migrate.Client = (*Client)(nil)

func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	var resp rest.CollectionsResponse
	if err := c.do(ctx, http.MethodGet, "./collections", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("[QdrantHTTP] failed to list collections: %w", err)
	}
	return lo.Map(resp.Collections, func(d rest.CollectionDescription, _ int) string {
		return d.Name
	}), nil
}

func (c *Client) GetCollection(ctx context.Context, name string) (*rest.CollectionInfo, error) {
	path, err := collectionPath(name, "")
	if err != nil {
		return nil, err
	}
	var info rest.CollectionInfo
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &info); err != nil {
		return nil, fmt.Errorf("[QdrantHTTP] failed to get collection '%s': %w", name, err)
	}
	return &info, nil
}

// CreateOrReplaceCollection deletes the collection, which is a no-op for a
// missing one, and creates it from create.
func (c *Client) CreateOrReplaceCollection(ctx context.Context, name string, create *rest.CreateCollection) error {
	if create == nil {
		return fmt.Errorf("[QdrantHTTP] invalid create request for '%s': missing body", name)
	}
	path, err := collectionPath(name, "")
	if err != nil {
		return err
	}

	var deleted bool
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &deleted); err != nil {
		return fmt.Errorf("[QdrantHTTP] failed to delete collection '%s': %w", name, err)
	}
	if err := c.do(ctx, http.MethodPut, path, nil, create, nil); err != nil {
		return fmt.Errorf("[QdrantHTTP] failed to create collection '%s': %w", name, err)
	}

	c.logger.Debug("Created collection", nil, map[string]interface{}{
		"collection": name,
		"replaced":   deleted,
	})
	return nil
}

func (c *Client) CreatePayloadIndex(ctx context.Context, name, field string, schema rest.PayloadFieldSchema) error {
	path, err := collectionPath(name, "/index")
	if err != nil {
		return err
	}
	query, err := waitQuery()
	if err != nil {
		return err
	}
	body := &rest.CreateFieldIndex{FieldName: field, FieldSchema: schema}
	if err := c.do(ctx, http.MethodPut, path, query, body, nil); err != nil {
		return fmt.Errorf("[QdrantHTTP] failed to create index '%s.%s': %w", name, field, err)
	}
	return nil
}

func (c *Client) Scroll(ctx context.Context, name string, req migrate.ScrollRequest) ([]rest.Record, rest.ExtendedPointID, error) {
	path, err := collectionPath(name, "/points/scroll")
	if err != nil {
		return nil, nil, err
	}
	body := &rest.ScrollRequest{
		Offset:      req.Offset,
		WithPayload: lo.ToPtr(req.WithPayload),
		WithVector:  lo.ToPtr(req.WithVectors),
	}
	if req.Limit > 0 {
		body.Limit = lo.ToPtr(req.Limit)
	}

	var page rest.ScrollResult
	if err := c.do(ctx, http.MethodPost, path, nil, body, &page); err != nil {
		return nil, nil, fmt.Errorf("[QdrantHTTP] failed to scroll '%s': %w", name, err)
	}
	return page.Points, page.NextPageOffset, nil
}

func (c *Client) Upload(ctx context.Context, name string, records []rest.Record) error {
	if len(records) == 0 {
		return nil
	}
	path, err := collectionPath(name, "/points")
	if err != nil {
		return err
	}
	query, err := waitQuery()
	if err != nil {
		return err
	}
	body := &rest.PointInsertOperations{
		Points: lo.Map(records, func(r rest.Record, _ int) rest.PointStruct {
			return rest.PointStruct{ID: r.ID, Vector: r.Vector, Payload: r.Payload}
		}),
	}
	if err := c.do(ctx, http.MethodPut, path, query, body, nil); err != nil {
		return fmt.Errorf("[QdrantHTTP] failed to upsert %d points into '%s': %w", len(records), name, err)
	}
	return nil
}

func (c *Client) CountPoints(ctx context.Context, name string) (uint64, error) {
	path, err := collectionPath(name, "/points/count")
	if err != nil {
		return 0, err
	}
	var result rest.CountResult
	if err := c.do(ctx, http.MethodPost, path, nil, &rest.CountRequest{Exact: true}, &result); err != nil {
		return 0, fmt.Errorf("[QdrantHTTP] failed to count points in '%s': %w", name, err)
	}
	return result.Count, nil
}

// UpdateAliases applies alias actions in order as one request.
func (c *Client) UpdateAliases(ctx context.Context, ops *rest.ChangeAliasesOperation) error {
	if err := c.do(ctx, http.MethodPost, "./collections/aliases", nil, ops, nil); err != nil {
		return fmt.Errorf("[QdrantHTTP] failed to update aliases: %w", err)
	}
	return nil
}
