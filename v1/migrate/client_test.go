package migrate

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// memClient is an in-memory Client. Records are kept in insertion order and
// a scroll offset is the id of the first record of the page.
type memClient struct {
	collections map[string]*memCollection

	scrolls []ScrollRequest
	uploads [][]rest.Record
	writes  int

	// countDelta is added to CountPoints results, to fake lost points.
	countDelta map[string]int

	failUpload map[string]error
}

type memCollection struct {
	info    *rest.CollectionInfo
	create  *rest.CreateCollection
	records []rest.Record
	indexes map[string]rest.PayloadFieldSchema
}

func newMemClient() *memClient {
	return &memClient{
		collections: map[string]*memCollection{},
		countDelta:  map[string]int{},
		failUpload:  map[string]error{},
	}
}

// withCollection adds a collection with n numbered points and a keyword index.
func (c *memClient) withCollection(name string, n int) *memClient {
	records := make([]rest.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, rest.Record{
			ID:      rest.PointNum(i + 1),
			Vector:  rest.DenseVector{float32(i), 1},
			Payload: rest.Payload{"n": i},
		})
	}
	c.collections[name] = &memCollection{
		info:    sampleInfo(),
		records: records,
		indexes: map[string]rest.PayloadFieldSchema{},
	}
	return c
}

func (c *memClient) get(name string) (*memCollection, error) {
	col, ok := c.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %q not found", name)
	}
	return col, nil
}

func (c *memClient) ListCollections(context.Context) ([]string, error) {
	names := lo.Keys(c.collections)
	sort.Strings(names)
	return names, nil
}

func (c *memClient) GetCollection(_ context.Context, name string) (*rest.CollectionInfo, error) {
	col, err := c.get(name)
	if err != nil {
		return nil, err
	}
	return col.info, nil
}

func (c *memClient) CreateOrReplaceCollection(_ context.Context, name string, create *rest.CreateCollection) error {
	c.writes++
	c.collections[name] = &memCollection{
		info:    &rest.CollectionInfo{Status: rest.CollectionStatusGreen},
		create:  create,
		indexes: map[string]rest.PayloadFieldSchema{},
	}
	return nil
}

func (c *memClient) CreatePayloadIndex(_ context.Context, name, field string, schema rest.PayloadFieldSchema) error {
	c.writes++
	col, err := c.get(name)
	if err != nil {
		return err
	}
	col.indexes[field] = schema
	return nil
}

func (c *memClient) Scroll(_ context.Context, name string, req ScrollRequest) ([]rest.Record, rest.ExtendedPointID, error) {
	c.scrolls = append(c.scrolls, req)
	col, err := c.get(name)
	if err != nil {
		return nil, nil, err
	}

	start := 0
	if req.Offset != nil {
		start = lo.IndexOf(lo.Map(col.records, func(r rest.Record, _ int) rest.ExtendedPointID { return r.ID }), req.Offset)
		if start < 0 {
			return nil, nil, fmt.Errorf("offset %s not found", req.Offset)
		}
	}

	end := min(start+int(req.Limit), len(col.records))
	page := col.records[start:end]
	if end < len(col.records) {
		return page, col.records[end].ID, nil
	}
	return page, nil, nil
}

func (c *memClient) Upload(_ context.Context, name string, records []rest.Record) error {
	c.writes++
	if err := c.failUpload[name]; err != nil {
		return err
	}
	col, err := c.get(name)
	if err != nil {
		return err
	}
	c.uploads = append(c.uploads, records)
	col.records = append(col.records, records...)
	return nil
}

func (c *memClient) CountPoints(_ context.Context, name string) (uint64, error) {
	col, err := c.get(name)
	if err != nil {
		return 0, err
	}
	return uint64(len(col.records) + c.countDelta[name]), nil
}

func sampleInfo() *rest.CollectionInfo {
	return &rest.CollectionInfo{
		Status:          rest.CollectionStatusGreen,
		OptimizerStatus: rest.OptimizersStatus{OK: true},
		Config: &rest.CollectionConfig{
			Params: &rest.CollectionParams{
				Vectors:           &rest.VectorParams{Size: 2, Distance: rest.DistanceCosine},
				ShardNumber:       lo.ToPtr(uint32(2)),
				ReplicationFactor: lo.ToPtr(uint32(1)),
				OnDiskPayload:     lo.ToPtr(true),
			},
			HnswConfig: &rest.HnswConfig{M: 16, EfConstruct: 100, FullScanThreshold: 10000},
			OptimizerConfig: &rest.OptimizersConfig{
				DeletedThreshold:     0.2,
				DefaultSegmentNumber: 2,
				FlushIntervalSec:     5,
			},
			WalConfig: &rest.WalConfig{WalCapacityMb: 32, WalSegmentsAhead: 0},
		},
		PayloadSchema: map[string]*rest.PayloadIndexInfo{
			"city": {DataType: rest.PayloadSchemaKeyword},
			"tenant": {
				DataType: rest.PayloadSchemaKeyword,
				Params:   &rest.PayloadIndexParams{Type: rest.PayloadSchemaKeyword, IsTenant: lo.ToPtr(true)},
			},
		},
	}
}
