package migrate

import (
	"slices"

	"github.com/samber/lo"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// CreateCollectionFromConfig builds the create request that reproduces a
// collection: vectors, sharding, replication, payload storage, HNSW,
// optimizer, WAL and quantization settings.
func CreateCollectionFromConfig(cfg *rest.CollectionConfig) (*rest.CreateCollection, error) {
	if cfg == nil || cfg.Params == nil {
		return nil, ErrNoCollectionConfig
	}

	p := cfg.Params
	return &rest.CreateCollection{
		Vectors:                p.Vectors,
		ShardNumber:            p.ShardNumber,
		ReplicationFactor:      p.ReplicationFactor,
		WriteConsistencyFactor: p.WriteConsistencyFactor,
		OnDiskPayload:          p.OnDiskPayload,
		HnswConfig:             hnswDiff(cfg.HnswConfig),
		OptimizersConfig:       optimizersDiff(cfg.OptimizerConfig),
		WalConfig:              walDiff(cfg.WalConfig),
		QuantizationConfig:     cfg.QuantizationConfig,
	}, nil
}

func hnswDiff(c *rest.HnswConfig) *rest.HnswConfigDiff {
	if c == nil {
		return nil
	}
	return &rest.HnswConfigDiff{
		M:                  lo.ToPtr(c.M),
		EfConstruct:        lo.ToPtr(c.EfConstruct),
		FullScanThreshold:  lo.ToPtr(c.FullScanThreshold),
		MaxIndexingThreads: lo.ToPtr(c.MaxIndexingThreads),
		OnDisk:             c.OnDisk,
		PayloadM:           c.PayloadM,
		InlineStorage:      c.InlineStorage,
	}
}

func optimizersDiff(c *rest.OptimizersConfig) *rest.OptimizersConfigDiff {
	if c == nil {
		return nil
	}
	return &rest.OptimizersConfigDiff{
		DeletedThreshold:       lo.ToPtr(c.DeletedThreshold),
		VacuumMinVectorNumber:  lo.ToPtr(c.VacuumMinVectorNumber),
		DefaultSegmentNumber:   lo.ToPtr(c.DefaultSegmentNumber),
		MaxSegmentSize:         c.MaxSegmentSize,
		MemmapThreshold:        c.MemmapThreshold,
		IndexingThreshold:      c.IndexingThreshold,
		FlushIntervalSec:       lo.ToPtr(c.FlushIntervalSec),
		MaxOptimizationThreads: c.MaxOptimizationThreads,
	}
}

func walDiff(c *rest.WalConfig) *rest.WalConfigDiff {
	if c == nil {
		return nil
	}
	return &rest.WalConfigDiff{
		WalCapacityMb:    lo.ToPtr(c.WalCapacityMb),
		WalSegmentsAhead: lo.ToPtr(c.WalSegmentsAhead),
		WalRetainClosed:  c.WalRetainClosed,
	}
}

// FieldSchema returns the index parameters of a payload field if it has
// any, else its bare type.
func FieldSchema(info *rest.PayloadIndexInfo) (rest.PayloadFieldSchema, error) {
	if info == nil {
		return nil, ErrNoPayloadSchema
	}
	if info.Params != nil {
		return info.Params, nil
	}
	return info.DataType, nil
}

func sorted(names []string) []string {
	out := lo.Uniq(names)
	slices.Sort(out)
	return out
}

func sameOffset(a, b rest.ExtendedPointID) bool {
	return a != nil && b != nil && a == b
}
