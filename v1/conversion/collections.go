package conversion

import (
	"github.com/qdrant/go-client/qdrant"
	"github.com/samber/lo"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// ── HNSW ─────────────────────────────────────────────────────────────────────

// ToGrpcHnswConfig converts a full HNSW config into the diff message the
// gRPC model uses for collection configs.
func ToGrpcHnswConfig(h *rest.HnswConfig) *qdrant.HnswConfigDiff {
	if h == nil {
		return nil
	}
	return &qdrant.HnswConfigDiff{
		M:                  lo.ToPtr(h.M),
		EfConstruct:        lo.ToPtr(h.EfConstruct),
		FullScanThreshold:  lo.ToPtr(h.FullScanThreshold),
		MaxIndexingThreads: lo.ToPtr(h.MaxIndexingThreads),
		OnDisk:             clonePtr(h.OnDisk),
		PayloadM:           clonePtr(h.PayloadM),
		InlineStorage:      clonePtr(h.InlineStorage),
	}
}

func ToRestHnswConfig(h *qdrant.HnswConfigDiff) *rest.HnswConfig {
	if h == nil {
		return nil
	}
	return &rest.HnswConfig{
		M:                  h.GetM(),
		EfConstruct:        h.GetEfConstruct(),
		FullScanThreshold:  h.GetFullScanThreshold(),
		MaxIndexingThreads: h.GetMaxIndexingThreads(),
		OnDisk:             clonePtr(h.OnDisk),
		PayloadM:           clonePtr(h.PayloadM),
		InlineStorage:      clonePtr(h.InlineStorage),
	}
}

func ToGrpcHnswConfigDiff(h *rest.HnswConfigDiff) *qdrant.HnswConfigDiff {
	if h == nil {
		return nil
	}
	return &qdrant.HnswConfigDiff{
		M:                  clonePtr(h.M),
		EfConstruct:        clonePtr(h.EfConstruct),
		FullScanThreshold:  clonePtr(h.FullScanThreshold),
		MaxIndexingThreads: clonePtr(h.MaxIndexingThreads),
		OnDisk:             clonePtr(h.OnDisk),
		PayloadM:           clonePtr(h.PayloadM),
		InlineStorage:      clonePtr(h.InlineStorage),
	}
}

func ToRestHnswConfigDiff(h *qdrant.HnswConfigDiff) *rest.HnswConfigDiff {
	if h == nil {
		return nil
	}
	return &rest.HnswConfigDiff{
		M:                  clonePtr(h.M),
		EfConstruct:        clonePtr(h.EfConstruct),
		FullScanThreshold:  clonePtr(h.FullScanThreshold),
		MaxIndexingThreads: clonePtr(h.MaxIndexingThreads),
		OnDisk:             clonePtr(h.OnDisk),
		PayloadM:           clonePtr(h.PayloadM),
		InlineStorage:      clonePtr(h.InlineStorage),
	}
}

// ── Optimizers ───────────────────────────────────────────────────────────────

func ToGrpcOptimizersConfig(o *rest.OptimizersConfig) *qdrant.OptimizersConfigDiff {
	if o == nil {
		return nil
	}
	return &qdrant.OptimizersConfigDiff{
		DeletedThreshold:       lo.ToPtr(o.DeletedThreshold),
		VacuumMinVectorNumber:  lo.ToPtr(o.VacuumMinVectorNumber),
		DefaultSegmentNumber:   lo.ToPtr(o.DefaultSegmentNumber),
		MaxSegmentSize:         clonePtr(o.MaxSegmentSize),
		MemmapThreshold:        clonePtr(o.MemmapThreshold),
		IndexingThreshold:      clonePtr(o.IndexingThreshold),
		FlushIntervalSec:       lo.ToPtr(o.FlushIntervalSec),
		MaxOptimizationThreads: toGrpcMaxOptimizationThreads(o.MaxOptimizationThreads),
	}
}

func ToRestOptimizersConfig(o *qdrant.OptimizersConfigDiff) *rest.OptimizersConfig {
	if o == nil {
		return nil
	}
	return &rest.OptimizersConfig{
		DeletedThreshold:       o.GetDeletedThreshold(),
		VacuumMinVectorNumber:  o.GetVacuumMinVectorNumber(),
		DefaultSegmentNumber:   o.GetDefaultSegmentNumber(),
		MaxSegmentSize:         clonePtr(o.MaxSegmentSize),
		MemmapThreshold:        clonePtr(o.MemmapThreshold),
		IndexingThreshold:      clonePtr(o.IndexingThreshold),
		FlushIntervalSec:       o.GetFlushIntervalSec(),
		MaxOptimizationThreads: toRestMaxOptimizationThreads(o.GetMaxOptimizationThreads()),
	}
}

func ToGrpcOptimizersConfigDiff(o *rest.OptimizersConfigDiff) *qdrant.OptimizersConfigDiff {
	if o == nil {
		return nil
	}
	return &qdrant.OptimizersConfigDiff{
		DeletedThreshold:       clonePtr(o.DeletedThreshold),
		VacuumMinVectorNumber:  clonePtr(o.VacuumMinVectorNumber),
		DefaultSegmentNumber:   clonePtr(o.DefaultSegmentNumber),
		MaxSegmentSize:         clonePtr(o.MaxSegmentSize),
		MemmapThreshold:        clonePtr(o.MemmapThreshold),
		IndexingThreshold:      clonePtr(o.IndexingThreshold),
		FlushIntervalSec:       clonePtr(o.FlushIntervalSec),
		MaxOptimizationThreads: toGrpcMaxOptimizationThreads(o.MaxOptimizationThreads),
	}
}

func ToRestOptimizersConfigDiff(o *qdrant.OptimizersConfigDiff) *rest.OptimizersConfigDiff {
	if o == nil {
		return nil
	}
	return &rest.OptimizersConfigDiff{
		DeletedThreshold:       clonePtr(o.DeletedThreshold),
		VacuumMinVectorNumber:  clonePtr(o.VacuumMinVectorNumber),
		DefaultSegmentNumber:   clonePtr(o.DefaultSegmentNumber),
		MaxSegmentSize:         clonePtr(o.MaxSegmentSize),
		MemmapThreshold:        clonePtr(o.MemmapThreshold),
		IndexingThreshold:      clonePtr(o.IndexingThreshold),
		FlushIntervalSec:       clonePtr(o.FlushIntervalSec),
		MaxOptimizationThreads: toRestMaxOptimizationThreads(o.GetMaxOptimizationThreads()),
	}
}

// A nil thread count means "auto" on the REST side.
func toGrpcMaxOptimizationThreads(n *uint64) *qdrant.MaxOptimizationThreads {
	if n == nil {
		return nil
	}
	return &qdrant.MaxOptimizationThreads{
		Variant: &qdrant.MaxOptimizationThreads_Value{Value: *n},
	}
}

func toRestMaxOptimizationThreads(m *qdrant.MaxOptimizationThreads) *uint64 {
	if v, ok := m.GetVariant().(*qdrant.MaxOptimizationThreads_Value); ok {
		return lo.ToPtr(v.Value)
	}
	return nil
}

// ── WAL ──────────────────────────────────────────────────────────────────────

func ToGrpcWalConfig(w *rest.WalConfig) *qdrant.WalConfigDiff {
	if w == nil {
		return nil
	}
	return &qdrant.WalConfigDiff{
		WalCapacityMb:    lo.ToPtr(w.WalCapacityMb),
		WalSegmentsAhead: lo.ToPtr(w.WalSegmentsAhead),
		WalRetainClosed:  clonePtr(w.WalRetainClosed),
	}
}

func ToRestWalConfig(w *qdrant.WalConfigDiff) *rest.WalConfig {
	if w == nil {
		return nil
	}
	return &rest.WalConfig{
		WalCapacityMb:    w.GetWalCapacityMb(),
		WalSegmentsAhead: w.GetWalSegmentsAhead(),
		WalRetainClosed:  clonePtr(w.WalRetainClosed),
	}
}

func ToGrpcWalConfigDiff(w *rest.WalConfigDiff) *qdrant.WalConfigDiff {
	if w == nil {
		return nil
	}
	return &qdrant.WalConfigDiff{
		WalCapacityMb:    clonePtr(w.WalCapacityMb),
		WalSegmentsAhead: clonePtr(w.WalSegmentsAhead),
		WalRetainClosed:  clonePtr(w.WalRetainClosed),
	}
}

func ToRestWalConfigDiff(w *qdrant.WalConfigDiff) *rest.WalConfigDiff {
	if w == nil {
		return nil
	}
	return &rest.WalConfigDiff{
		WalCapacityMb:    clonePtr(w.WalCapacityMb),
		WalSegmentsAhead: clonePtr(w.WalSegmentsAhead),
		WalRetainClosed:  clonePtr(w.WalRetainClosed),
	}
}

// ── Quantization ─────────────────────────────────────────────────────────────

// ToGrpcQuantizationConfig converts a quantization config. A nil config
// converts to nil.
func ToGrpcQuantizationConfig(q rest.QuantizationConfig) (*qdrant.QuantizationConfig, error) {
	switch q := q.(type) {
	case nil:
		return nil, nil
	case *rest.ScalarQuantization:
		if q == nil {
			break
		}
		t, err := scalarTypes.grpc(q.Scalar.Type)
		if err != nil {
			return nil, err
		}
		return &qdrant.QuantizationConfig{Quantization: &qdrant.QuantizationConfig_Scalar{
			Scalar: &qdrant.ScalarQuantization{
				Type:      t,
				Quantile:  clonePtr(q.Scalar.Quantile),
				AlwaysRam: clonePtr(q.Scalar.AlwaysRAM),
			},
		}}, nil
	case *rest.ProductQuantization:
		if q == nil {
			break
		}
		c, err := compressionRatios.grpc(q.Product.Compression)
		if err != nil {
			return nil, err
		}
		return &qdrant.QuantizationConfig{Quantization: &qdrant.QuantizationConfig_Product{
			Product: &qdrant.ProductQuantization{
				Compression: c,
				AlwaysRam:   clonePtr(q.Product.AlwaysRAM),
			},
		}}, nil
	case *rest.BinaryQuantization:
		if q == nil {
			break
		}
		return &qdrant.QuantizationConfig{Quantization: &qdrant.QuantizationConfig_Binary{
			Binary: &qdrant.BinaryQuantization{AlwaysRam: clonePtr(q.Binary.AlwaysRAM)},
		}}, nil
	}
	return nil, invalidVariant("quantization config", q)
}

// ToRestQuantizationConfig converts a quantization config. A nil config
// converts to nil; a config with no variant set is rejected.
func ToRestQuantizationConfig(q *qdrant.QuantizationConfig) (rest.QuantizationConfig, error) {
	if q == nil {
		return nil, nil
	}
	switch v := q.GetQuantization().(type) {
	case *qdrant.QuantizationConfig_Scalar:
		if v.Scalar == nil {
			break
		}
		t, err := scalarTypes.rest(v.Scalar.GetType())
		if err != nil {
			return nil, err
		}
		return &rest.ScalarQuantization{Scalar: rest.ScalarQuantizationConfig{
			Type:      t,
			Quantile:  clonePtr(v.Scalar.Quantile),
			AlwaysRAM: clonePtr(v.Scalar.AlwaysRam),
		}}, nil
	case *qdrant.QuantizationConfig_Product:
		if v.Product == nil {
			break
		}
		c, err := compressionRatios.rest(v.Product.GetCompression())
		if err != nil {
			return nil, err
		}
		return &rest.ProductQuantization{Product: rest.ProductQuantizationConfig{
			Compression: c,
			AlwaysRAM:   clonePtr(v.Product.AlwaysRam),
		}}, nil
	case *qdrant.QuantizationConfig_Binary:
		if v.Binary == nil {
			break
		}
		return &rest.BinaryQuantization{Binary: rest.BinaryQuantizationConfig{
			AlwaysRAM: clonePtr(v.Binary.AlwaysRam),
		}}, nil
	}
	return nil, invalidVariant("quantization config", q)
}

// ── Vectors ──────────────────────────────────────────────────────────────────

func ToGrpcVectorParams(p *rest.VectorParams) (*qdrant.VectorParams, error) {
	if p == nil {
		return nil, missingField("vector params")
	}
	distance, err := ToGrpcDistance(p.Distance)
	if err != nil {
		return nil, err
	}
	quantization, err := ToGrpcQuantizationConfig(p.QuantizationConfig)
	if err != nil {
		return nil, field("quantization_config", err)
	}
	out := &qdrant.VectorParams{
		Size:               p.Size,
		Distance:           distance,
		HnswConfig:         ToGrpcHnswConfigDiff(p.HnswConfig),
		QuantizationConfig: quantization,
		OnDisk:             clonePtr(p.OnDisk),
	}
	if p.Datatype != nil {
		dt, err := datatypes.grpc(*p.Datatype)
		if err != nil {
			return nil, err
		}
		out.Datatype = &dt
	}
	return out, nil
}

// ToRestVectorParams converts vector params. Multivector configs have no
// REST counterpart here and are rejected.
func ToRestVectorParams(p *qdrant.VectorParams) (*rest.VectorParams, error) {
	if p == nil {
		return nil, missingField("vector params")
	}
	if p.GetMultivectorConfig() != nil {
		return nil, invalidVariant("vector params", "multivector config")
	}
	distance, err := ToRestDistance(p.GetDistance())
	if err != nil {
		return nil, err
	}
	quantization, err := ToRestQuantizationConfig(p.GetQuantizationConfig())
	if err != nil {
		return nil, field("quantization_config", err)
	}
	out := &rest.VectorParams{
		Size:               p.GetSize(),
		Distance:           distance,
		HnswConfig:         ToRestHnswConfigDiff(p.GetHnswConfig()),
		QuantizationConfig: quantization,
		OnDisk:             clonePtr(p.OnDisk),
	}
	if p.Datatype != nil && *p.Datatype != qdrant.Datatype_Default {
		dt, err := datatypes.rest(*p.Datatype)
		if err != nil {
			return nil, err
		}
		out.Datatype = &dt
	}
	return out, nil
}

// ToGrpcVectorsConfig converts single or named vector params. A nil config
// converts to nil.
func ToGrpcVectorsConfig(v rest.VectorsConfig) (*qdrant.VectorsConfig, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case *rest.VectorParams:
		if v == nil {
			break
		}
		params, err := ToGrpcVectorParams(v)
		if err != nil {
			return nil, err
		}
		return &qdrant.VectorsConfig{Config: &qdrant.VectorsConfig_Params{Params: params}}, nil
	case rest.VectorParamsMap:
		m := make(map[string]*qdrant.VectorParams, len(v))
		for name, p := range v {
			params, err := ToGrpcVectorParams(p)
			if err != nil {
				return nil, field(name, err)
			}
			m[name] = params
		}
		return &qdrant.VectorsConfig{Config: &qdrant.VectorsConfig_ParamsMap{
			ParamsMap: &qdrant.VectorParamsMap{Map: m},
		}}, nil
	}
	return nil, invalidVariant("vectors config", v)
}

func ToRestVectorsConfig(v *qdrant.VectorsConfig) (rest.VectorsConfig, error) {
	if v == nil {
		return nil, nil
	}
	switch c := v.GetConfig().(type) {
	case *qdrant.VectorsConfig_Params:
		params, err := ToRestVectorParams(c.Params)
		if err != nil {
			return nil, err
		}
		return params, nil
	case *qdrant.VectorsConfig_ParamsMap:
		if c.ParamsMap == nil {
			break
		}
		m := make(rest.VectorParamsMap, len(c.ParamsMap.GetMap()))
		for name, p := range c.ParamsMap.GetMap() {
			params, err := ToRestVectorParams(p)
			if err != nil {
				return nil, field(name, err)
			}
			m[name] = params
		}
		return m, nil
	}
	return nil, invalidVariant("vectors config", v)
}

// ── Collection Params and Config ─────────────────────────────────────────────

// ToGrpcCollectionParams converts collection params. Unset shard number and
// on-disk payload become zero values, which the server treats as defaults.
func ToGrpcCollectionParams(p *rest.CollectionParams) (*qdrant.CollectionParams, error) {
	if p == nil {
		return nil, nil
	}
	vectors, err := ToGrpcVectorsConfig(p.Vectors)
	if err != nil {
		return nil, field("vectors", err)
	}
	return &qdrant.CollectionParams{
		ShardNumber:            lo.FromPtr(p.ShardNumber),
		OnDiskPayload:          lo.FromPtr(p.OnDiskPayload),
		VectorsConfig:          vectors,
		ReplicationFactor:      clonePtr(p.ReplicationFactor),
		WriteConsistencyFactor: clonePtr(p.WriteConsistencyFactor),
	}, nil
}

func ToRestCollectionParams(p *qdrant.CollectionParams) (*rest.CollectionParams, error) {
	if p == nil {
		return nil, nil
	}
	vectors, err := ToRestVectorsConfig(p.GetVectorsConfig())
	if err != nil {
		return nil, field("vectors", err)
	}
	return &rest.CollectionParams{
		Vectors:                vectors,
		ShardNumber:            lo.ToPtr(p.GetShardNumber()),
		ReplicationFactor:      clonePtr(p.ReplicationFactor),
		WriteConsistencyFactor: clonePtr(p.WriteConsistencyFactor),
		OnDiskPayload:          lo.ToPtr(p.GetOnDiskPayload()),
	}, nil
}

func ToGrpcCollectionParamsDiff(p *rest.CollectionParamsDiff) *qdrant.CollectionParamsDiff {
	if p == nil {
		return nil
	}
	return &qdrant.CollectionParamsDiff{
		ReplicationFactor:      clonePtr(p.ReplicationFactor),
		WriteConsistencyFactor: clonePtr(p.WriteConsistencyFactor),
		OnDiskPayload:          clonePtr(p.OnDiskPayload),
	}
}

func ToRestCollectionParamsDiff(p *qdrant.CollectionParamsDiff) *rest.CollectionParamsDiff {
	if p == nil {
		return nil
	}
	return &rest.CollectionParamsDiff{
		ReplicationFactor:      clonePtr(p.ReplicationFactor),
		WriteConsistencyFactor: clonePtr(p.WriteConsistencyFactor),
		OnDiskPayload:          clonePtr(p.OnDiskPayload),
	}
}

func ToGrpcCollectionConfig(c *rest.CollectionConfig) (*qdrant.CollectionConfig, error) {
	if c == nil {
		return nil, nil
	}
	params, err := ToGrpcCollectionParams(c.Params)
	if err != nil {
		return nil, field("params", err)
	}
	quantization, err := ToGrpcQuantizationConfig(c.QuantizationConfig)
	if err != nil {
		return nil, field("quantization_config", err)
	}
	return &qdrant.CollectionConfig{
		Params:             params,
		HnswConfig:         ToGrpcHnswConfig(c.HnswConfig),
		OptimizerConfig:    ToGrpcOptimizersConfig(c.OptimizerConfig),
		WalConfig:          ToGrpcWalConfig(c.WalConfig),
		QuantizationConfig: quantization,
	}, nil
}

func ToRestCollectionConfig(c *qdrant.CollectionConfig) (*rest.CollectionConfig, error) {
	if c == nil {
		return nil, nil
	}
	params, err := ToRestCollectionParams(c.GetParams())
	if err != nil {
		return nil, field("params", err)
	}
	quantization, err := ToRestQuantizationConfig(c.GetQuantizationConfig())
	if err != nil {
		return nil, field("quantization_config", err)
	}
	return &rest.CollectionConfig{
		Params:             params,
		HnswConfig:         ToRestHnswConfig(c.GetHnswConfig()),
		OptimizerConfig:    ToRestOptimizersConfig(c.GetOptimizerConfig()),
		WalConfig:          ToRestWalConfig(c.GetWalConfig()),
		QuantizationConfig: quantization,
	}, nil
}

// ── Collection Info ──────────────────────────────────────────────────────────

func ToGrpcOptimizerStatus(s rest.OptimizersStatus) *qdrant.OptimizerStatus {
	return &qdrant.OptimizerStatus{Ok: s.OK, Error: s.Error}
}

func ToRestOptimizerStatus(s *qdrant.OptimizerStatus) rest.OptimizersStatus {
	return rest.OptimizersStatus{OK: s.GetOk(), Error: s.GetError()}
}

func ToGrpcCollectionInfo(i *rest.CollectionInfo) (*qdrant.CollectionInfo, error) {
	if i == nil {
		return nil, nil
	}
	status, err := ToGrpcCollectionStatus(i.Status)
	if err != nil {
		return nil, field("status", err)
	}
	config, err := ToGrpcCollectionConfig(i.Config)
	if err != nil {
		return nil, field("config", err)
	}
	schema, err := toGrpcPayloadSchema(i.PayloadSchema)
	if err != nil {
		return nil, field("payload_schema", err)
	}
	return &qdrant.CollectionInfo{
		Status:              status,
		OptimizerStatus:     ToGrpcOptimizerStatus(i.OptimizerStatus),
		SegmentsCount:       i.SegmentsCount,
		Config:              config,
		PayloadSchema:       schema,
		PointsCount:         clonePtr(i.PointsCount),
		IndexedVectorsCount: clonePtr(i.IndexedVectorsCount),
	}, nil
}

func ToRestCollectionInfo(i *qdrant.CollectionInfo) (*rest.CollectionInfo, error) {
	if i == nil {
		return nil, nil
	}
	status, err := ToRestCollectionStatus(i.GetStatus())
	if err != nil {
		return nil, field("status", err)
	}
	config, err := ToRestCollectionConfig(i.GetConfig())
	if err != nil {
		return nil, field("config", err)
	}
	schema, err := toRestPayloadSchema(i.GetPayloadSchema())
	if err != nil {
		return nil, field("payload_schema", err)
	}
	return &rest.CollectionInfo{
		Status:              status,
		OptimizerStatus:     ToRestOptimizerStatus(i.GetOptimizerStatus()),
		IndexedVectorsCount: clonePtr(i.IndexedVectorsCount),
		PointsCount:         clonePtr(i.PointsCount),
		SegmentsCount:       i.GetSegmentsCount(),
		Config:              config,
		PayloadSchema:       schema,
	}, nil
}

// ── Create and Update ────────────────────────────────────────────────────────

func ToGrpcCreateCollection(name string, c *rest.CreateCollection) (*qdrant.CreateCollection, error) {
	if c == nil {
		return nil, missingField("create collection")
	}
	vectors, err := ToGrpcVectorsConfig(c.Vectors)
	if err != nil {
		return nil, field("vectors", err)
	}
	quantization, err := ToGrpcQuantizationConfig(c.QuantizationConfig)
	if err != nil {
		return nil, field("quantization_config", err)
	}
	return &qdrant.CreateCollection{
		CollectionName:         name,
		HnswConfig:             ToGrpcHnswConfigDiff(c.HnswConfig),
		WalConfig:              ToGrpcWalConfigDiff(c.WalConfig),
		OptimizersConfig:       ToGrpcOptimizersConfigDiff(c.OptimizersConfig),
		ShardNumber:            clonePtr(c.ShardNumber),
		OnDiskPayload:          clonePtr(c.OnDiskPayload),
		VectorsConfig:          vectors,
		ReplicationFactor:      clonePtr(c.ReplicationFactor),
		WriteConsistencyFactor: clonePtr(c.WriteConsistencyFactor),
		QuantizationConfig:     quantization,
	}, nil
}

// ToRestCreateCollection converts a create request. The collection name is
// part of the REST path, not the body, and is dropped.
func ToRestCreateCollection(c *qdrant.CreateCollection) (*rest.CreateCollection, error) {
	if c == nil {
		return nil, missingField("create collection")
	}
	vectors, err := ToRestVectorsConfig(c.GetVectorsConfig())
	if err != nil {
		return nil, field("vectors", err)
	}
	quantization, err := ToRestQuantizationConfig(c.GetQuantizationConfig())
	if err != nil {
		return nil, field("quantization_config", err)
	}
	return &rest.CreateCollection{
		Vectors:                vectors,
		ShardNumber:            clonePtr(c.ShardNumber),
		ReplicationFactor:      clonePtr(c.ReplicationFactor),
		WriteConsistencyFactor: clonePtr(c.WriteConsistencyFactor),
		OnDiskPayload:          clonePtr(c.OnDiskPayload),
		HnswConfig:             ToRestHnswConfigDiff(c.GetHnswConfig()),
		WalConfig:              ToRestWalConfigDiff(c.GetWalConfig()),
		OptimizersConfig:       ToRestOptimizersConfigDiff(c.GetOptimizersConfig()),
		QuantizationConfig:     quantization,
	}, nil
}

func ToGrpcUpdateCollection(name string, u *rest.UpdateCollection) *qdrant.UpdateCollection {
	if u == nil {
		return &qdrant.UpdateCollection{CollectionName: name}
	}
	return &qdrant.UpdateCollection{
		CollectionName:   name,
		OptimizersConfig: ToGrpcOptimizersConfigDiff(u.OptimizersConfig),
		Params:           ToGrpcCollectionParamsDiff(u.Params),
		HnswConfig:       ToGrpcHnswConfigDiff(u.HnswConfig),
	}
}

// ToRestUpdateCollection converts an update request. Vector, quantization and
// sparse vector updates have no REST counterpart here and are rejected.
func ToRestUpdateCollection(u *qdrant.UpdateCollection) (*rest.UpdateCollection, error) {
	if u == nil {
		return nil, missingField("update collection")
	}
	if u.GetVectorsConfig() != nil || u.GetQuantizationConfig() != nil || u.GetSparseVectorsConfig() != nil {
		return nil, invalidVariant("update collection", "unsupported update")
	}
	return &rest.UpdateCollection{
		OptimizersConfig: ToRestOptimizersConfigDiff(u.GetOptimizersConfig()),
		Params:           ToRestCollectionParamsDiff(u.GetParams()),
		HnswConfig:       ToRestHnswConfigDiff(u.GetHnswConfig()),
	}, nil
}
