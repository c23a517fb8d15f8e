package rest

import (
	"encoding/json"
	"fmt"
)

// CollectionDescription is one entry of the collection listing.
type CollectionDescription struct {
	Name string `json:"name"`
}

// CollectionsResponse is the result of listing collections.
type CollectionsResponse struct {
	Collections []CollectionDescription `json:"collections"`
}

// CollectionInfo describes a collection: its status, configuration,
// indexed payload fields and point counts.
type CollectionInfo struct {
	Status              CollectionStatus             `json:"status"`
	OptimizerStatus     OptimizersStatus             `json:"optimizer_status"`
	IndexedVectorsCount *uint64                      `json:"indexed_vectors_count,omitempty"`
	PointsCount         *uint64                      `json:"points_count,omitempty"`
	SegmentsCount       uint64                       `json:"segments_count"`
	Config              *CollectionConfig            `json:"config,omitempty"`
	PayloadSchema       map[string]*PayloadIndexInfo `json:"payload_schema,omitempty"`
}

// OptimizersStatus is encoded as the string "ok" or as {"error": "..."}.
type OptimizersStatus struct {
	OK    bool
	Error string
}

func (s OptimizersStatus) MarshalJSON() ([]byte, error) {
	if s.OK {
		return json.Marshal("ok")
	}
	return json.Marshal(map[string]string{"error": s.Error})
}

func (s *OptimizersStatus) UnmarshalJSON(data []byte) error {
	if firstByte(data) == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str != "ok" {
			return unknownVariant("optimizer status", data)
		}
		*s = OptimizersStatus{OK: true}
		return nil
	}
	var aux struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Error == nil {
		return unknownVariant("optimizer status", data)
	}
	*s = OptimizersStatus{Error: *aux.Error}
	return nil
}

// CollectionConfig is the full configuration of a collection.
type CollectionConfig struct {
	Params             *CollectionParams  `json:"params,omitempty"`
	HnswConfig         *HnswConfig        `json:"hnsw_config,omitempty"`
	OptimizerConfig    *OptimizersConfig  `json:"optimizer_config,omitempty"`
	WalConfig          *WalConfig         `json:"wal_config,omitempty"`
	QuantizationConfig QuantizationConfig `json:"quantization_config,omitempty"`
}

func (c *CollectionConfig) UnmarshalJSON(data []byte) error {
	type plain CollectionConfig
	aux := struct {
		QuantizationConfig json.RawMessage `json:"quantization_config"`
		*plain
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	q, err := decodeOptionalQuantization(aux.QuantizationConfig)
	if err != nil {
		return err
	}
	c.QuantizationConfig = q
	return nil
}

// CollectionParams holds the storage parameters of a collection.
type CollectionParams struct {
	Vectors                VectorsConfig `json:"vectors,omitempty"`
	ShardNumber            *uint32       `json:"shard_number,omitempty"`
	ReplicationFactor      *uint32       `json:"replication_factor,omitempty"`
	WriteConsistencyFactor *uint32       `json:"write_consistency_factor,omitempty"`
	OnDiskPayload          *bool         `json:"on_disk_payload,omitempty"`
}

func (p *CollectionParams) UnmarshalJSON(data []byte) error {
	type plain CollectionParams
	aux := struct {
		Vectors json.RawMessage `json:"vectors"`
		*plain
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v, err := decodeOptionalVectorsConfig(aux.Vectors)
	if err != nil {
		return err
	}
	p.Vectors = v
	return nil
}

// CollectionParamsDiff carries the updatable collection parameters.
type CollectionParamsDiff struct {
	ReplicationFactor      *uint32 `json:"replication_factor,omitempty"`
	WriteConsistencyFactor *uint32 `json:"write_consistency_factor,omitempty"`
	OnDiskPayload          *bool   `json:"on_disk_payload,omitempty"`
}

// ── Vectors ──────────────────────────────────────────────────────────────────

// VectorsConfig is either a single unnamed *VectorParams or a VectorParamsMap
// of named vectors.
type VectorsConfig interface {
	isVectorsConfig()
}

type VectorParams struct {
	Size               uint64             `json:"size"`
	Distance           Distance           `json:"distance"`
	HnswConfig         *HnswConfigDiff    `json:"hnsw_config,omitempty"`
	QuantizationConfig QuantizationConfig `json:"quantization_config,omitempty"`
	OnDisk             *bool              `json:"on_disk,omitempty"`
	Datatype           *Datatype          `json:"datatype,omitempty"`
}

// VectorParamsMap configures named vectors.
type VectorParamsMap map[string]*VectorParams

func (*VectorParams) isVectorsConfig()   {}
func (VectorParamsMap) isVectorsConfig() {}

func (p *VectorParams) UnmarshalJSON(data []byte) error {
	type plain VectorParams
	aux := struct {
		QuantizationConfig json.RawMessage `json:"quantization_config"`
		*plain
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	q, err := decodeOptionalQuantization(aux.QuantizationConfig)
	if err != nil {
		return err
	}
	p.QuantizationConfig = q
	return nil
}

// DecodeVectorsConfig parses either a single vector config (an object with a
// "size" key) or a map of named vector configs.
func DecodeVectorsConfig(data []byte) (VectorsConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if hasKey(fields, "size") {
		var p VectorParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return &p, nil
	}
	m := make(VectorParamsMap, len(fields))
	for name, raw := range fields {
		var p VectorParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("vector %q: %w", name, err)
		}
		m[name] = &p
	}
	return m, nil
}

func decodeOptionalVectorsConfig(raw json.RawMessage) (VectorsConfig, error) {
	if isNull(raw) {
		return nil, nil
	}
	return DecodeVectorsConfig(raw)
}

// ── Index and Storage Tuning ─────────────────────────────────────────────────

// HnswConfig is the HNSW index configuration as reported for a collection.
type HnswConfig struct {
	M                  uint64  `json:"m"`
	EfConstruct        uint64  `json:"ef_construct"`
	FullScanThreshold  uint64  `json:"full_scan_threshold"`
	MaxIndexingThreads uint64  `json:"max_indexing_threads"`
	OnDisk             *bool   `json:"on_disk,omitempty"`
	PayloadM           *uint64 `json:"payload_m,omitempty"`
	InlineStorage      *bool   `json:"inline_storage,omitempty"`
}

// HnswConfigDiff is a partial HNSW configuration; unset fields keep their
// current or default value.
type HnswConfigDiff struct {
	M                  *uint64 `json:"m,omitempty"`
	EfConstruct        *uint64 `json:"ef_construct,omitempty"`
	FullScanThreshold  *uint64 `json:"full_scan_threshold,omitempty"`
	MaxIndexingThreads *uint64 `json:"max_indexing_threads,omitempty"`
	OnDisk             *bool   `json:"on_disk,omitempty"`
	PayloadM           *uint64 `json:"payload_m,omitempty"`
	InlineStorage      *bool   `json:"inline_storage,omitempty"`
}

type OptimizersConfig struct {
	DeletedThreshold       float64 `json:"deleted_threshold"`
	VacuumMinVectorNumber  uint64  `json:"vacuum_min_vector_number"`
	DefaultSegmentNumber   uint64  `json:"default_segment_number"`
	MaxSegmentSize         *uint64 `json:"max_segment_size,omitempty"`
	MemmapThreshold        *uint64 `json:"memmap_threshold,omitempty"`
	IndexingThreshold      *uint64 `json:"indexing_threshold,omitempty"`
	FlushIntervalSec       uint64  `json:"flush_interval_sec"`
	MaxOptimizationThreads *uint64 `json:"max_optimization_threads,omitempty"`
}

type OptimizersConfigDiff struct {
	DeletedThreshold       *float64 `json:"deleted_threshold,omitempty"`
	VacuumMinVectorNumber  *uint64  `json:"vacuum_min_vector_number,omitempty"`
	DefaultSegmentNumber   *uint64  `json:"default_segment_number,omitempty"`
	MaxSegmentSize         *uint64  `json:"max_segment_size,omitempty"`
	MemmapThreshold        *uint64  `json:"memmap_threshold,omitempty"`
	IndexingThreshold      *uint64  `json:"indexing_threshold,omitempty"`
	FlushIntervalSec       *uint64  `json:"flush_interval_sec,omitempty"`
	MaxOptimizationThreads *uint64  `json:"max_optimization_threads,omitempty"`
}

type WalConfig struct {
	WalCapacityMb    uint64  `json:"wal_capacity_mb"`
	WalSegmentsAhead uint64  `json:"wal_segments_ahead"`
	WalRetainClosed  *uint64 `json:"wal_retain_closed,omitempty"`
}

type WalConfigDiff struct {
	WalCapacityMb    *uint64 `json:"wal_capacity_mb,omitempty"`
	WalSegmentsAhead *uint64 `json:"wal_segments_ahead,omitempty"`
	WalRetainClosed  *uint64 `json:"wal_retain_closed,omitempty"`
}

// ── Quantization ─────────────────────────────────────────────────────────────

// QuantizationConfig is one of *ScalarQuantization, *ProductQuantization or
// *BinaryQuantization.
type QuantizationConfig interface {
	isQuantizationConfig()
}

type ScalarQuantization struct {
	Scalar ScalarQuantizationConfig `json:"scalar"`
}

type ScalarQuantizationConfig struct {
	Type      ScalarType `json:"type"`
	Quantile  *float32   `json:"quantile,omitempty"`
	AlwaysRAM *bool      `json:"always_ram,omitempty"`
}

type ProductQuantization struct {
	Product ProductQuantizationConfig `json:"product"`
}

type ProductQuantizationConfig struct {
	Compression CompressionRatio `json:"compression"`
	AlwaysRAM   *bool            `json:"always_ram,omitempty"`
}

type BinaryQuantization struct {
	Binary BinaryQuantizationConfig `json:"binary"`
}

type BinaryQuantizationConfig struct {
	AlwaysRAM *bool `json:"always_ram,omitempty"`
}

func (*ScalarQuantization) isQuantizationConfig()  {}
func (*ProductQuantization) isQuantizationConfig() {}
func (*BinaryQuantization) isQuantizationConfig()  {}

// DecodeQuantizationConfig parses a quantization config by its single key.
func DecodeQuantizationConfig(data []byte) (QuantizationConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if countKeys(fields, "scalar", "product", "binary") != 1 {
		return nil, unknownVariant("quantization config", data)
	}

	var q QuantizationConfig
	switch {
	case hasKey(fields, "scalar"):
		q = &ScalarQuantization{}
	case hasKey(fields, "product"):
		q = &ProductQuantization{}
	default:
		q = &BinaryQuantization{}
	}
	if err := json.Unmarshal(data, q); err != nil {
		return nil, err
	}
	return q, nil
}

func decodeOptionalQuantization(raw json.RawMessage) (QuantizationConfig, error) {
	if isNull(raw) {
		return nil, nil
	}
	q, err := DecodeQuantizationConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("quantization_config: %w", err)
	}
	return q, nil
}

// ── Payload Schema ───────────────────────────────────────────────────────────

// PayloadIndexInfo describes an indexed payload field.
type PayloadIndexInfo struct {
	DataType PayloadSchemaType   `json:"data_type"`
	Params   *PayloadIndexParams `json:"params,omitempty"`
	Points   *uint64             `json:"points,omitempty"`
}

// PayloadFieldSchema is what a payload index is created from: either a bare
// PayloadSchemaType or *PayloadIndexParams.
type PayloadFieldSchema interface {
	isPayloadFieldSchema()
}

func (PayloadSchemaType) isPayloadFieldSchema()   {}
func (*PayloadIndexParams) isPayloadFieldSchema() {}

// PayloadIndexParams are the index parameters of one payload field. Type
// selects the index kind; only the options valid for that kind are used.
type PayloadIndexParams struct {
	Type        PayloadSchemaType `json:"type"`
	IsTenant    *bool             `json:"is_tenant,omitempty"`
	IsPrincipal *bool             `json:"is_principal,omitempty"`
	Lookup      *bool             `json:"lookup,omitempty"`
	Range       *bool             `json:"range,omitempty"`
	OnDisk      *bool             `json:"on_disk,omitempty"`

	// text only
	Tokenizer   *TokenizerType `json:"tokenizer,omitempty"`
	MinTokenLen *uint64        `json:"min_token_len,omitempty"`
	MaxTokenLen *uint64        `json:"max_token_len,omitempty"`
	Lowercase   *bool          `json:"lowercase,omitempty"`
}

// DecodePayloadFieldSchema parses a JSON string into a PayloadSchemaType or a
// JSON object into *PayloadIndexParams.
func DecodePayloadFieldSchema(data []byte) (PayloadFieldSchema, error) {
	switch firstByte(data) {
	case '"':
		var t PayloadSchemaType
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil
	case '{':
		var p PayloadIndexParams
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return &p, nil
	default:
		return nil, unknownVariant("payload field schema", data)
	}
}

// CreateFieldIndex is the body of a payload index creation request.
type CreateFieldIndex struct {
	FieldName   string             `json:"field_name"`
	FieldSchema PayloadFieldSchema `json:"field_schema,omitempty"`
}

func (c *CreateFieldIndex) UnmarshalJSON(data []byte) error {
	var aux struct {
		FieldName   string          `json:"field_name"`
		FieldSchema json.RawMessage `json:"field_schema"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.FieldName = aux.FieldName
	c.FieldSchema = nil
	if isNull(aux.FieldSchema) {
		return nil
	}
	s, err := DecodePayloadFieldSchema(aux.FieldSchema)
	if err != nil {
		return fmt.Errorf("field_schema: %w", err)
	}
	c.FieldSchema = s
	return nil
}

// ── Create and Update ────────────────────────────────────────────────────────

// CreateCollection is the body of a collection creation request.
type CreateCollection struct {
	Vectors                VectorsConfig         `json:"vectors,omitempty"`
	ShardNumber            *uint32               `json:"shard_number,omitempty"`
	ReplicationFactor      *uint32               `json:"replication_factor,omitempty"`
	WriteConsistencyFactor *uint32               `json:"write_consistency_factor,omitempty"`
	OnDiskPayload          *bool                 `json:"on_disk_payload,omitempty"`
	HnswConfig             *HnswConfigDiff       `json:"hnsw_config,omitempty"`
	WalConfig              *WalConfigDiff        `json:"wal_config,omitempty"`
	OptimizersConfig       *OptimizersConfigDiff `json:"optimizers_config,omitempty"`
	QuantizationConfig     QuantizationConfig    `json:"quantization_config,omitempty"`
}

func (c *CreateCollection) UnmarshalJSON(data []byte) error {
	type plain CreateCollection
	aux := struct {
		Vectors            json.RawMessage `json:"vectors"`
		QuantizationConfig json.RawMessage `json:"quantization_config"`
		*plain
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v, err := decodeOptionalVectorsConfig(aux.Vectors)
	if err != nil {
		return fmt.Errorf("vectors: %w", err)
	}
	q, err := decodeOptionalQuantization(aux.QuantizationConfig)
	if err != nil {
		return err
	}
	c.Vectors = v
	c.QuantizationConfig = q
	return nil
}

// UpdateCollection is the body of a collection update request.
type UpdateCollection struct {
	OptimizersConfig *OptimizersConfigDiff `json:"optimizers_config,omitempty"`
	Params           *CollectionParamsDiff `json:"params,omitempty"`
	HnswConfig       *HnswConfigDiff       `json:"hnsw_config,omitempty"`
}
