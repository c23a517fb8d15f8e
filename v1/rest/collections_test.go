package rest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionInfo_UnmarshalJSON(t *testing.T) {
	raw := `{
		"status": "green",
		"optimizer_status": "ok",
		"segments_count": 2,
		"points_count": 100,
		"config": {
			"params": {
				"vectors": {"size": 4, "distance": "Cosine"},
				"shard_number": 1,
				"on_disk_payload": true
			},
			"hnsw_config": {"m": 16, "ef_construct": 100, "full_scan_threshold": 10000, "max_indexing_threads": 0},
			"optimizer_config": {"deleted_threshold": 0.2, "vacuum_min_vector_number": 1000, "default_segment_number": 0, "flush_interval_sec": 5},
			"wal_config": {"wal_capacity_mb": 32, "wal_segments_ahead": 0},
			"quantization_config": {"scalar": {"type": "int8", "always_ram": true}}
		},
		"payload_schema": {
			"city": {"data_type": "keyword", "points": 100},
			"body": {"data_type": "text", "params": {"type": "text", "tokenizer": "word"}}
		}
	}`

	var info CollectionInfo
	require.NoError(t, json.Unmarshal([]byte(raw), &info))

	assert.Equal(t, CollectionStatusGreen, info.Status)
	assert.True(t, info.OptimizerStatus.OK)
	require.NotNil(t, info.Config)

	params, ok := info.Config.Params.Vectors.(*VectorParams)
	require.True(t, ok)
	assert.Equal(t, uint64(4), params.Size)
	assert.Equal(t, DistanceCosine, params.Distance)

	scalar, ok := info.Config.QuantizationConfig.(*ScalarQuantization)
	require.True(t, ok)
	assert.Equal(t, ScalarTypeInt8, scalar.Scalar.Type)

	require.Contains(t, info.PayloadSchema, "body")
	assert.Equal(t, TokenizerWord, *info.PayloadSchema["body"].Params.Tokenizer)
}

func TestOptimizersStatus(t *testing.T) {
	var s OptimizersStatus
	require.NoError(t, json.Unmarshal([]byte(`{"error": "disk full"}`), &s))
	assert.Equal(t, OptimizersStatus{Error: "disk full"}, s)

	data, err := json.Marshal(OptimizersStatus{OK: true})
	require.NoError(t, err)
	assert.JSONEq(t, `"ok"`, string(data))

	assert.ErrorIs(t, json.Unmarshal([]byte(`"broken"`), &s), ErrUnknownVariant)
}

func TestDecodeVectorsConfig_Named(t *testing.T) {
	v, err := DecodeVectorsConfig([]byte(`{"image": {"size": 512, "distance": "Dot", "datatype": "float16"}}`))
	require.NoError(t, err)
	named, ok := v.(VectorParamsMap)
	require.True(t, ok)
	assert.Equal(t, DatatypeFloat16, *named["image"].Datatype)
}

func TestCreateFieldIndex_UnmarshalJSON(t *testing.T) {
	var c CreateFieldIndex
	require.NoError(t, json.Unmarshal([]byte(`{"field_name": "year", "field_schema": "integer"}`), &c))
	assert.Equal(t, PayloadSchemaInteger, c.FieldSchema)

	require.NoError(t, json.Unmarshal([]byte(`{"field_name": "tenant", "field_schema": {"type": "keyword", "is_tenant": true}}`), &c))
	params, ok := c.FieldSchema.(*PayloadIndexParams)
	require.True(t, ok)
	assert.Equal(t, PayloadSchemaKeyword, params.Type)
	assert.True(t, *params.IsTenant)
}

func TestDecodeQuantizationConfig_Ambiguous(t *testing.T) {
	_, err := DecodeQuantizationConfig([]byte(`{"scalar": {"type": "int8"}, "binary": {}}`))
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestChangeAliasesOperation_UnmarshalJSON(t *testing.T) {
	raw := `{"actions": [
		{"create_alias": {"collection_name": "docs_v2", "alias_name": "docs"}},
		{"delete_alias": {"alias_name": "old"}},
		{"rename_alias": {"old_alias_name": "a", "new_alias_name": "b"}}
	]}`

	var ops ChangeAliasesOperation
	require.NoError(t, json.Unmarshal([]byte(raw), &ops))
	assert.Equal(t, []AliasOperation{
		&CreateAliasOperation{CreateAlias: CreateAlias{CollectionName: "docs_v2", AliasName: "docs"}},
		&DeleteAliasOperation{DeleteAlias: DeleteAlias{AliasName: "old"}},
		&RenameAliasOperation{RenameAlias: RenameAlias{OldAliasName: "a", NewAliasName: "b"}},
	}, ops.Actions)

	err := json.Unmarshal([]byte(`{"actions": [{"unknown": {}}]}`), &ops)
	assert.ErrorIs(t, err, ErrUnknownVariant)
}
