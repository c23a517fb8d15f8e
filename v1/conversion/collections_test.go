package conversion

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

func sampleCollectionInfo() *qdrant.CollectionInfo {
	return &qdrant.CollectionInfo{
		Status:          qdrant.CollectionStatus_Green,
		OptimizerStatus: &qdrant.OptimizerStatus{Ok: true},
		SegmentsCount:   4,
		PointsCount:     lo.ToPtr(uint64(1200)),
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				ShardNumber:       2,
				OnDiskPayload:     true,
				ReplicationFactor: lo.ToPtr(uint32(1)),
				VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
					"text": {Size: 384, Distance: qdrant.Distance_Cosine},
					"image": {
						Size:     512,
						Distance: qdrant.Distance_Dot,
						Datatype: qdrant.Datatype_Float16.Enum(),
						OnDisk:   lo.ToPtr(true),
					},
				}),
			},
			HnswConfig: &qdrant.HnswConfigDiff{
				M:                  lo.ToPtr(uint64(16)),
				EfConstruct:        lo.ToPtr(uint64(100)),
				FullScanThreshold:  lo.ToPtr(uint64(10000)),
				MaxIndexingThreads: lo.ToPtr(uint64(0)),
				OnDisk:             lo.ToPtr(false),
			},
			OptimizerConfig: &qdrant.OptimizersConfigDiff{
				DeletedThreshold:      lo.ToPtr(0.2),
				VacuumMinVectorNumber: lo.ToPtr(uint64(1000)),
				DefaultSegmentNumber:  lo.ToPtr(uint64(0)),
				IndexingThreshold:     lo.ToPtr(uint64(20000)),
				FlushIntervalSec:      lo.ToPtr(uint64(5)),
				MaxOptimizationThreads: &qdrant.MaxOptimizationThreads{
					Variant: &qdrant.MaxOptimizationThreads_Value{Value: 2},
				},
			},
			WalConfig: &qdrant.WalConfigDiff{
				WalCapacityMb:    lo.ToPtr(uint64(32)),
				WalSegmentsAhead: lo.ToPtr(uint64(0)),
			},
			QuantizationConfig: &qdrant.QuantizationConfig{Quantization: &qdrant.QuantizationConfig_Scalar{
				Scalar: &qdrant.ScalarQuantization{
					Type:      qdrant.QuantizationType_Int8,
					Quantile:  lo.ToPtr(float32(0.99)),
					AlwaysRam: lo.ToPtr(true),
				},
			}},
		},
		PayloadSchema: map[string]*qdrant.PayloadSchemaInfo{
			"tenant": {
				DataType: qdrant.PayloadSchemaType_Keyword,
				Params: &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_KeywordIndexParams{
					KeywordIndexParams: &qdrant.KeywordIndexParams{IsTenant: lo.ToPtr(true)},
				}},
				Points: lo.ToPtr(uint64(1200)),
			},
			"body": {
				DataType: qdrant.PayloadSchemaType_Text,
				Params: &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_TextIndexParams{
					TextIndexParams: &qdrant.TextIndexParams{
						Tokenizer:   qdrant.TokenizerType_Word,
						Lowercase:   lo.ToPtr(true),
						MaxTokenLen: lo.ToPtr(uint64(20)),
					},
				}},
			},
			"year": {DataType: qdrant.PayloadSchemaType_Integer},
		},
	}
}

func TestCollectionInfoRoundTripFromGrpc(t *testing.T) {
	original := sampleCollectionInfo()

	info, err := ToRestCollectionInfo(original)
	require.NoError(t, err)
	assert.Equal(t, rest.CollectionStatusGreen, info.Status)
	assert.True(t, info.OptimizerStatus.OK)
	require.IsType(t, rest.VectorParamsMap{}, info.Config.Params.Vectors)
	assert.Equal(t, uint64(2), lo.FromPtr(info.Config.OptimizerConfig.MaxOptimizationThreads))

	back, err := ToGrpcCollectionInfo(info)
	require.NoError(t, err)
	assert.True(t, proto.Equal(original, back), "round trip changed the collection info:\n%v\n%v", original, back)
}

func TestOptimizersConfig_AutoThreads(t *testing.T) {
	cfg := ToRestOptimizersConfig(&qdrant.OptimizersConfigDiff{
		MaxOptimizationThreads: &qdrant.MaxOptimizationThreads{
			Variant: &qdrant.MaxOptimizationThreads_Setting_{Setting: qdrant.MaxOptimizationThreads_Auto},
		},
	})
	assert.Nil(t, cfg.MaxOptimizationThreads)
	assert.Nil(t, ToGrpcOptimizersConfig(cfg).MaxOptimizationThreads)
}

func TestQuantizationConfig(t *testing.T) {
	product := &rest.ProductQuantization{Product: rest.ProductQuantizationConfig{
		Compression: rest.CompressionX16,
		AlwaysRAM:   lo.ToPtr(false),
	}}
	q, err := ToGrpcQuantizationConfig(product)
	require.NoError(t, err)
	assert.Equal(t, qdrant.CompressionRatio_x16, q.GetProduct().GetCompression())

	back, err := ToRestQuantizationConfig(q)
	require.NoError(t, err)
	assert.Equal(t, product, back)

	q, err = ToGrpcQuantizationConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, q)

	_, err = ToRestQuantizationConfig(&qdrant.QuantizationConfig{})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestVectorParams_Multivector(t *testing.T) {
	_, err := ToRestVectorParams(&qdrant.VectorParams{
		Size:              8,
		Distance:          qdrant.Distance_Cosine,
		MultivectorConfig: &qdrant.MultiVectorConfig{Comparator: qdrant.MultiVectorComparator_MaxSim},
	})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestCreateCollectionRoundTripFromRest(t *testing.T) {
	original := &rest.CreateCollection{
		Vectors:           &rest.VectorParams{Size: 3, Distance: rest.DistanceEuclid},
		ShardNumber:       lo.ToPtr(uint32(1)),
		OnDiskPayload:     lo.ToPtr(true),
		HnswConfig:        &rest.HnswConfigDiff{M: lo.ToPtr(uint64(32))},
		WalConfig:         &rest.WalConfigDiff{WalCapacityMb: lo.ToPtr(uint64(64))},
		OptimizersConfig:  &rest.OptimizersConfigDiff{IndexingThreshold: lo.ToPtr(uint64(0))},
		ReplicationFactor: lo.ToPtr(uint32(2)),
		QuantizationConfig: &rest.BinaryQuantization{
			Binary: rest.BinaryQuantizationConfig{AlwaysRAM: lo.ToPtr(true)},
		},
	}

	create, err := ToGrpcCreateCollection("docs", original)
	require.NoError(t, err)
	assert.Equal(t, "docs", create.GetCollectionName())

	back, err := ToRestCreateCollection(create)
	require.NoError(t, err)
	assert.Equal(t, original, back)
}

func TestUpdateCollection(t *testing.T) {
	update := ToGrpcUpdateCollection("docs", &rest.UpdateCollection{
		Params: &rest.CollectionParamsDiff{ReplicationFactor: lo.ToPtr(uint32(3))},
	})
	assert.Equal(t, "docs", update.GetCollectionName())
	assert.Equal(t, uint32(3), update.GetParams().GetReplicationFactor())

	_, err := ToRestUpdateCollection(&qdrant.UpdateCollection{
		CollectionName:     "docs",
		QuantizationConfig: &qdrant.QuantizationConfigDiff{},
	})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestCreateFieldIndex(t *testing.T) {
	req, err := ToGrpcCreateFieldIndex("docs", &rest.CreateFieldIndex{
		FieldName:   "year",
		FieldSchema: rest.PayloadSchemaInteger,
	})
	require.NoError(t, err)
	assert.Equal(t, qdrant.FieldType_FieldTypeInteger, req.GetFieldType())
	assert.Nil(t, req.GetFieldIndexParams())

	params := &rest.PayloadIndexParams{
		Type:      rest.PayloadSchemaText,
		Tokenizer: lo.ToPtr(rest.TokenizerMultilingual),
		Lowercase: lo.ToPtr(false),
	}
	req, err = ToGrpcCreateFieldIndex("docs", &rest.CreateFieldIndex{FieldName: "body", FieldSchema: params})
	require.NoError(t, err)
	assert.Equal(t, qdrant.FieldType_FieldTypeText, req.GetFieldType())
	assert.Equal(t, qdrant.TokenizerType_Multilingual, req.GetFieldIndexParams().GetTextIndexParams().GetTokenizer())

	back, err := ToRestCreateFieldIndex(req)
	require.NoError(t, err)
	assert.Equal(t, &rest.CreateFieldIndex{FieldName: "body", FieldSchema: params}, back)
}

func TestAliasOperations(t *testing.T) {
	ops := &rest.ChangeAliasesOperation{Actions: []rest.AliasOperation{
		&rest.CreateAliasOperation{CreateAlias: rest.CreateAlias{CollectionName: "docs_v2", AliasName: "docs"}},
		&rest.RenameAliasOperation{RenameAlias: rest.RenameAlias{OldAliasName: "docs", NewAliasName: "docs_live"}},
		&rest.DeleteAliasOperation{DeleteAlias: rest.DeleteAlias{AliasName: "docs_old"}},
	}}

	grpcOps, err := ToGrpcAliasOperations(ops)
	require.NoError(t, err)
	require.Len(t, grpcOps, 3)
	assert.Equal(t, "docs_v2", grpcOps[0].GetCreateAlias().GetCollectionName())

	back, err := ToRestAliasOperations(grpcOps)
	require.NoError(t, err)
	assert.Equal(t, ops, back)

	_, err = ToRestAliasOperation(&qdrant.AliasOperations{})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestNilOneofMessagesAreRejected(t *testing.T) {
	tests := map[string]func() error{
		"create alias": func() error {
			_, err := ToRestAliasOperation(&qdrant.AliasOperations{Action: &qdrant.AliasOperations_CreateAlias{}})
			return err
		},
		"delete alias": func() error {
			_, err := ToRestAliasOperation(&qdrant.AliasOperations{Action: &qdrant.AliasOperations_DeleteAlias{}})
			return err
		},
		"rename alias": func() error {
			_, err := ToRestAliasOperation(&qdrant.AliasOperations{Action: &qdrant.AliasOperations_RenameAlias{}})
			return err
		},
		"scalar quantization": func() error {
			_, err := ToRestQuantizationConfig(&qdrant.QuantizationConfig{Quantization: &qdrant.QuantizationConfig_Scalar{}})
			return err
		},
		"binary quantization": func() error {
			_, err := ToRestQuantizationConfig(&qdrant.QuantizationConfig{Quantization: &qdrant.QuantizationConfig_Binary{}})
			return err
		},
		"vector params map": func() error {
			_, err := ToRestVectorsConfig(&qdrant.VectorsConfig{Config: &qdrant.VectorsConfig_ParamsMap{}})
			return err
		},
		"keyword index params": func() error {
			_, err := ToRestPayloadIndexParams(&qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_KeywordIndexParams{}})
			return err
		},
		"text index params": func() error {
			_, err := ToRestPayloadIndexParams(&qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_TextIndexParams{}})
			return err
		},
		"point id list": func() error {
			_, err := ToRestPointsSelector(&qdrant.PointsSelector{PointsSelectorOneOf: &qdrant.PointsSelector_Points{}})
			return err
		},
		"named vectors": func() error {
			_, err := ToRestVectors(&qdrant.Vectors{VectorsOptions: &qdrant.Vectors_Vectors{}})
			return err
		},
		"struct value": func() error {
			_, err := ToRestValue(&qdrant.Value{Kind: &qdrant.Value_StructValue{}})
			return err
		},
		"list value": func() error {
			_, err := ToRestValue(&qdrant.Value{Kind: &qdrant.Value_ListValue{}})
			return err
		},
	}
	for name, convert := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, convert(), ErrInvalidVariant)
		})
	}
}
