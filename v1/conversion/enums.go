package conversion

import (
	"github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// enumTable is a one-to-one mapping between a REST enum and a gRPC enum.
// Both directions are derived from the same pairs.
type enumTable[R comparable, G comparable] struct {
	name   string
	toGrpc map[R]G
	toRest map[G]R
}

func newEnumTable[R comparable, G comparable](name string, pairs map[R]G) enumTable[R, G] {
	t := enumTable[R, G]{
		name:   name,
		toGrpc: pairs,
		toRest: make(map[G]R, len(pairs)),
	}
	for r, g := range pairs {
		t.toRest[g] = r
	}
	return t
}

func (t enumTable[R, G]) grpc(v R) (G, error) {
	g, ok := t.toGrpc[v]
	if !ok {
		var zero G
		return zero, unsupportedEnum(t.name, v)
	}
	return g, nil
}

func (t enumTable[R, G]) rest(v G) (R, error) {
	r, ok := t.toRest[v]
	if !ok {
		var zero R
		return zero, unsupportedEnum(t.name, v)
	}
	return r, nil
}

var (
	distances = newEnumTable("distance", map[rest.Distance]qdrant.Distance{
		rest.DistanceCosine:    qdrant.Distance_Cosine,
		rest.DistanceEuclid:    qdrant.Distance_Euclid,
		rest.DistanceDot:       qdrant.Distance_Dot,
		rest.DistanceManhattan: qdrant.Distance_Manhattan,
	})

	collectionStatuses = newEnumTable("collection status", map[rest.CollectionStatus]qdrant.CollectionStatus{
		rest.CollectionStatusGreen:  qdrant.CollectionStatus_Green,
		rest.CollectionStatusYellow: qdrant.CollectionStatus_Yellow,
		rest.CollectionStatusRed:    qdrant.CollectionStatus_Red,
		rest.CollectionStatusGrey:   qdrant.CollectionStatus_Grey,
	})

	updateStatuses = newEnumTable("update status", map[rest.UpdateStatus]qdrant.UpdateStatus{
		rest.UpdateStatusAcknowledged:  qdrant.UpdateStatus_Acknowledged,
		rest.UpdateStatusCompleted:     qdrant.UpdateStatus_Completed,
		rest.UpdateStatusClockRejected: qdrant.UpdateStatus_ClockRejected,
	})

	payloadSchemaTypes = newEnumTable("payload schema type", map[rest.PayloadSchemaType]qdrant.PayloadSchemaType{
		rest.PayloadSchemaKeyword:  qdrant.PayloadSchemaType_Keyword,
		rest.PayloadSchemaInteger:  qdrant.PayloadSchemaType_Integer,
		rest.PayloadSchemaFloat:    qdrant.PayloadSchemaType_Float,
		rest.PayloadSchemaGeo:      qdrant.PayloadSchemaType_Geo,
		rest.PayloadSchemaText:     qdrant.PayloadSchemaType_Text,
		rest.PayloadSchemaBool:     qdrant.PayloadSchemaType_Bool,
		rest.PayloadSchemaDatetime: qdrant.PayloadSchemaType_Datetime,
		rest.PayloadSchemaUUID:     qdrant.PayloadSchemaType_Uuid,
	})

	// fieldTypes maps schema types to the field type used when creating an index.
	fieldTypes = newEnumTable("field type", map[rest.PayloadSchemaType]qdrant.FieldType{
		rest.PayloadSchemaKeyword:  qdrant.FieldType_FieldTypeKeyword,
		rest.PayloadSchemaInteger:  qdrant.FieldType_FieldTypeInteger,
		rest.PayloadSchemaFloat:    qdrant.FieldType_FieldTypeFloat,
		rest.PayloadSchemaGeo:      qdrant.FieldType_FieldTypeGeo,
		rest.PayloadSchemaText:     qdrant.FieldType_FieldTypeText,
		rest.PayloadSchemaBool:     qdrant.FieldType_FieldTypeBool,
		rest.PayloadSchemaDatetime: qdrant.FieldType_FieldTypeDatetime,
		rest.PayloadSchemaUUID:     qdrant.FieldType_FieldTypeUuid,
	})

	tokenizers = newEnumTable("tokenizer", map[rest.TokenizerType]qdrant.TokenizerType{
		rest.TokenizerPrefix:       qdrant.TokenizerType_Prefix,
		rest.TokenizerWhitespace:   qdrant.TokenizerType_Whitespace,
		rest.TokenizerWord:         qdrant.TokenizerType_Word,
		rest.TokenizerMultilingual: qdrant.TokenizerType_Multilingual,
	})

	datatypes = newEnumTable("datatype", map[rest.Datatype]qdrant.Datatype{
		rest.DatatypeFloat32: qdrant.Datatype_Float32,
		rest.DatatypeUint8:   qdrant.Datatype_Uint8,
		rest.DatatypeFloat16: qdrant.Datatype_Float16,
	})

	scalarTypes = newEnumTable("scalar type", map[rest.ScalarType]qdrant.QuantizationType{
		rest.ScalarTypeInt8: qdrant.QuantizationType_Int8,
	})

	compressionRatios = newEnumTable("compression ratio", map[rest.CompressionRatio]qdrant.CompressionRatio{
		rest.CompressionX4:  qdrant.CompressionRatio_x4,
		rest.CompressionX8:  qdrant.CompressionRatio_x8,
		rest.CompressionX16: qdrant.CompressionRatio_x16,
		rest.CompressionX32: qdrant.CompressionRatio_x32,
		rest.CompressionX64: qdrant.CompressionRatio_x64,
	})
)

func ToGrpcDistance(d rest.Distance) (qdrant.Distance, error) { return distances.grpc(d) }

func ToRestDistance(d qdrant.Distance) (rest.Distance, error) { return distances.rest(d) }

func ToGrpcCollectionStatus(s rest.CollectionStatus) (qdrant.CollectionStatus, error) {
	return collectionStatuses.grpc(s)
}

func ToRestCollectionStatus(s qdrant.CollectionStatus) (rest.CollectionStatus, error) {
	return collectionStatuses.rest(s)
}

func ToGrpcUpdateStatus(s rest.UpdateStatus) (qdrant.UpdateStatus, error) {
	return updateStatuses.grpc(s)
}

func ToRestUpdateStatus(s qdrant.UpdateStatus) (rest.UpdateStatus, error) {
	return updateStatuses.rest(s)
}

func ToGrpcPayloadSchemaType(t rest.PayloadSchemaType) (qdrant.PayloadSchemaType, error) {
	return payloadSchemaTypes.grpc(t)
}

func ToRestPayloadSchemaType(t qdrant.PayloadSchemaType) (rest.PayloadSchemaType, error) {
	return payloadSchemaTypes.rest(t)
}

// ToGrpcFieldType returns the field type an index of schema type t is created with.
func ToGrpcFieldType(t rest.PayloadSchemaType) (qdrant.FieldType, error) {
	return fieldTypes.grpc(t)
}

// ToRestFieldType is the inverse of ToGrpcFieldType.
func ToRestFieldType(t qdrant.FieldType) (rest.PayloadSchemaType, error) {
	return fieldTypes.rest(t)
}
