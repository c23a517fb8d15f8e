package conversion

import (
	"github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// ToGrpcPayloadIndexParams converts index params, picking the gRPC variant
// from p.Type. Options that do not apply to that kind are ignored.
func ToGrpcPayloadIndexParams(p *rest.PayloadIndexParams) (*qdrant.PayloadIndexParams, error) {
	if p == nil {
		return nil, nil
	}
	switch p.Type {
	case rest.PayloadSchemaKeyword:
		return &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_KeywordIndexParams{
			KeywordIndexParams: &qdrant.KeywordIndexParams{IsTenant: clonePtr(p.IsTenant), OnDisk: clonePtr(p.OnDisk)},
		}}, nil
	case rest.PayloadSchemaInteger:
		return &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_IntegerIndexParams{
			IntegerIndexParams: &qdrant.IntegerIndexParams{
				Lookup:      clonePtr(p.Lookup),
				Range:       clonePtr(p.Range),
				IsPrincipal: clonePtr(p.IsPrincipal),
				OnDisk:      clonePtr(p.OnDisk),
			},
		}}, nil
	case rest.PayloadSchemaFloat:
		return &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_FloatIndexParams{
			FloatIndexParams: &qdrant.FloatIndexParams{OnDisk: clonePtr(p.OnDisk), IsPrincipal: clonePtr(p.IsPrincipal)},
		}}, nil
	case rest.PayloadSchemaGeo:
		return &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_GeoIndexParams{
			GeoIndexParams: &qdrant.GeoIndexParams{OnDisk: clonePtr(p.OnDisk)},
		}}, nil
	case rest.PayloadSchemaText:
		text := &qdrant.TextIndexParams{
			Lowercase:   clonePtr(p.Lowercase),
			MinTokenLen: clonePtr(p.MinTokenLen),
			MaxTokenLen: clonePtr(p.MaxTokenLen),
			OnDisk:      clonePtr(p.OnDisk),
		}
		if p.Tokenizer != nil {
			t, err := tokenizers.grpc(*p.Tokenizer)
			if err != nil {
				return nil, field("tokenizer", err)
			}
			text.Tokenizer = t
		}
		return &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_TextIndexParams{
			TextIndexParams: text,
		}}, nil
	case rest.PayloadSchemaBool:
		return &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_BoolIndexParams{
			BoolIndexParams: &qdrant.BoolIndexParams{OnDisk: clonePtr(p.OnDisk)},
		}}, nil
	case rest.PayloadSchemaDatetime:
		return &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_DatetimeIndexParams{
			DatetimeIndexParams: &qdrant.DatetimeIndexParams{OnDisk: clonePtr(p.OnDisk), IsPrincipal: clonePtr(p.IsPrincipal)},
		}}, nil
	case rest.PayloadSchemaUUID:
		return &qdrant.PayloadIndexParams{IndexParams: &qdrant.PayloadIndexParams_UuidIndexParams{
			UuidIndexParams: &qdrant.UuidIndexParams{IsTenant: clonePtr(p.IsTenant), OnDisk: clonePtr(p.OnDisk)},
		}}, nil
	}
	return nil, invalidVariant("payload index params", p.Type)
}

// ToRestPayloadIndexParams converts index params. Text index options newer
// than the REST model (stopwords, stemming, phrase matching) are dropped.
func ToRestPayloadIndexParams(p *qdrant.PayloadIndexParams) (*rest.PayloadIndexParams, error) {
	if p == nil {
		return nil, nil
	}
	switch v := p.GetIndexParams().(type) {
	case *qdrant.PayloadIndexParams_KeywordIndexParams:
		if v.KeywordIndexParams == nil {
			break
		}
		return &rest.PayloadIndexParams{
			Type:     rest.PayloadSchemaKeyword,
			IsTenant: clonePtr(v.KeywordIndexParams.IsTenant),
			OnDisk:   clonePtr(v.KeywordIndexParams.OnDisk),
		}, nil
	case *qdrant.PayloadIndexParams_IntegerIndexParams:
		if v.IntegerIndexParams == nil {
			break
		}
		return &rest.PayloadIndexParams{
			Type:        rest.PayloadSchemaInteger,
			Lookup:      clonePtr(v.IntegerIndexParams.Lookup),
			Range:       clonePtr(v.IntegerIndexParams.Range),
			IsPrincipal: clonePtr(v.IntegerIndexParams.IsPrincipal),
			OnDisk:      clonePtr(v.IntegerIndexParams.OnDisk),
		}, nil
	case *qdrant.PayloadIndexParams_FloatIndexParams:
		if v.FloatIndexParams == nil {
			break
		}
		return &rest.PayloadIndexParams{
			Type:        rest.PayloadSchemaFloat,
			IsPrincipal: clonePtr(v.FloatIndexParams.IsPrincipal),
			OnDisk:      clonePtr(v.FloatIndexParams.OnDisk),
		}, nil
	case *qdrant.PayloadIndexParams_GeoIndexParams:
		if v.GeoIndexParams == nil {
			break
		}
		return &rest.PayloadIndexParams{
			Type:   rest.PayloadSchemaGeo,
			OnDisk: clonePtr(v.GeoIndexParams.OnDisk),
		}, nil
	case *qdrant.PayloadIndexParams_TextIndexParams:
		if v.TextIndexParams == nil {
			break
		}
		out := &rest.PayloadIndexParams{
			Type:        rest.PayloadSchemaText,
			Lowercase:   clonePtr(v.TextIndexParams.Lowercase),
			MinTokenLen: clonePtr(v.TextIndexParams.MinTokenLen),
			MaxTokenLen: clonePtr(v.TextIndexParams.MaxTokenLen),
			OnDisk:      clonePtr(v.TextIndexParams.OnDisk),
		}
		if t := v.TextIndexParams.GetTokenizer(); t != qdrant.TokenizerType_Unknown {
			tokenizer, err := tokenizers.rest(t)
			if err != nil {
				return nil, field("tokenizer", err)
			}
			out.Tokenizer = &tokenizer
		}
		return out, nil
	case *qdrant.PayloadIndexParams_BoolIndexParams:
		if v.BoolIndexParams == nil {
			break
		}
		return &rest.PayloadIndexParams{
			Type:   rest.PayloadSchemaBool,
			OnDisk: clonePtr(v.BoolIndexParams.OnDisk),
		}, nil
	case *qdrant.PayloadIndexParams_DatetimeIndexParams:
		if v.DatetimeIndexParams == nil {
			break
		}
		return &rest.PayloadIndexParams{
			Type:        rest.PayloadSchemaDatetime,
			IsPrincipal: clonePtr(v.DatetimeIndexParams.IsPrincipal),
			OnDisk:      clonePtr(v.DatetimeIndexParams.OnDisk),
		}, nil
	case *qdrant.PayloadIndexParams_UuidIndexParams:
		if v.UuidIndexParams == nil {
			break
		}
		return &rest.PayloadIndexParams{
			Type:     rest.PayloadSchemaUUID,
			IsTenant: clonePtr(v.UuidIndexParams.IsTenant),
			OnDisk:   clonePtr(v.UuidIndexParams.OnDisk),
		}, nil
	}
	return nil, invalidVariant("payload index params", p)
}

func ToGrpcPayloadIndexInfo(i *rest.PayloadIndexInfo) (*qdrant.PayloadSchemaInfo, error) {
	if i == nil {
		return nil, missingField("payload index info")
	}
	dataType, err := ToGrpcPayloadSchemaType(i.DataType)
	if err != nil {
		return nil, field("data_type", err)
	}
	params, err := ToGrpcPayloadIndexParams(i.Params)
	if err != nil {
		return nil, field("params", err)
	}
	return &qdrant.PayloadSchemaInfo{DataType: dataType, Params: params, Points: clonePtr(i.Points)}, nil
}

func ToRestPayloadIndexInfo(i *qdrant.PayloadSchemaInfo) (*rest.PayloadIndexInfo, error) {
	if i == nil {
		return nil, missingField("payload index info")
	}
	dataType, err := ToRestPayloadSchemaType(i.GetDataType())
	if err != nil {
		return nil, field("data_type", err)
	}
	params, err := ToRestPayloadIndexParams(i.GetParams())
	if err != nil {
		return nil, field("params", err)
	}
	return &rest.PayloadIndexInfo{DataType: dataType, Params: params, Points: clonePtr(i.Points)}, nil
}

func toGrpcPayloadSchema(schema map[string]*rest.PayloadIndexInfo) (map[string]*qdrant.PayloadSchemaInfo, error) {
	if len(schema) == 0 {
		return nil, nil
	}
	out := make(map[string]*qdrant.PayloadSchemaInfo, len(schema))
	for name, info := range schema {
		converted, err := ToGrpcPayloadIndexInfo(info)
		if err != nil {
			return nil, field(name, err)
		}
		out[name] = converted
	}
	return out, nil
}

func toRestPayloadSchema(schema map[string]*qdrant.PayloadSchemaInfo) (map[string]*rest.PayloadIndexInfo, error) {
	if len(schema) == 0 {
		return nil, nil
	}
	out := make(map[string]*rest.PayloadIndexInfo, len(schema))
	for name, info := range schema {
		converted, err := ToRestPayloadIndexInfo(info)
		if err != nil {
			return nil, field(name, err)
		}
		out[name] = converted
	}
	return out, nil
}

// ToGrpcCreateFieldIndex builds the gRPC index creation request for
// collection. A bare schema type sets only the field type; index params set
// both the field type and the params.
func ToGrpcCreateFieldIndex(collection string, c *rest.CreateFieldIndex) (*qdrant.CreateFieldIndexCollection, error) {
	if c == nil {
		return nil, missingField("create field index")
	}
	out := &qdrant.CreateFieldIndexCollection{
		CollectionName: collection,
		FieldName:      c.FieldName,
	}
	switch s := c.FieldSchema.(type) {
	case nil:
	case rest.PayloadSchemaType:
		ft, err := ToGrpcFieldType(s)
		if err != nil {
			return nil, field("field_schema", err)
		}
		out.FieldType = &ft
	case *rest.PayloadIndexParams:
		if s == nil {
			return nil, invalidVariant("field schema", s)
		}
		ft, err := ToGrpcFieldType(s.Type)
		if err != nil {
			return nil, field("field_schema", err)
		}
		params, err := ToGrpcPayloadIndexParams(s)
		if err != nil {
			return nil, field("field_schema", err)
		}
		out.FieldType = &ft
		out.FieldIndexParams = params
	default:
		return nil, invalidVariant("field schema", s)
	}
	return out, nil
}

// ToRestCreateFieldIndex is the inverse of ToGrpcCreateFieldIndex. Params,
// when present, win over the bare field type.
func ToRestCreateFieldIndex(c *qdrant.CreateFieldIndexCollection) (*rest.CreateFieldIndex, error) {
	if c == nil {
		return nil, missingField("create field index")
	}
	out := &rest.CreateFieldIndex{FieldName: c.GetFieldName()}
	if c.GetFieldIndexParams() != nil {
		params, err := ToRestPayloadIndexParams(c.GetFieldIndexParams())
		if err != nil {
			return nil, field("field_schema", err)
		}
		out.FieldSchema = params
		return out, nil
	}
	if c.FieldType != nil {
		t, err := ToRestFieldType(*c.FieldType)
		if err != nil {
			return nil, field("field_schema", err)
		}
		out.FieldSchema = t
	}
	return out, nil
}
