package conversion

import (
	"encoding/json"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// ToGrpcPayload converts a REST payload into gRPC dynamic values.
// json.Number values become integers when they parse as int64 and doubles
// otherwise; Go numeric types keep their kind.
func ToGrpcPayload(p rest.Payload) (map[string]*qdrant.Value, error) {
	if p == nil {
		return nil, nil
	}
	out := make(map[string]*qdrant.Value, len(p))
	for k, v := range p {
		converted, err := ToGrpcValue(v)
		if err != nil {
			return nil, field(k, err)
		}
		out[k] = converted
	}
	return out, nil
}

// ToGrpcValue converts one JSON-like value.
func ToGrpcValue(v any) (*qdrant.Value, error) {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return qdrant.NewValueInt(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %s", ErrUnsupportedValue, v)
		}
		return qdrant.NewValueDouble(f), nil
	case rest.Payload:
		return toGrpcStruct(v)
	case map[string]any:
		return toGrpcStruct(v)
	case []any:
		values := make([]*qdrant.Value, 0, len(v))
		for i, item := range v {
			converted, err := ToGrpcValue(item)
			if err != nil {
				return nil, field(fmt.Sprintf("[%d]", i), err)
			}
			values = append(values, converted)
		}
		return qdrant.NewValueFromList(values...), nil
	}

	value, err := qdrant.NewValue(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return value, nil
}

func toGrpcStruct(m map[string]any) (*qdrant.Value, error) {
	fields := make(map[string]*qdrant.Value, len(m))
	for k, item := range m {
		converted, err := ToGrpcValue(item)
		if err != nil {
			return nil, field(k, err)
		}
		fields[k] = converted
	}
	return qdrant.NewValueFromFields(fields), nil
}

// ToRestPayload converts gRPC dynamic values into a REST payload.
func ToRestPayload(p map[string]*qdrant.Value) (rest.Payload, error) {
	if p == nil {
		return nil, nil
	}
	out := make(rest.Payload, len(p))
	for k, v := range p {
		converted, err := ToRestValue(v)
		if err != nil {
			return nil, field(k, err)
		}
		out[k] = converted
	}
	return out, nil
}

// ToRestValue converts one dynamic value: null to nil, integer to int64,
// double to float64, struct to map[string]any and list to []any.
func ToRestValue(v *qdrant.Value) (any, error) {
	switch k := v.GetKind().(type) {
	case *qdrant.Value_NullValue:
		return nil, nil
	case *qdrant.Value_BoolValue:
		return k.BoolValue, nil
	case *qdrant.Value_IntegerValue:
		return k.IntegerValue, nil
	case *qdrant.Value_DoubleValue:
		return k.DoubleValue, nil
	case *qdrant.Value_StringValue:
		return k.StringValue, nil
	case *qdrant.Value_StructValue:
		if k.StructValue == nil {
			break
		}
		fields := k.StructValue.GetFields()
		out := make(map[string]any, len(fields))
		for name, item := range fields {
			converted, err := ToRestValue(item)
			if err != nil {
				return nil, field(name, err)
			}
			out[name] = converted
		}
		return out, nil
	case *qdrant.Value_ListValue:
		if k.ListValue == nil {
			break
		}
		items := k.ListValue.GetValues()
		out := make([]any, 0, len(items))
		for i, item := range items {
			converted, err := ToRestValue(item)
			if err != nil {
				return nil, field(fmt.Sprintf("[%d]", i), err)
			}
			out = append(out, converted)
		}
		return out, nil
	}
	return nil, invalidVariant("value", v)
}
