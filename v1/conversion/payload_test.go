package conversion

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

func decodePayload(t *testing.T, raw string) rest.Payload {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var p rest.Payload
	require.NoError(t, dec.Decode(&p))
	return p
}

func TestToGrpcPayload_KeepsIntegerAndDoubleApart(t *testing.T) {
	p := decodePayload(t, `{"count": 3, "ratio": 3.5, "big": 1e3, "name": "doc", "ok": true, "none": null}`)

	values, err := ToGrpcPayload(p)
	require.NoError(t, err)

	assert.IsType(t, &qdrant.Value_IntegerValue{}, values["count"].GetKind())
	assert.Equal(t, int64(3), values["count"].GetIntegerValue())
	assert.IsType(t, &qdrant.Value_DoubleValue{}, values["ratio"].GetKind())
	assert.Equal(t, 3.5, values["ratio"].GetDoubleValue())
	assert.IsType(t, &qdrant.Value_DoubleValue{}, values["big"].GetKind())
	assert.Equal(t, "doc", values["name"].GetStringValue())
	assert.True(t, values["ok"].GetBoolValue())
	assert.IsType(t, &qdrant.Value_NullValue{}, values["none"].GetKind())
}

func TestPayloadRoundTrip_Nested(t *testing.T) {
	p := decodePayload(t, `{"meta": {"tags": ["a", 1, 2.5], "depth": {"level": 2}}}`)

	values, err := ToGrpcPayload(p)
	require.NoError(t, err)

	back, err := ToRestPayload(values)
	require.NoError(t, err)

	want := rest.Payload{
		"meta": map[string]any{
			"tags":  []any{"a", int64(1), 2.5},
			"depth": map[string]any{"level": int64(2)},
		},
	}
	assert.Equal(t, want, back)
}

func TestToGrpcValue_GoNumbers(t *testing.T) {
	v, err := ToGrpcValue(7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.GetIntegerValue())

	v, err = ToGrpcValue(float32(1.5))
	require.NoError(t, err)
	assert.Equal(t, 1.5, v.GetDoubleValue())
}

func TestToGrpcValue_Unsupported(t *testing.T) {
	_, err := ToGrpcValue(struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestToRestValue_EmptyKind(t *testing.T) {
	_, err := ToRestValue(&qdrant.Value{})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}
