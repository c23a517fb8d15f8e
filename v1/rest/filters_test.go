package rest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_UnmarshalJSON(t *testing.T) {
	raw := `{
		"must": [
			{"key": "city", "match": {"value": "London"}},
			{"key": "price", "range": {"gte": 10, "lt": 20}},
			{"has_id": [1, "5c56c793-69f3-4fbf-87e6-c4bf54c28c26"]}
		],
		"should": [
			{"must": [{"key": "active", "match": {"value": true}}]}
		],
		"must_not": [
			{"is_empty": {"key": "tags"}},
			{"key": "year", "match": {"integer": 2020}}
		]
	}`

	var f Filter
	require.NoError(t, json.Unmarshal([]byte(raw), &f))

	require.Len(t, f.Must, 3)
	city := f.Must[0].(*FieldCondition)
	assert.Equal(t, "city", city.Key)
	assert.Equal(t, &MatchValue{Value: StringValue("London")}, city.Match)

	price := f.Must[1].(*FieldCondition)
	require.NotNil(t, price.Range)
	assert.Equal(t, 10.0, *price.Range.Gte)
	assert.Equal(t, 20.0, *price.Range.Lt)
	assert.Nil(t, price.Match)

	hasID := f.Must[2].(*HasIDCondition)
	assert.Equal(t, []ExtendedPointID{PointNum(1), PointUUID("5c56c793-69f3-4fbf-87e6-c4bf54c28c26")}, hasID.HasID)

	require.Len(t, f.Should, 1)
	nested := f.Should[0].(*Filter)
	require.Len(t, nested.Must, 1)
	assert.Equal(t, &MatchValue{Value: BoolValue(true)}, nested.Must[0].(*FieldCondition).Match)

	require.Len(t, f.MustNot, 2)
	assert.Equal(t, &IsEmptyCondition{IsEmpty: PayloadField{Key: "tags"}}, f.MustNot[0])
	assert.Equal(t, &MatchInteger{Integer: 2020}, f.MustNot[1].(*FieldCondition).Match)
}

func TestDecodeCondition_Ambiguous(t *testing.T) {
	tests := map[string]string{
		"no known key":     `{"foo": 1}`,
		"field and has_id": `{"key": "a", "has_id": [1]}`,
		"filter and key":   `{"key": "a", "must": []}`,
		"datetime range":   `{"key": "ts", "datetime_range": {"gte": "2024-01-01T00:00:00Z"}}`,
		"geo polygon":      `{"key": "loc", "geo_polygon": {"exterior": {"points": [{"lon": 1, "lat": 2}]}}}`,
		"match and extra":  `{"key": "a", "match": {"value": 1}, "is_null": {"key": "a"}}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCondition([]byte(raw))
			assert.ErrorIs(t, err, ErrUnknownVariant)
		})
	}
}

func TestDecodeMatch(t *testing.T) {
	m, err := DecodeMatch([]byte(`{"keyword": "red"}`))
	require.NoError(t, err)
	assert.Equal(t, &MatchKeyword{Keyword: "red"}, m)

	m, err = DecodeMatch([]byte(`{"text": "hello world"}`))
	require.NoError(t, err)
	assert.Equal(t, &MatchText{Text: "hello world"}, m)

	m, err = DecodeMatch([]byte(`{"value": -3}`))
	require.NoError(t, err)
	assert.Equal(t, &MatchValue{Value: IntValue(-3)}, m)

	_, err = DecodeMatch([]byte(`{"keyword": "a", "text": "b"}`))
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = DecodeMatch([]byte(`{"value": 1.5}`))
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestFilter_MarshalRoundTrip(t *testing.T) {
	f := &Filter{
		Must: []Condition{
			&FieldCondition{Key: "city", Match: &MatchValue{Value: StringValue("Paris")}},
			&HasIDCondition{HasID: []ExtendedPointID{PointNum(4)}},
		},
	}
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"must":[{"key":"city","match":{"value":"Paris"}},{"has_id":[4]}]}`, string(data))

	var back Filter
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f, &back)
}

func TestFilter_EmptyNestedRoundTrip(t *testing.T) {
	f := &Filter{Must: []Condition{&Filter{}}}
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"must":[{}]}`, string(data))

	var back Filter
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f, &back)
}
