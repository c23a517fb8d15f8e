package conversion

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

func float64Ptr(v float64) *float64 { return &v }

func TestFilterRoundTripFromGrpc(t *testing.T) {
	nested := &qdrant.Filter{
		Must: []*qdrant.Condition{qdrant.NewMatchInt("priority", 3)},
	}
	original := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatchKeyword("city", "London"),
			qdrant.NewMatchBool("active", true),
			qdrant.NewRange("price", &qdrant.Range{Gte: float64Ptr(10), Lt: float64Ptr(20.5)}),
		},
		Should: []*qdrant.Condition{
			qdrant.NewHasID(qdrant.NewIDNum(7), qdrant.NewIDUUID("5c56c793-69f3-4fbf-87e6-c4bf54c28c26")),
			qdrant.NewGeoRadius("location", 52.52, 13.405, 1000),
			qdrant.NewFilterAsCondition(nested),
		},
		MustNot: []*qdrant.Condition{
			qdrant.NewIsEmpty("tags"),
			qdrant.NewMatchText("description", "spam"),
		},
	}

	restFilter, err := ToRestFilter(original)
	require.NoError(t, err)
	require.Len(t, restFilter.Must, 3)
	require.Len(t, restFilter.Should, 3)
	require.Len(t, restFilter.MustNot, 2)

	back, err := ToGrpcFilter(restFilter)
	require.NoError(t, err)
	assert.True(t, proto.Equal(original, back), "round trip changed the filter:\n%v\n%v", original, back)
}

func TestFilterRoundTripFromRest(t *testing.T) {
	original := &rest.Filter{
		Must: []rest.Condition{
			&rest.FieldCondition{Key: "city", Match: &rest.MatchValue{Value: rest.StringValue("Berlin")}},
			&rest.FieldCondition{Key: "count", ValuesCount: &rest.ValuesCount{Gte: uint64Ptr(2)}},
		},
		Should: []rest.Condition{
			&rest.HasIDCondition{HasID: []rest.ExtendedPointID{rest.PointNum(1), rest.PointNum(2)}},
		},
	}

	grpcFilter, err := ToGrpcFilter(original)
	require.NoError(t, err)

	back, err := ToRestFilter(grpcFilter)
	require.NoError(t, err)
	assert.Equal(t, original, back)
}

func TestToGrpcFilter_Nil(t *testing.T) {
	f, err := ToGrpcFilter(nil)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestToGrpcMatch_MatchValueDispatch(t *testing.T) {
	tests := []struct {
		name  string
		value rest.ValueVariant
		want  *qdrant.Match
	}{
		{"bool", rest.BoolValue(true), &qdrant.Match{MatchValue: &qdrant.Match_Boolean{Boolean: true}}},
		{"integer", rest.IntValue(-4), &qdrant.Match{MatchValue: &qdrant.Match_Integer{Integer: -4}}},
		{"string", rest.StringValue("red"), &qdrant.Match{MatchValue: &qdrant.Match_Keyword{Keyword: "red"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToGrpcMatch(&rest.MatchValue{Value: tt.value})
			require.NoError(t, err)
			assert.True(t, proto.Equal(tt.want, got))
		})
	}
}

func TestToRestMatch(t *testing.T) {
	m, err := ToRestMatch(&qdrant.Match{MatchValue: &qdrant.Match_Keyword{Keyword: "red"}})
	require.NoError(t, err)
	assert.Equal(t, &rest.MatchValue{Value: rest.StringValue("red")}, m)

	m, err = ToRestMatch(&qdrant.Match{MatchValue: &qdrant.Match_Text{Text: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, &rest.MatchText{Text: "hello"}, m)

	_, err = ToRestMatch(&qdrant.Match{MatchValue: &qdrant.Match_Keywords{Keywords: &qdrant.RepeatedStrings{Strings: []string{"a"}}}})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestEmptyVariantsAreRejected(t *testing.T) {
	_, err := ToRestCondition(&qdrant.Condition{})
	assert.ErrorIs(t, err, ErrInvalidVariant)

	_, err = ToRestMatch(&qdrant.Match{})
	assert.ErrorIs(t, err, ErrInvalidVariant)

	_, err = ToGrpcCondition(nil)
	assert.ErrorIs(t, err, ErrInvalidVariant)

	_, err = ToGrpcCondition((*rest.FieldCondition)(nil))
	assert.ErrorIs(t, err, ErrInvalidVariant)

	_, err = ToGrpcMatch(&rest.MatchValue{})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestFieldCondition_MultipleConstraints(t *testing.T) {
	c := &rest.FieldCondition{
		Key:   "price",
		Match: &rest.MatchInteger{Integer: 3},
		Range: &rest.Range{Gt: float64Ptr(1)},
	}
	_, err := ToGrpcFieldCondition(c)
	assert.ErrorIs(t, err, ErrInvalidVariant)

	g := &qdrant.FieldCondition{
		Key:   "price",
		Match: &qdrant.Match{MatchValue: &qdrant.Match_Integer{Integer: 3}},
		Range: &qdrant.Range{Gt: float64Ptr(1)},
	}
	_, err = ToRestFieldCondition(g)
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestToRestFieldCondition_UnsupportedConstraint(t *testing.T) {
	isNull := true
	_, err := ToRestFieldCondition(&qdrant.FieldCondition{Key: "x", IsNull: &isNull})
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestToRestFilter_MinShould(t *testing.T) {
	f := &qdrant.Filter{MinShould: &qdrant.MinShould{
		Conditions: []*qdrant.Condition{qdrant.NewMatchKeyword("a", "b")},
		MinCount:   1,
	}}
	_, err := ToRestFilter(f)
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestNestedErrorCarriesPath(t *testing.T) {
	f := &rest.Filter{
		Must: []rest.Condition{
			&rest.HasIDCondition{HasID: []rest.ExtendedPointID{rest.PointUUID("nope")}},
		},
	}
	_, err := ToGrpcFilter(f)
	require.ErrorIs(t, err, ErrInvalidPointID)
	assert.Contains(t, err.Error(), "must: [0]: has_id: [0]")
}
