package conversion

import (
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// ToGrpcFilter converts a REST filter. A nil filter converts to nil.
func ToGrpcFilter(f *rest.Filter) (*qdrant.Filter, error) {
	if f == nil {
		return nil, nil
	}
	should, err := toGrpcConditions(f.Should)
	if err != nil {
		return nil, field("should", err)
	}
	must, err := toGrpcConditions(f.Must)
	if err != nil {
		return nil, field("must", err)
	}
	mustNot, err := toGrpcConditions(f.MustNot)
	if err != nil {
		return nil, field("must_not", err)
	}
	return &qdrant.Filter{Should: should, Must: must, MustNot: mustNot}, nil
}

// ToRestFilter converts a gRPC filter. A nil filter converts to nil.
// Filters using min_should have no REST counterpart and are rejected.
func ToRestFilter(f *qdrant.Filter) (*rest.Filter, error) {
	if f == nil {
		return nil, nil
	}
	if f.GetMinShould() != nil {
		return nil, invalidVariant("filter min_should", f.GetMinShould())
	}
	should, err := toRestConditions(f.GetShould())
	if err != nil {
		return nil, field("should", err)
	}
	must, err := toRestConditions(f.GetMust())
	if err != nil {
		return nil, field("must", err)
	}
	mustNot, err := toRestConditions(f.GetMustNot())
	if err != nil {
		return nil, field("must_not", err)
	}
	return &rest.Filter{Should: should, Must: must, MustNot: mustNot}, nil
}

func toGrpcConditions(conditions []rest.Condition) ([]*qdrant.Condition, error) {
	if len(conditions) == 0 {
		return nil, nil
	}
	out := make([]*qdrant.Condition, 0, len(conditions))
	for i, c := range conditions {
		converted, err := ToGrpcCondition(c)
		if err != nil {
			return nil, field(fmt.Sprintf("[%d]", i), err)
		}
		out = append(out, converted)
	}
	return out, nil
}

func toRestConditions(conditions []*qdrant.Condition) ([]rest.Condition, error) {
	if len(conditions) == 0 {
		return nil, nil
	}
	out := make([]rest.Condition, 0, len(conditions))
	for i, c := range conditions {
		converted, err := ToRestCondition(c)
		if err != nil {
			return nil, field(fmt.Sprintf("[%d]", i), err)
		}
		out = append(out, converted)
	}
	return out, nil
}

// ToGrpcCondition dispatches on the condition variant.
func ToGrpcCondition(c rest.Condition) (*qdrant.Condition, error) {
	switch c := c.(type) {
	case *rest.FieldCondition:
		if c == nil {
			break
		}
		fc, err := ToGrpcFieldCondition(c)
		if err != nil {
			return nil, err
		}
		return &qdrant.Condition{ConditionOneOf: &qdrant.Condition_Field{Field: fc}}, nil

	case *rest.Filter:
		if c == nil {
			break
		}
		f, err := ToGrpcFilter(c)
		if err != nil {
			return nil, err
		}
		return &qdrant.Condition{ConditionOneOf: &qdrant.Condition_Filter{Filter: f}}, nil

	case *rest.HasIDCondition:
		if c == nil {
			break
		}
		ids, err := ToGrpcPointIDs(c.HasID)
		if err != nil {
			return nil, field("has_id", err)
		}
		return &qdrant.Condition{ConditionOneOf: &qdrant.Condition_HasId{
			HasId: &qdrant.HasIdCondition{HasId: ids},
		}}, nil

	case *rest.IsEmptyCondition:
		if c == nil {
			break
		}
		return &qdrant.Condition{ConditionOneOf: &qdrant.Condition_IsEmpty{
			IsEmpty: &qdrant.IsEmptyCondition{Key: c.IsEmpty.Key},
		}}, nil
	}
	return nil, invalidVariant("condition", c)
}

// ToRestCondition dispatches on the populated oneof. Conditions without a
// REST counterpart (is_null, nested, has_vector) are rejected.
func ToRestCondition(c *qdrant.Condition) (rest.Condition, error) {
	switch v := c.GetConditionOneOf().(type) {
	case *qdrant.Condition_Field:
		if v.Field == nil {
			break
		}
		fc, err := ToRestFieldCondition(v.Field)
		if err != nil {
			return nil, err
		}
		return fc, nil

	case *qdrant.Condition_Filter:
		if v.Filter == nil {
			break
		}
		f, err := ToRestFilter(v.Filter)
		if err != nil {
			return nil, err
		}
		return f, nil

	case *qdrant.Condition_HasId:
		if v.HasId == nil {
			break
		}
		ids, err := ToRestPointIDs(v.HasId.GetHasId())
		if err != nil {
			return nil, field("has_id", err)
		}
		return &rest.HasIDCondition{HasID: ids}, nil

	case *qdrant.Condition_IsEmpty:
		if v.IsEmpty == nil {
			break
		}
		return &rest.IsEmptyCondition{IsEmpty: rest.PayloadField{Key: v.IsEmpty.GetKey()}}, nil
	}
	return nil, invalidVariant("condition", c)
}

// ToGrpcFieldCondition converts a field condition. Setting more than one
// constraint is rejected.
func ToGrpcFieldCondition(c *rest.FieldCondition) (*qdrant.FieldCondition, error) {
	if c.ConstraintCount() > 1 {
		return nil, invalidVariant("field condition "+c.Key, "more than one constraint set")
	}
	out := &qdrant.FieldCondition{
		Key:            c.Key,
		Range:          ToGrpcRange(c.Range),
		GeoBoundingBox: ToGrpcGeoBoundingBox(c.GeoBoundingBox),
		GeoRadius:      ToGrpcGeoRadius(c.GeoRadius),
		ValuesCount:    ToGrpcValuesCount(c.ValuesCount),
	}
	if c.Match != nil {
		m, err := ToGrpcMatch(c.Match)
		if err != nil {
			return nil, field("match", err)
		}
		out.Match = m
	}
	return out, nil
}

// ToRestFieldCondition converts a field condition. Constraints that REST
// cannot express (geo polygon, datetime range, is_empty, is_null) and
// conditions with more than one constraint are rejected.
func ToRestFieldCondition(c *qdrant.FieldCondition) (*rest.FieldCondition, error) {
	if c.GetGeoPolygon() != nil || c.GetDatetimeRange() != nil || c.IsEmpty != nil || c.IsNull != nil {
		return nil, invalidVariant("field condition "+c.GetKey(), "unsupported constraint")
	}

	out := &rest.FieldCondition{
		Key:         c.GetKey(),
		Range:       ToRestRange(c.GetRange()),
		ValuesCount: ToRestValuesCount(c.GetValuesCount()),
	}
	var err error
	if out.GeoBoundingBox, err = ToRestGeoBoundingBox(c.GetGeoBoundingBox()); err != nil {
		return nil, field("geo_bounding_box", err)
	}
	if out.GeoRadius, err = ToRestGeoRadius(c.GetGeoRadius()); err != nil {
		return nil, field("geo_radius", err)
	}
	if c.GetMatch() != nil {
		if out.Match, err = ToRestMatch(c.GetMatch()); err != nil {
			return nil, field("match", err)
		}
	}
	if out.ConstraintCount() > 1 {
		return nil, invalidVariant("field condition "+c.GetKey(), "more than one constraint set")
	}
	return out, nil
}

// ── Match ────────────────────────────────────────────────────────────────────

// ToGrpcMatch converts a match clause. MatchValue dispatches on the type of
// its value: bool to boolean, integer to integer, string to keyword.
func ToGrpcMatch(m rest.Match) (*qdrant.Match, error) {
	switch m := m.(type) {
	case *rest.MatchValue:
		if m == nil {
			break
		}
		switch v := m.Value.(type) {
		case rest.BoolValue:
			return &qdrant.Match{MatchValue: &qdrant.Match_Boolean{Boolean: bool(v)}}, nil
		case rest.IntValue:
			return &qdrant.Match{MatchValue: &qdrant.Match_Integer{Integer: int64(v)}}, nil
		case rest.StringValue:
			return &qdrant.Match{MatchValue: &qdrant.Match_Keyword{Keyword: string(v)}}, nil
		}
		return nil, invalidVariant("match value", m.Value)
	case *rest.MatchKeyword:
		if m == nil {
			break
		}
		return &qdrant.Match{MatchValue: &qdrant.Match_Keyword{Keyword: m.Keyword}}, nil
	case *rest.MatchInteger:
		if m == nil {
			break
		}
		return &qdrant.Match{MatchValue: &qdrant.Match_Integer{Integer: m.Integer}}, nil
	case *rest.MatchText:
		if m == nil {
			break
		}
		return &qdrant.Match{MatchValue: &qdrant.Match_Text{Text: m.Text}}, nil
	}
	return nil, invalidVariant("match", m)
}

// ToRestMatch converts a match clause. Keyword, integer and boolean matches
// become MatchValue.
func ToRestMatch(m *qdrant.Match) (rest.Match, error) {
	switch v := m.GetMatchValue().(type) {
	case *qdrant.Match_Keyword:
		return &rest.MatchValue{Value: rest.StringValue(v.Keyword)}, nil
	case *qdrant.Match_Integer:
		return &rest.MatchValue{Value: rest.IntValue(v.Integer)}, nil
	case *qdrant.Match_Boolean:
		return &rest.MatchValue{Value: rest.BoolValue(v.Boolean)}, nil
	case *qdrant.Match_Text:
		return &rest.MatchText{Text: v.Text}, nil
	}
	return nil, invalidVariant("match", m)
}

// ── Ranges ───────────────────────────────────────────────────────────────────

func ToGrpcRange(r *rest.Range) *qdrant.Range {
	if r == nil {
		return nil
	}
	return &qdrant.Range{
		Lt:  clonePtr(r.Lt),
		Gt:  clonePtr(r.Gt),
		Gte: clonePtr(r.Gte),
		Lte: clonePtr(r.Lte),
	}
}

func ToRestRange(r *qdrant.Range) *rest.Range {
	if r == nil {
		return nil
	}
	return &rest.Range{
		Lt:  clonePtr(r.Lt),
		Gt:  clonePtr(r.Gt),
		Gte: clonePtr(r.Gte),
		Lte: clonePtr(r.Lte),
	}
}

func ToGrpcValuesCount(v *rest.ValuesCount) *qdrant.ValuesCount {
	if v == nil {
		return nil
	}
	return &qdrant.ValuesCount{
		Lt:  clonePtr(v.Lt),
		Gt:  clonePtr(v.Gt),
		Gte: clonePtr(v.Gte),
		Lte: clonePtr(v.Lte),
	}
}

func ToRestValuesCount(v *qdrant.ValuesCount) *rest.ValuesCount {
	if v == nil {
		return nil
	}
	return &rest.ValuesCount{
		Lt:  clonePtr(v.Lt),
		Gt:  clonePtr(v.Gt),
		Gte: clonePtr(v.Gte),
		Lte: clonePtr(v.Lte),
	}
}

// ── Geo ──────────────────────────────────────────────────────────────────────

func ToGrpcGeoPoint(p rest.GeoPoint) *qdrant.GeoPoint {
	return &qdrant.GeoPoint{Lon: p.Lon, Lat: p.Lat}
}

func ToRestGeoPoint(p *qdrant.GeoPoint) (rest.GeoPoint, error) {
	if p == nil {
		return rest.GeoPoint{}, missingField("geo point")
	}
	return rest.GeoPoint{Lon: p.GetLon(), Lat: p.GetLat()}, nil
}

func ToGrpcGeoRadius(g *rest.GeoRadius) *qdrant.GeoRadius {
	if g == nil {
		return nil
	}
	return &qdrant.GeoRadius{
		Center: ToGrpcGeoPoint(g.Center),
		Radius: float32(g.Radius),
	}
}

func ToRestGeoRadius(g *qdrant.GeoRadius) (*rest.GeoRadius, error) {
	if g == nil {
		return nil, nil
	}
	center, err := ToRestGeoPoint(g.GetCenter())
	if err != nil {
		return nil, field("center", err)
	}
	return &rest.GeoRadius{Center: center, Radius: float64(g.GetRadius())}, nil
}

func ToGrpcGeoBoundingBox(b *rest.GeoBoundingBox) *qdrant.GeoBoundingBox {
	if b == nil {
		return nil
	}
	return &qdrant.GeoBoundingBox{
		TopLeft:     ToGrpcGeoPoint(b.TopLeft),
		BottomRight: ToGrpcGeoPoint(b.BottomRight),
	}
}

func ToRestGeoBoundingBox(b *qdrant.GeoBoundingBox) (*rest.GeoBoundingBox, error) {
	if b == nil {
		return nil, nil
	}
	topLeft, err := ToRestGeoPoint(b.GetTopLeft())
	if err != nil {
		return nil, field("top_left", err)
	}
	bottomRight, err := ToRestGeoPoint(b.GetBottomRight())
	if err != nil {
		return nil, field("bottom_right", err)
	}
	return &rest.GeoBoundingBox{TopLeft: topLeft, BottomRight: bottomRight}, nil
}
