package rest

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Condition is one clause of a Filter.
// It is implemented by *FieldCondition, *Filter, *HasIDCondition and
// *IsEmptyCondition.
type Condition interface {
	isCondition()
}

// Filter combines conditions. All Must clauses have to match, at least one
// Should clause has to match and no MustNot clause may match.
// A Filter is itself a Condition and can be nested.
type Filter struct {
	Should  []Condition `json:"should,omitempty"`
	Must    []Condition `json:"must,omitempty"`
	MustNot []Condition `json:"must_not,omitempty"`
}

func (*Filter) isCondition() {}

// UnmarshalJSON decodes each clause list through DecodeCondition.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var aux struct {
		Should  []json.RawMessage `json:"should"`
		Must    []json.RawMessage `json:"must"`
		MustNot []json.RawMessage `json:"must_not"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if f.Should, err = decodeConditions(aux.Should); err != nil {
		return fmt.Errorf("should: %w", err)
	}
	if f.Must, err = decodeConditions(aux.Must); err != nil {
		return fmt.Errorf("must: %w", err)
	}
	if f.MustNot, err = decodeConditions(aux.MustNot); err != nil {
		return fmt.Errorf("must_not: %w", err)
	}
	return nil
}

func decodeConditions(raws []json.RawMessage) ([]Condition, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	conditions := make([]Condition, 0, len(raws))
	for i, raw := range raws {
		c, err := DecodeCondition(raw)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		conditions = append(conditions, c)
	}
	return conditions, nil
}

// DecodeCondition detects and parses a single Condition from JSON.
// It examines the JSON keys to determine the condition type:
//   - "key" → FieldCondition
//   - "has_id" → HasIDCondition
//   - "is_empty" → IsEmptyCondition
//   - "must", "should", "must_not" → nested Filter
//
// An empty object is an empty nested Filter, matching how one marshals.
func DecodeCondition(data []byte) (Condition, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields != nil && len(fields) == 0 {
		return &Filter{}, nil
	}

	isFilter := countKeys(fields, "must", "should", "must_not") > 0
	matched := countKeys(fields, "key", "has_id", "is_empty")
	if isFilter {
		matched++
	}
	if matched != 1 {
		return nil, unknownVariant("condition", data)
	}

	switch {
	case hasKey(fields, "key"):
		var c FieldCondition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil

	case hasKey(fields, "has_id"):
		var c HasIDCondition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil

	case hasKey(fields, "is_empty"):
		var c IsEmptyCondition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil

	default:
		var f Filter
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return &f, nil
	}
}

// ── Field Conditions ─────────────────────────────────────────────────────────

// FieldCondition constrains a single payload field. At most one of Match,
// Range, GeoBoundingBox, GeoRadius and ValuesCount is expected to be set.
type FieldCondition struct {
	Key            string          `json:"key"`
	Match          Match           `json:"match,omitempty"`
	Range          *Range          `json:"range,omitempty"`
	GeoBoundingBox *GeoBoundingBox `json:"geo_bounding_box,omitempty"`
	GeoRadius      *GeoRadius      `json:"geo_radius,omitempty"`
	ValuesCount    *ValuesCount    `json:"values_count,omitempty"`
}

func (*FieldCondition) isCondition() {}

// ConstraintCount returns how many constraints are set on the condition.
func (c *FieldCondition) ConstraintCount() int {
	n := 0
	if c.Match != nil {
		n++
	}
	if c.Range != nil {
		n++
	}
	if c.GeoBoundingBox != nil {
		n++
	}
	if c.GeoRadius != nil {
		n++
	}
	if c.ValuesCount != nil {
		n++
	}
	return n
}

// fieldConditionKeys are the keys a FieldCondition can carry.
var fieldConditionKeys = map[string]struct{}{
	"key":              {},
	"match":            {},
	"range":            {},
	"geo_bounding_box": {},
	"geo_radius":       {},
	"values_count":     {},
}

// UnmarshalJSON rejects constraints the model cannot hold, such as
// datetime_range or geo_polygon, instead of dropping them.
func (c *FieldCondition) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for k := range fields {
		if _, ok := fieldConditionKeys[k]; !ok {
			return unknownVariant("field condition", data)
		}
	}

	type plain FieldCondition
	aux := struct {
		Match json.RawMessage `json:"match"`
		*plain
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if isNull(aux.Match) {
		c.Match = nil
		return nil
	}
	m, err := DecodeMatch(aux.Match)
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}
	c.Match = m
	return nil
}

// Range constrains a numeric field. Unset bounds are open.
type Range struct {
	Lt  *float64 `json:"lt,omitempty"`
	Gt  *float64 `json:"gt,omitempty"`
	Gte *float64 `json:"gte,omitempty"`
	Lte *float64 `json:"lte,omitempty"`
}

// ValuesCount constrains the number of values stored in a field.
type ValuesCount struct {
	Lt  *uint64 `json:"lt,omitempty"`
	Gt  *uint64 `json:"gt,omitempty"`
	Gte *uint64 `json:"gte,omitempty"`
	Lte *uint64 `json:"lte,omitempty"`
}

// ── Geo ──────────────────────────────────────────────────────────────────────

type GeoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// GeoRadius matches points within Radius meters of Center.
type GeoRadius struct {
	Center GeoPoint `json:"center"`
	Radius float64  `json:"radius"`
}

type GeoBoundingBox struct {
	TopLeft     GeoPoint `json:"top_left"`
	BottomRight GeoPoint `json:"bottom_right"`
}

// ── Id and Emptiness Conditions ──────────────────────────────────────────────

// HasIDCondition matches points whose id is in HasID.
type HasIDCondition struct {
	HasID []ExtendedPointID `json:"has_id"`
}

func (*HasIDCondition) isCondition() {}

func (c *HasIDCondition) UnmarshalJSON(data []byte) error {
	var aux struct {
		HasID []json.RawMessage `json:"has_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ids, err := decodePointIDs(aux.HasID)
	if err != nil {
		return fmt.Errorf("has_id: %w", err)
	}
	c.HasID = ids
	return nil
}

type PayloadField struct {
	Key string `json:"key"`
}

// IsEmptyCondition matches points where the field is missing or empty.
type IsEmptyCondition struct {
	IsEmpty PayloadField `json:"is_empty"`
}

func (*IsEmptyCondition) isCondition() {}

// ── Match ────────────────────────────────────────────────────────────────────

// Match is the equality clause of a FieldCondition.
// It is implemented by *MatchValue, *MatchKeyword, *MatchInteger and *MatchText.
type Match interface {
	isMatch()
}

// MatchValue matches a bool, integer or string value exactly.
type MatchValue struct {
	Value ValueVariant `json:"value"`
}

// MatchKeyword matches a keyword exactly.
type MatchKeyword struct {
	Keyword string `json:"keyword"`
}

// MatchInteger matches an integer exactly.
type MatchInteger struct {
	Integer int64 `json:"integer"`
}

// MatchText matches a full-text query against a text-indexed field.
type MatchText struct {
	Text string `json:"text"`
}

func (*MatchValue) isMatch()   {}
func (*MatchKeyword) isMatch() {}
func (*MatchInteger) isMatch() {}
func (*MatchText) isMatch()    {}

func (m *MatchValue) UnmarshalJSON(data []byte) error {
	var aux struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v, err := DecodeValueVariant(aux.Value)
	if err != nil {
		return err
	}
	m.Value = v
	return nil
}

// DecodeMatch detects and parses a Match from JSON by its single key.
func DecodeMatch(data []byte) (Match, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if countKeys(fields, "value", "keyword", "integer", "text") != 1 {
		return nil, unknownVariant("match", data)
	}

	var m Match
	switch {
	case hasKey(fields, "value"):
		m = &MatchValue{}
	case hasKey(fields, "keyword"):
		m = &MatchKeyword{}
	case hasKey(fields, "integer"):
		m = &MatchInteger{}
	default:
		m = &MatchText{}
	}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ValueVariant is the value of a MatchValue: BoolValue, IntValue or StringValue.
type ValueVariant interface {
	isValueVariant()
}

type BoolValue bool

type IntValue int64

type StringValue string

func (BoolValue) isValueVariant()   {}
func (IntValue) isValueVariant()    {}
func (StringValue) isValueVariant() {}

// DecodeValueVariant parses a JSON bool, integer or string.
// Fractional numbers, null, objects and arrays are rejected.
func DecodeValueVariant(data []byte) (ValueVariant, error) {
	switch firstByte(data) {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return BoolValue(b), nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return StringValue(s), nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return nil, unknownVariant("match value", data)
		}
		return IntValue(i), nil
	default:
		return nil, unknownVariant("match value", data)
	}
}
