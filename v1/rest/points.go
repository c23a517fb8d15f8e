package rest

import (
	"encoding/json"
	"fmt"
)

// Payload is the JSON metadata attached to a point. Decoded payloads keep
// numbers as json.Number so integers and doubles stay distinguishable.
type Payload map[string]any

// ── Vectors ──────────────────────────────────────────────────────────────────

// VectorStruct is the vector data of a point: DenseVector or NamedVectors.
type VectorStruct interface {
	isVectorStruct()
}

// DenseVector is a single unnamed vector.
type DenseVector []float32

// NamedVectors maps vector names to their data.
type NamedVectors map[string][]float32

func (DenseVector) isVectorStruct()  {}
func (NamedVectors) isVectorStruct() {}

// DecodeVectorStruct parses a JSON array into DenseVector or a JSON object
// into NamedVectors.
func DecodeVectorStruct(data []byte) (VectorStruct, error) {
	switch firstByte(data) {
	case '[':
		var v DenseVector
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case '{':
		var v NamedVectors
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, unknownVariant("vector", data)
	}
}

func decodeOptionalVector(raw json.RawMessage) (VectorStruct, error) {
	if isNull(raw) {
		return nil, nil
	}
	v, err := DecodeVectorStruct(raw)
	if err != nil {
		return nil, fmt.Errorf("vector: %w", err)
	}
	return v, nil
}

func decodeOptionalPayload(raw json.RawMessage) (Payload, error) {
	if isNull(raw) {
		return nil, nil
	}
	var p Payload
	if err := decodeNumberPreserving(raw, &p); err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	return p, nil
}

// pointFields is the shared JSON layout of PointStruct, Record and ScoredPoint.
type pointFields struct {
	ID      json.RawMessage `json:"id"`
	Payload json.RawMessage `json:"payload"`
	Vector  json.RawMessage `json:"vector"`
}

func (f pointFields) decode() (ExtendedPointID, Payload, VectorStruct, error) {
	id, err := DecodePointID(f.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("id: %w", err)
	}
	payload, err := decodeOptionalPayload(f.Payload)
	if err != nil {
		return nil, nil, nil, err
	}
	vector, err := decodeOptionalVector(f.Vector)
	if err != nil {
		return nil, nil, nil, err
	}
	return id, payload, vector, nil
}

// ── Points ───────────────────────────────────────────────────────────────────

// PointStruct is a point as written by an upsert.
type PointStruct struct {
	ID      ExtendedPointID `json:"id"`
	Vector  VectorStruct    `json:"vector"`
	Payload Payload         `json:"payload,omitempty"`
}

func (p *PointStruct) UnmarshalJSON(data []byte) error {
	var aux pointFields
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, payload, vector, err := aux.decode()
	if err != nil {
		return err
	}
	*p = PointStruct{ID: id, Vector: vector, Payload: payload}
	return nil
}

// Record is a point as returned by scroll and retrieve.
type Record struct {
	ID      ExtendedPointID `json:"id"`
	Payload Payload         `json:"payload,omitempty"`
	Vector  VectorStruct    `json:"vector,omitempty"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var aux pointFields
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, payload, vector, err := aux.decode()
	if err != nil {
		return err
	}
	*r = Record{ID: id, Payload: payload, Vector: vector}
	return nil
}

// ScoredPoint is a search hit.
type ScoredPoint struct {
	ID      ExtendedPointID `json:"id"`
	Version uint64          `json:"version"`
	Score   float32         `json:"score"`
	Payload Payload         `json:"payload,omitempty"`
	Vector  VectorStruct    `json:"vector,omitempty"`
}

func (s *ScoredPoint) UnmarshalJSON(data []byte) error {
	var aux struct {
		pointFields
		Version uint64  `json:"version"`
		Score   float32 `json:"score"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	id, payload, vector, err := aux.decode()
	if err != nil {
		return err
	}
	*s = ScoredPoint{ID: id, Version: aux.Version, Score: aux.Score, Payload: payload, Vector: vector}
	return nil
}

// PointInsertOperations is the body of an upsert request.
type PointInsertOperations struct {
	Points []PointStruct `json:"points"`
}

// ── Selectors ────────────────────────────────────────────────────────────────

// PointsSelector picks points by id (*PointIDsList) or by filter (*FilterSelector).
type PointsSelector interface {
	isPointsSelector()
}

type PointIDsList struct {
	Points []ExtendedPointID `json:"points"`
}

type FilterSelector struct {
	Filter *Filter `json:"filter"`
}

func (*PointIDsList) isPointsSelector()   {}
func (*FilterSelector) isPointsSelector() {}

func (l *PointIDsList) UnmarshalJSON(data []byte) error {
	var aux struct {
		Points []json.RawMessage `json:"points"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ids, err := decodePointIDs(aux.Points)
	if err != nil {
		return fmt.Errorf("points: %w", err)
	}
	l.Points = ids
	return nil
}

// DecodePointsSelector parses a selector by its single key.
func DecodePointsSelector(data []byte) (PointsSelector, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if countKeys(fields, "points", "filter") != 1 {
		return nil, unknownVariant("points selector", data)
	}
	var s PointsSelector = &FilterSelector{}
	if hasKey(fields, "points") {
		s = &PointIDsList{}
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ── Requests and Results ─────────────────────────────────────────────────────

type QuantizationSearchParams struct {
	Ignore       *bool    `json:"ignore,omitempty"`
	Rescore      *bool    `json:"rescore,omitempty"`
	Oversampling *float64 `json:"oversampling,omitempty"`
}

// SearchParams tunes a search request.
type SearchParams struct {
	HnswEf       *uint64                   `json:"hnsw_ef,omitempty"`
	Exact        *bool                     `json:"exact,omitempty"`
	Quantization *QuantizationSearchParams `json:"quantization,omitempty"`
	IndexedOnly  *bool                     `json:"indexed_only,omitempty"`
}

// UpdateResult is the outcome of a mutation.
type UpdateResult struct {
	OperationID *uint64      `json:"operation_id,omitempty"`
	Status      UpdateStatus `json:"status"`
}

// ScrollRequest is the body of a scroll request. A nil Offset starts from the
// first point.
type ScrollRequest struct {
	Offset      ExtendedPointID `json:"offset,omitempty"`
	Limit       *uint32         `json:"limit,omitempty"`
	Filter      *Filter         `json:"filter,omitempty"`
	WithPayload *bool           `json:"with_payload,omitempty"`
	WithVector  *bool           `json:"with_vector,omitempty"`
}

// ScrollResult is one page of a scroll. A nil NextPageOffset means there are
// no more pages.
type ScrollResult struct {
	Points         []Record        `json:"points"`
	NextPageOffset ExtendedPointID `json:"next_page_offset"`
}

func (r *ScrollResult) UnmarshalJSON(data []byte) error {
	var aux struct {
		Points         []Record        `json:"points"`
		NextPageOffset json.RawMessage `json:"next_page_offset"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	next, err := decodeOptionalPointID(aux.NextPageOffset)
	if err != nil {
		return fmt.Errorf("next_page_offset: %w", err)
	}
	r.Points = aux.Points
	r.NextPageOffset = next
	return nil
}

// CountRequest is the body of a count request.
type CountRequest struct {
	Filter *Filter `json:"filter,omitempty"`
	Exact  bool    `json:"exact"`
}

type CountResult struct {
	Count uint64 `json:"count"`
}
