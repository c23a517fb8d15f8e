package conversion

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// ToGrpcPointID converts a point id. UUID ids must parse as a UUID; the
// original string is kept.
func ToGrpcPointID(id rest.ExtendedPointID) (*qdrant.PointId, error) {
	switch v := id.(type) {
	case rest.PointNum:
		return qdrant.NewIDNum(uint64(v)), nil
	case rest.PointUUID:
		if err := validateUUID(string(v)); err != nil {
			return nil, err
		}
		return qdrant.NewIDUUID(string(v)), nil
	}
	return nil, invalidVariant("point id", id)
}

// ToRestPointID converts a point id. An id with neither num nor uuid set is
// rejected.
func ToRestPointID(id *qdrant.PointId) (rest.ExtendedPointID, error) {
	switch v := id.GetPointIdOptions().(type) {
	case *qdrant.PointId_Num:
		return rest.PointNum(v.Num), nil
	case *qdrant.PointId_Uuid:
		if err := validateUUID(v.Uuid); err != nil {
			return nil, err
		}
		return rest.PointUUID(v.Uuid), nil
	}
	return nil, invalidVariant("point id", id)
}

func validateUUID(s string) error {
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPointID, s, err)
	}
	return nil
}

// ToGrpcPointIDs converts ids element-wise, preserving order.
func ToGrpcPointIDs(ids []rest.ExtendedPointID) ([]*qdrant.PointId, error) {
	if ids == nil {
		return nil, nil
	}
	out := make([]*qdrant.PointId, 0, len(ids))
	for i, id := range ids {
		converted, err := ToGrpcPointID(id)
		if err != nil {
			return nil, field(fmt.Sprintf("[%d]", i), err)
		}
		out = append(out, converted)
	}
	return out, nil
}

// ToRestPointIDs converts ids element-wise, preserving order.
func ToRestPointIDs(ids []*qdrant.PointId) ([]rest.ExtendedPointID, error) {
	if ids == nil {
		return nil, nil
	}
	out := make([]rest.ExtendedPointID, 0, len(ids))
	for i, id := range ids {
		converted, err := ToRestPointID(id)
		if err != nil {
			return nil, field(fmt.Sprintf("[%d]", i), err)
		}
		out = append(out, converted)
	}
	return out, nil
}

// ToGrpcPointsSelector converts an id list or filter selector.
func ToGrpcPointsSelector(s rest.PointsSelector) (*qdrant.PointsSelector, error) {
	switch s := s.(type) {
	case *rest.PointIDsList:
		if s == nil {
			break
		}
		ids, err := ToGrpcPointIDs(s.Points)
		if err != nil {
			return nil, field("points", err)
		}
		return qdrant.NewPointsSelector(ids...), nil
	case *rest.FilterSelector:
		if s == nil || s.Filter == nil {
			break
		}
		f, err := ToGrpcFilter(s.Filter)
		if err != nil {
			return nil, field("filter", err)
		}
		return &qdrant.PointsSelector{PointsSelectorOneOf: &qdrant.PointsSelector_Filter{Filter: f}}, nil
	}
	return nil, invalidVariant("points selector", s)
}

func ToRestPointsSelector(s *qdrant.PointsSelector) (rest.PointsSelector, error) {
	switch v := s.GetPointsSelectorOneOf().(type) {
	case *qdrant.PointsSelector_Points:
		if v.Points == nil {
			break
		}
		ids, err := ToRestPointIDs(v.Points.GetIds())
		if err != nil {
			return nil, field("points", err)
		}
		return &rest.PointIDsList{Points: ids}, nil
	case *qdrant.PointsSelector_Filter:
		if v.Filter == nil {
			break
		}
		f, err := ToRestFilter(v.Filter)
		if err != nil {
			return nil, field("filter", err)
		}
		return &rest.FilterSelector{Filter: f}, nil
	}
	return nil, invalidVariant("points selector", s)
}
