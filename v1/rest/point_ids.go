package rest

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ExtendedPointID identifies a point. It is either a PointNum or a PointUUID.
type ExtendedPointID interface {
	isExtendedPointID()
	String() string
}

// PointNum is an unsigned integer point id. It is encoded as a JSON number.
type PointNum uint64

func (PointNum) isExtendedPointID() {}

func (p PointNum) String() string { return strconv.FormatUint(uint64(p), 10) }

// PointUUID is a UUID point id. It is encoded as a JSON string.
type PointUUID string

func (PointUUID) isExtendedPointID() {}

func (p PointUUID) String() string { return string(p) }

// DecodePointID parses a JSON number or string into an ExtendedPointID.
// Negative or fractional numbers are rejected.
func DecodePointID(data []byte) (ExtendedPointID, error) {
	switch firstByte(data) {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return PointUUID(s), nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		u, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: point id %s is not an unsigned integer", ErrUnknownVariant, n)
		}
		return PointNum(u), nil
	default:
		return nil, unknownVariant("point id", data)
	}
}

// decodeOptionalPointID returns nil for an absent or null id.
func decodeOptionalPointID(raw json.RawMessage) (ExtendedPointID, error) {
	if isNull(raw) {
		return nil, nil
	}
	return DecodePointID(raw)
}

func decodePointIDs(raws []json.RawMessage) ([]ExtendedPointID, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	ids := make([]ExtendedPointID, 0, len(raws))
	for i, raw := range raws {
		id, err := DecodePointID(raw)
		if err != nil {
			return nil, fmt.Errorf("point id %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
