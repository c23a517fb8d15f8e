package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownVariant is returned when a JSON document does not match exactly
// one variant of a polymorphic type.
var ErrUnknownVariant = errors.New("unknown variant")

func unknownVariant(kind string, data []byte) error {
	return fmt.Errorf("%w: %s %s", ErrUnknownVariant, kind, string(data))
}

// hasKey checks if a JSON object contains a specific key.
func hasKey(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}

// countKeys returns how many of the given keys are present in m.
func countKeys(m map[string]json.RawMessage, keys ...string) int {
	n := 0
	for _, k := range keys {
		if hasKey(m, k) {
			n++
		}
	}
	return n
}

// isNull reports whether raw is empty or the JSON literal null.
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// firstByte returns the first non-space byte of raw, or 0.
func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// decodeNumberPreserving decodes data keeping JSON numbers as json.Number,
// so integer payload values are not widened to float64.
func decodeNumberPreserving(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
