// Package rest holds the JSON wire model of the Qdrant REST API.
//
// The types mirror the request and response bodies the REST API accepts and
// returns. Polymorphic shapes (conditions, match clauses, point ids, alias
// operations, vector configs, quantization configs, payload field schemas,
// point selectors and vector structs) are modelled as interfaces with an
// unexported marker method, so a value always holds exactly one variant.
//
// Decoding inspects the JSON keys to pick the concrete variant, the same way
// the filter condition set is decoded:
//
//	var f rest.Filter
//	if err := json.Unmarshal([]byte(`{"must":[{"key":"city","match":{"value":"Berlin"}}]}`), &f); err != nil {
//	    return err
//	}
//	field := f.Must[0].(*rest.FieldCondition)
//
// Shapes that match no variant, or more than one, fail with ErrUnknownVariant.
//
// The package has no dependency on the gRPC model; see package conversion for
// the mapping between the two.
package rest
