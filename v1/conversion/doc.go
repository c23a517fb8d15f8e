// Package conversion maps Qdrant entities between the REST/JSON model
// (package rest) and the gRPC model (github.com/qdrant/go-client/qdrant).
//
// Every entity has a pair of pure functions, ToGrpcX and ToRestX. They hold
// no state, log nothing and never fill in defaults: an absent nested config
// converts to an absent config.
//
// # Errors
//
// Conversion fails instead of guessing:
//
//   - ErrInvalidVariant: a polymorphic value has no variant set, has a
//     variant this model cannot express, or sets more than one constraint
//     where only one is allowed.
//   - ErrUnsupportedEnum: an enum value has no counterpart.
//   - ErrInvalidPointID: a UUID point id does not parse.
//   - ErrMissingField: a required nested message is absent.
//
// Errors wrap the sentinels and name the offending field, so callers branch
// with errors.Is:
//
//	filter, err := conversion.ToGrpcFilter(restFilter)
//	if errors.Is(err, conversion.ErrInvalidVariant) {
//	    // reject the request
//	}
package conversion
