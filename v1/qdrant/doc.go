// Package qdrant talks to a Qdrant server over gRPC while exposing the REST
// data model to its callers.
//
// Every value crossing the package boundary is converted with the
// conversion package, so a Client can stand in wherever a migrate.Client is
// expected, next to the HTTP client in qdranthttp.
//
// # Basic Usage
//
//	cfg := qdrant.FromEndpoint("localhost").WithPort(6334)
//	client, err := qdrant.NewClient(cfg, log)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	names, err := client.ListCollections(ctx)
//
// # Fx Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Supply(cfg),
//	    qdrant.FXModule,
//	)
//
// NewClient runs a health check before returning, so a misconfigured endpoint
// fails at startup rather than on the first request.
//
// # Configuration
//
// Config fields carry yaml and mapstructure tags and can be loaded from a
// file or the environment:
//
//	QDRANT_ENDPOINT=localhost
//	QDRANT_PORT=6334
//	QDRANT_API_KEY=...
//	QDRANT_USE_TLS=false
//	QDRANT_TIMEOUT=60s
//
// # Thread Safety
//
// Client is safe for concurrent use. Close is idempotent.
package qdrant
