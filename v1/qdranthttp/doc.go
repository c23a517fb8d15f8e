// Package qdranthttp is a client for the Qdrant REST API that exchanges the
// rest data model as-is. It implements migrate.Client, so a migration can
// read from or write to a server that only exposes HTTP.
//
//	client, err := qdranthttp.NewClient(ctx, &qdranthttp.Config{
//	    URL:    "https://qdrant.internal:6333",
//	    ApiKey: os.Getenv("QDRANT_API_KEY"),
//	}, log)
//
// Every response except the root endpoint is wrapped in a
// {"result": ..., "status": ...} envelope. Non-2xx responses are returned as
// *StatusError with the server's error text.
package qdranthttp
