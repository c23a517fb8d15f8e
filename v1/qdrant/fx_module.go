package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
)

// FXModule provides a gRPC *Client built from a *Config in the container
// and closes it when the application stops.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Supply(qdrant.FromEndpoint("localhost")),
//	    qdrant.FXModule,
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams defines dependencies needed to construct the Qdrant client.
type QdrantParams struct {
	fx.In
	Config *Config
	Logger *logger.Logger
}

// NewClientWithDI builds a Client from injected dependencies.
func NewClientWithDI(p QdrantParams) (*Client, error) {
	return NewClient(p.Config, p.Logger)
}

// RegisterQdrantLifecycle closes the client on shutdown.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
