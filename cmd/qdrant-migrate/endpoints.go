package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/migrate"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/qdrant"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/qdranthttp"
)

// Endpoint is a connected Qdrant client of either transport.
type Endpoint interface {
	migrate.Client
	Close() error
}

// Endpoints are the two sides of a migration.
type Endpoints struct {
	Source      Endpoint
	Destination Endpoint
}

// Dialer opens an Endpoint from its config.
type Dialer func(ctx context.Context, role string, cfg EndpointConfig, log *logger.Logger) (Endpoint, error)

// dial connects over the configured transport.
func dial(ctx context.Context, role string, cfg EndpointConfig, log *logger.Logger) (Endpoint, error) {
	log.Info("Connecting endpoint", nil, map[string]interface{}{
		"role":      role,
		"transport": cfg.Transport,
	})
	var (
		client Endpoint
		err    error
	)
	switch cfg.Transport {
	case TransportGrpc:
		client, err = qdrant.NewClient(&cfg.Grpc, log)
	case TransportRest:
		client, err = qdranthttp.NewClient(ctx, &cfg.Rest, log)
	default:
		err = fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", role, err)
	}
	return client, nil
}

type EndpointsParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *Config
	Logger    *logger.Logger
	Dialer    Dialer
}

// NewEndpoints connects both sides and closes them when the app stops.
func NewEndpoints(p EndpointsParams) (*Endpoints, error) {
	ctx := context.Background()

	source, err := p.Dialer(ctx, "source", p.Config.Source, p.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect source: %w", err)
	}
	dest, err := p.Dialer(ctx, "destination", p.Config.Destination, p.Logger)
	if err != nil {
		_ = source.Close()
		return nil, fmt.Errorf("failed to connect destination: %w", err)
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.Join(source.Close(), dest.Close())
		},
	})
	return &Endpoints{Source: source, Destination: dest}, nil
}
