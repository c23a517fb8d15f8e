package qdrant

import (
	"context"
	"fmt"
	"sync"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// Logger is the logging surface of the client.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// api is the part of *qdrant.Client this package calls.
type api interface {
	HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error)
	ListCollections(ctx context.Context) ([]string, error)
	CollectionExists(ctx context.Context, name string) (bool, error)
	GetCollectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	DeleteCollection(ctx context.Context, name string) error
	CreateFieldIndex(ctx context.Context, request *qdrant.CreateFieldIndexCollection) (*qdrant.UpdateResult, error)
	ScrollAndOffset(ctx context.Context, request *qdrant.ScrollPoints) ([]*qdrant.RetrievedPoint, *qdrant.PointId, error)
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Count(ctx context.Context, request *qdrant.CountPoints) (uint64, error)
	UpdateAliases(ctx context.Context, actions []*qdrant.AliasOperations) error
	Close() error
}

// Client talks to Qdrant over gRPC and exchanges REST-model values with
// its callers. It implements migrate.Client.
type Client struct {
	api       api
	sdk       *qdrant.Client
	cfg       *Config
	logger    Logger
	closeOnce sync.Once
}

// NewClient connects to Qdrant and fails fast when the health check does
// not pass.
//
// Example:
//
//	client, err := qdrant.NewClient(qdrant.FromEndpoint("localhost"), log)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func NewClient(cfg *Config, logger Logger) (*Client, error) {
	port := cfg.Port
	if port == 0 {
		port = DefaultGrpcPort
	}

	logger.Info("Connecting to Qdrant", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     port,
		"tls":      cfg.UseTLS,
	})

	keepAlive := 0
	if !cfg.KeepAlive {
		keepAlive = -1
	}

	sdk, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		PoolSize:               cfg.PoolSize,
		KeepAliveTime:          keepAlive,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	c := newClient(sdk, cfg, logger)
	c.sdk = sdk

	if err := c.healthCheck(); err != nil {
		_ = sdk.Close()
		return nil, err
	}

	logger.Info("Qdrant client connected", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
	})
	return c, nil
}

func newClient(a api, cfg *Config, logger Logger) *Client {
	return &Client{api: a, cfg: cfg, logger: logger}
}

// healthCheck calls the health endpoint within the connect timeout.
func (c *Client) healthCheck() error {
	timeout := c.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	c.logger.Debug("Qdrant health check passed", nil, map[string]interface{}{
		"title":    resp.GetTitle(),
		"version":  resp.GetVersion(),
		"endpoint": c.cfg.Endpoint,
	})
	return nil
}

// SDK returns the underlying Qdrant SDK client, or nil for a client not
// built by NewClient.
func (c *Client) SDK() *qdrant.Client {
	return c.sdk
}

// Close closes the gRPC connections. It is safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.api.Close()
		c.logger.Info("Qdrant client closed", err, map[string]interface{}{
			"endpoint": c.cfg.Endpoint,
		})
	})
	return err
}

// withTimeout bounds ctx by the configured request timeout.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}
