package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/metrics"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/migrate"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/report"
)

type fakeEndpoint struct {
	*migrate.MockClient
	closed int
}

func (f *fakeEndpoint) Close() error {
	f.closed++
	return nil
}

func testConfig() *Config {
	m := metrics.DefaultConfig()
	m.Address = ""
	return &Config{
		Metrics:     m,
		Source:      EndpointConfig{Transport: TransportGrpc},
		Destination: EndpointConfig{Transport: TransportGrpc},
		Migrate:     migrate.DefaultConfig(),
		Logger:      logger.Config{Level: logger.Error},
		Report:      report.DefaultConfig(),
	}
}

func staticDialer(source, dest Endpoint) Dialer {
	return func(_ context.Context, role string, _ EndpointConfig, _ *logger.Logger) (Endpoint, error) {
		if role == "source" {
			return source, nil
		}
		return dest, nil
	}
}

func waitExit(t *testing.T, app *fxtest.App) int {
	t.Helper()
	select {
	case sig := <-app.Wait():
		return sig.ExitCode
	case <-time.After(10 * time.Second):
		t.Fatal("app did not shut down")
		return -1
	}
}

func TestApp_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := &fakeEndpoint{MockClient: migrate.NewMockClient(ctrl)}
	dest := &fakeEndpoint{MockClient: migrate.NewMockClient(ctrl)}

	source.EXPECT().ListCollections(gomock.Any()).Return([]string{}, nil)
	dest.EXPECT().ListCollections(gomock.Any()).Return([]string{}, nil)

	app := fxtest.New(t, appOptions(testConfig(), staticDialer(source, dest)))
	app.RequireStart()

	assert.Equal(t, exitOK, waitExit(t, app))
	app.RequireStop()

	assert.Equal(t, 1, source.closed)
	assert.Equal(t, 1, dest.closed)
}

func TestApp_MigrationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := &fakeEndpoint{MockClient: migrate.NewMockClient(ctrl)}
	dest := &fakeEndpoint{MockClient: migrate.NewMockClient(ctrl)}

	source.EXPECT().ListCollections(gomock.Any()).Return(nil, errors.New("connection reset"))

	app := fxtest.New(t, appOptions(testConfig(), staticDialer(source, dest)))
	app.RequireStart()

	assert.Equal(t, exitFailed, waitExit(t, app))
	app.RequireStop()
}

func TestNewEndpoints_ClosesSourceWhenDestinationFails(t *testing.T) {
	source := &fakeEndpoint{}
	dialer := func(_ context.Context, role string, _ EndpointConfig, _ *logger.Logger) (Endpoint, error) {
		if role == "source" {
			return source, nil
		}
		return nil, errors.New("refused")
	}

	var endpoints *Endpoints
	app := fx.New(
		fx.NopLogger,
		fx.Supply(testConfig(), logger.NewLoggerClient(logger.Config{Level: logger.Error})),
		fx.Supply(Dialer(dialer)),
		fx.Provide(NewEndpoints),
		fx.Populate(&endpoints),
	)

	err := app.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect destination")
	assert.Equal(t, 1, source.closed)
}

func TestDial_UnknownTransport(t *testing.T) {
	_, err := dial(context.Background(), "source", EndpointConfig{Transport: "smtp"},
		logger.NewLoggerClient(logger.Config{Level: logger.Error}))
	assert.ErrorContains(t, err, `unknown transport "smtp"`)
}
