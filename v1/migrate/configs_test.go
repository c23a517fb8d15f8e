package migrate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
)

func TestParseCollisionAction(t *testing.T) {
	tests := []struct {
		in   string
		want CollisionAction
	}{
		{"Raise", Raise},
		{"Skip", Skip},
		{"Recreate", Recreate},
		{"", Recreate},
		{"raise", Recreate},
		{"anything", Recreate},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCollisionAction(tt.in))
		})
	}
}

func TestConfig_Options(t *testing.T) {
	opts := DefaultConfig().Options()
	assert.Equal(t, Raise, opts.OnCollision)
	assert.Equal(t, DefaultBatchSize, opts.BatchSize)
	assert.False(t, opts.ContinueOnError)
	require.NoError(t, opts.Validate())

	cfg := Config{Collections: []string{"a"}, OnCollision: "Skip", BatchSize: 7, ContinueOnError: true}
	assert.Equal(t, Options{Collections: []string{"a"}, OnCollision: Skip, BatchSize: 7, ContinueOnError: true}, cfg.Options())
}

func TestErrors_Is(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", &CollisionError{Collections: []string{"b", "c"}})
	assert.True(t, IsCollisionError(wrapped))
	assert.Contains(t, wrapped.Error(), "b, c")
	assert.False(t, errors.Is(wrapped, ErrCountMismatch))

	mismatch := &CountMismatchError{Collection: "docs", Source: 100, Destination: 99}
	assert.True(t, errors.Is(mismatch, ErrCountMismatch))
	assert.Contains(t, mismatch.Error(), "source has 100 points, destination has 99")

	missing := &MissingCollectionsError{Collections: []string{"z"}}
	assert.True(t, errors.Is(missing, ErrMissingCollections))
	assert.False(t, errors.Is(missing, ErrCollision))
}

func TestFXModule(t *testing.T) {
	var m *Migrator
	app := fxtest.New(t,
		fx.Supply(logger.NewFromZap(zaptest.NewLogger(t), false)),
		FXModule,
		fx.Populate(&m),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, m)
	source := newMemClient().withCollection("docs", 3)
	rep, err := m.Migrate(context.Background(), source, newMemClient(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Count("migrated"))
}
