package migrate

import "fmt"

// CollisionAction decides what happens to requested collections that
// already exist at the destination.
type CollisionAction string

const (
	// Raise aborts the run before any write.
	Raise CollisionAction = "Raise"

	// Recreate replaces the existing collections.
	Recreate CollisionAction = "Recreate"

	// Skip leaves existing collections alone and migrates the rest.
	Skip CollisionAction = "Skip"
)

// DefaultBatchSize is the scroll and upload page size.
const DefaultBatchSize = 100

// ParseCollisionAction maps "Raise" and "Skip" (case-sensitive) to their
// actions. Every other value, including the empty string, is Recreate.
func ParseCollisionAction(s string) CollisionAction {
	switch CollisionAction(s) {
	case Raise:
		return Raise
	case Skip:
		return Skip
	default:
		return Recreate
	}
}

func (a CollisionAction) String() string { return string(a) }

// Config is the file and environment form of Options.
type Config struct {
	// Collections to migrate. Empty means every source collection.
	Collections []string `yaml:"collections" mapstructure:"collections" envconfig:"MIGRATE_COLLECTIONS"`

	// OnCollision is Raise, Skip or anything else for Recreate.
	OnCollision string `yaml:"on_collision" mapstructure:"on_collision" envconfig:"MIGRATE_ON_COLLISION"`

	BatchSize int `yaml:"batch_size" mapstructure:"batch_size" envconfig:"MIGRATE_BATCH_SIZE"`

	// ContinueOnError keeps migrating the remaining collections after one
	// fails and returns all failures at the end.
	ContinueOnError bool `yaml:"continue_on_error" mapstructure:"continue_on_error" envconfig:"MIGRATE_CONTINUE_ON_ERROR"`
}

func DefaultConfig() Config {
	return Config{
		OnCollision: string(Raise),
		BatchSize:   DefaultBatchSize,
	}
}

// Options returns the run options the config describes.
func (c Config) Options() Options {
	return Options{
		Collections:     c.Collections,
		OnCollision:     ParseCollisionAction(c.OnCollision),
		BatchSize:       c.BatchSize,
		ContinueOnError: c.ContinueOnError,
	}
}

// Options controls one migration run.
type Options struct {
	Collections     []string
	OnCollision     CollisionAction
	BatchSize       int
	ContinueOnError bool
}

func DefaultOptions() Options {
	return DefaultConfig().Options()
}

func (o Options) WithCollections(names ...string) Options {
	o.Collections = names
	return o
}

func (o Options) WithCollisionAction(a CollisionAction) Options {
	o.OnCollision = a
	return o
}

func (o Options) WithBatchSize(n int) Options {
	o.BatchSize = n
	return o
}

func (o Options) WithContinueOnError(v bool) Options {
	o.ContinueOnError = v
	return o
}

// Validate checks the batch size.
func (o Options) Validate() error {
	if o.BatchSize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, o.BatchSize)
	}
	return nil
}
