package migrate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/report"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/rest"
)

// CopyStats describes one collection data copy.
type CopyStats struct {
	// Batches is the number of scroll pages read.
	Batches int

	// Points is the number of records uploaded.
	Points uint64

	SourceCount      uint64
	DestinationCount uint64
}

// Migrate copies the requested collections from source to dest.
//
// Collections that already exist at dest are handled per opts.OnCollision.
// With Raise nothing is written when there is a collision. Collections are
// processed one at a time in name order; each is recreated, its payload
// indexes restored, its points copied and the point counts compared.
//
// The returned report is never nil. By default the first failing collection
// ends the run; with opts.ContinueOnError the remaining collections are
// still processed and every failure is returned joined.
func (m *Migrator) Migrate(ctx context.Context, source, dest Client, opts Options) (*report.Report, error) {
	rep := report.New(opts.OnCollision.String(), opts.BatchSize)
	err := m.migrate(ctx, source, dest, opts, rep)
	rep.Finish(err)
	return rep, err
}

func (m *Migrator) migrate(ctx context.Context, source, dest Client, opts Options, rep *report.Report) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	ctx, span := m.tracer.StartSpan(ctx, "migrate")
	defer span.End()
	m.tracer.SetAttributes(span, map[string]interface{}{
		"run_id":       rep.RunID,
		"on_collision": opts.OnCollision.String(),
		"batch_size":   opts.BatchSize,
	})

	names, err := m.SelectSourceCollections(ctx, source, opts.Collections)
	if err != nil {
		m.tracer.RecordErrorOnSpan(span, err)
		return err
	}

	collisions, err := m.FindCollisions(ctx, dest, names)
	if err != nil {
		m.tracer.RecordErrorOnSpan(span, err)
		return err
	}

	if len(collisions) > 0 {
		switch opts.OnCollision {
		case Raise:
			err := &CollisionError{Collections: collisions}
			m.logger.Error("Destination already has requested collections", err, map[string]interface{}{
				"collections": collisions,
			})
			m.tracer.RecordErrorOnSpan(span, err)
			return err

		case Skip:
			m.logger.Warn("Skipping collections that exist at destination", nil, map[string]interface{}{
				"collections": collisions,
			})
			for _, name := range collisions {
				rep.Add(report.CollectionResult{Name: name, Status: report.StatusSkipped})
				m.recorder.CollectionFinished(string(report.StatusSkipped))
			}
			names = lo.Without(names, collisions...)
			collisions = nil

		default:
			m.logger.Warn("Recreating collections that exist at destination", nil, map[string]interface{}{
				"collections": collisions,
			})
		}
	}

	m.logger.Info("Starting migration", nil, map[string]interface{}{
		"run_id":      rep.RunID,
		"collections": names,
		"batch_size":  opts.BatchSize,
	})

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result, err := m.migrateCollection(ctx, source, dest, name, opts.BatchSize)
		result.Replaced = slices.Contains(collisions, name)
		rep.Add(result)
		m.recorder.CollectionFinished(string(result.Status))

		if err != nil {
			m.logger.Error("Failed to migrate collection", err, map[string]interface{}{
				"collection": name,
			})
			if !opts.ContinueOnError {
				m.tracer.RecordErrorOnSpan(span, err)
				return err
			}
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		m.tracer.RecordErrorOnSpan(span, err)
		return err
	}
	return nil
}

func (m *Migrator) migrateCollection(ctx context.Context, source, dest Client, name string, batchSize int) (report.CollectionResult, error) {
	start := time.Now()
	result := report.CollectionResult{Name: name, Status: report.StatusFailed}

	ctx, span := m.tracer.StartSpan(ctx, "migrate.collection")
	defer span.End()
	m.tracer.SetAttributes(span, map[string]interface{}{"collection": name})

	fail := func(err error) (report.CollectionResult, error) {
		result.Duration = time.Since(start)
		result.Error = err.Error()
		m.tracer.RecordErrorOnSpan(span, err)
		return result, err
	}

	if err := m.RecreateCollection(ctx, source, dest, name); err != nil {
		return fail(err)
	}

	stats, err := m.MigrateCollectionData(ctx, source, dest, name, batchSize)
	if stats != nil {
		result.Batches = stats.Batches
		result.SourceCount = stats.SourceCount
		result.DestinationCount = stats.DestinationCount
	}
	if err != nil {
		return fail(err)
	}

	result.Status = report.StatusMigrated
	result.Duration = time.Since(start)
	m.logger.Info("Migrated collection", nil, map[string]interface{}{
		"collection": name,
		"points":     stats.Points,
		"batches":    stats.Batches,
		"duration":   result.Duration.String(),
	})
	return result, nil
}

// SelectSourceCollections returns the collections to migrate in name order.
// With no requested names it returns every source collection. Requested
// names the source does not have fail with *MissingCollectionsError.
func (m *Migrator) SelectSourceCollections(ctx context.Context, source Client, requested []string) ([]string, error) {
	available, err := source.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Migrate] failed to list source collections: %w", err)
	}

	if len(requested) == 0 {
		return sorted(available), nil
	}

	if missing := lo.Without(requested, available...); len(missing) > 0 {
		return nil, &MissingCollectionsError{Collections: sorted(missing)}
	}
	return sorted(requested), nil
}

// FindCollisions returns the names that already exist at dest, in name order.
func (m *Migrator) FindCollisions(ctx context.Context, dest Client, names []string) ([]string, error) {
	existing, err := dest.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("[Migrate] failed to list destination collections: %w", err)
	}
	return sorted(lo.Intersect(names, existing)), nil
}

// RecreateCollection creates or replaces the collection at dest with the
// source's settings and then recreates every payload index of the source.
func (m *Migrator) RecreateCollection(ctx context.Context, source, dest Client, name string) error {
	info, err := source.GetCollection(ctx, name)
	if err != nil {
		return fmt.Errorf("[Migrate] failed to get source collection %q: %w", name, err)
	}

	create, err := CreateCollectionFromConfig(info.Config)
	if err != nil {
		return fmt.Errorf("[Migrate] cannot recreate collection %q: %w", name, err)
	}

	fields := lo.Keys(info.PayloadSchema)
	slices.Sort(fields)
	schemas := make([]rest.PayloadFieldSchema, 0, len(fields))
	for _, field := range fields {
		schema, err := FieldSchema(info.PayloadSchema[field])
		if err != nil {
			return fmt.Errorf("[Migrate] cannot recreate payload index %q on collection %q: %w", field, name, err)
		}
		schemas = append(schemas, schema)
	}

	if err := dest.CreateOrReplaceCollection(ctx, name, create); err != nil {
		return fmt.Errorf("[Migrate] failed to create collection %q: %w", name, err)
	}

	for i, field := range fields {
		if err := dest.CreatePayloadIndex(ctx, name, field, schemas[i]); err != nil {
			return fmt.Errorf("[Migrate] failed to create payload index %q on collection %q: %w", field, name, err)
		}
	}

	m.logger.Info("Recreated collection", nil, map[string]interface{}{
		"collection":     name,
		"payload_fields": fields,
	})
	return nil
}

// MigrateCollectionData pages through the source collection batchSize
// records at a time, with payloads and vectors, and uploads every page to
// dest in order. It stops when the source returns no next offset and then
// compares exact point counts; a difference is a *CountMismatchError.
// Stats are returned alongside any error once copying has started.
func (m *Migrator) MigrateCollectionData(ctx context.Context, source, dest Client, name string, batchSize int) (*CopyStats, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}

	stats := &CopyStats{}
	var offset rest.ExtendedPointID
	for {
		if err := m.copyBatch(ctx, source, dest, name, batchSize, &offset, stats); err != nil {
			return stats, err
		}
		if offset == nil {
			break
		}
	}

	var err error
	if stats.SourceCount, err = source.CountPoints(ctx, name); err != nil {
		return stats, fmt.Errorf("[Migrate] failed to count source points in %q: %w", name, err)
	}
	if stats.DestinationCount, err = dest.CountPoints(ctx, name); err != nil {
		return stats, fmt.Errorf("[Migrate] failed to count destination points in %q: %w", name, err)
	}

	if stats.SourceCount != stats.DestinationCount {
		return stats, &CountMismatchError{
			Collection:  name,
			Source:      stats.SourceCount,
			Destination: stats.DestinationCount,
		}
	}
	return stats, nil
}

// copyBatch reads the page at *offset, uploads it and advances *offset.
func (m *Migrator) copyBatch(ctx context.Context, source, dest Client, name string, batchSize int, offset *rest.ExtendedPointID, stats *CopyStats) error {
	start := time.Now()
	ctx, span := m.tracer.StartSpan(ctx, "migrate.batch")
	defer span.End()

	records, next, err := source.Scroll(ctx, name, ScrollRequest{
		Offset:      *offset,
		Limit:       uint32(batchSize),
		WithPayload: true,
		WithVectors: true,
	})
	if err != nil {
		err = fmt.Errorf("[Migrate] failed to scroll collection %q: %w", name, err)
		m.tracer.RecordErrorOnSpan(span, err)
		return err
	}

	if len(records) > 0 {
		if err := dest.Upload(ctx, name, records); err != nil {
			err = fmt.Errorf("[Migrate] failed to upload %d points to %q: %w", len(records), name, err)
			m.tracer.RecordErrorOnSpan(span, err)
			return err
		}
		stats.Points += uint64(len(records))
		m.recorder.PointsCopied(name, len(records))
	}
	stats.Batches++
	m.recorder.ObserveBatch(name, start)

	m.tracer.SetAttributes(span, map[string]interface{}{
		"collection": name,
		"batch":      stats.Batches,
		"points":     len(records),
	})
	m.logger.Debug("Copied batch", nil, map[string]interface{}{
		"collection": name,
		"batch":      stats.Batches,
		"points":     len(records),
	})

	if sameOffset(*offset, next) {
		err := fmt.Errorf("[Migrate] scroll of %q did not advance past offset %s", name, next)
		m.tracer.RecordErrorOnSpan(span, err)
		return err
	}
	*offset = next
	return nil
}
