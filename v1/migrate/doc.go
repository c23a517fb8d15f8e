// Package migrate copies Qdrant collections from one endpoint to another.
//
// Both endpoints are reached through the Client interface, which carries
// values in the REST model; package qdrant implements it over gRPC and
// package qdranthttp over HTTP, so any pair of transports can be mixed.
//
// A run goes through these steps:
//
//  1. SelectSourceCollections: the requested names, or every source
//     collection. Unknown names abort the run with *MissingCollectionsError.
//  2. FindCollisions: requested names that already exist at the destination.
//  3. The collision action: Raise aborts with *CollisionError before any
//     write, Skip drops the colliding names, Recreate replaces them.
//  4. For each collection, in name order:
//     RecreateCollection copies the settings and payload indexes, then
//     MigrateCollectionData scrolls the source in batches, uploads every
//     page and compares exact point counts (*CountMismatchError).
//
// Nothing is rolled back. A failure in the middle of a copy leaves the
// destination collection partly filled.
//
// Basic usage:
//
//	m := migrate.NewMigrator(log, nil, nil)
//	opts := migrate.DefaultOptions().
//		WithCollections("articles", "images").
//		WithCollisionAction(migrate.Skip)
//
//	rep, err := m.Migrate(ctx, source, dest, opts)
//	if errors.Is(err, migrate.ErrCollision) {
//		// nothing was written
//	}
//
// The returned *report.Report lists the outcome of every collection.
package migrate
