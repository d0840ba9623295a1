// Package postgresengine provides the PostgreSQL query and persistence
// engine for the gathering backend.
//
// All SQL is composed dynamically with goqu: optional search filters become
// a conjunction of predicates where unset fields contribute nothing, the
// listings left-join the participation rows and aggregate them into
// participant counts, and ordering always ranks past gatherings after
// upcoming ones.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Conditional predicate composition for search and review listings
//   - Slice pagination with the exactly-full-page hasNext approximation
//   - Transactional write paths (gathering creation with host auto-join,
//     participant registration with deadline and capacity checks)
//   - Configurable table prefix and structured logging
//
// Usage:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		db,
//		postgresengine.WithLogger(logger),
//	)
//
//	page, _ := store.SearchGatherings(ctx, condition, sort, pageRequest)
package postgresengine
