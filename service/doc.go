// Package service contains the application services of the gathering
// backend: GatheringService for creating, joining and listing gatherings,
// and ReviewService for writing and reading reviews.
//
// The services depend on small consumer-defined store interfaces so tests
// can substitute fakes; the Postgres implementations live in
// gathering/postgresengine. All operations are single-request scoped: the
// services never spawn background work and report failures synchronously.
package service
