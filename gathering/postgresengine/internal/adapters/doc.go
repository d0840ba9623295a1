// Package adapters provides database abstractions for the gathering store.
//
// It wraps pgx pools, database/sql and sqlx connections behind the common
// DBAdapter interface so the query engine stays independent of the concrete
// driver. Transactions are exposed through DBTx for the write paths.
package adapters
