// Package postgres provides PostgreSQL implementations of the store
// interfaces. All implementations accept a store.DBTX so they work both
// on a bare connection pool and inside a transaction, and map driver
// errors to the store sentinel errors.
package postgres
