// Package store defines the persistence ports for the application's
// domain entities. Each interface describes what the service layer needs
// from storage; the concrete PostgreSQL implementations live in
// internal/platform/postgres.
//
// Methods that touch multiple rows (bulk review updates, content
// replacement) document a transaction requirement: obtain a
// transaction-scoped store via WithTx inside store.RunInTransaction so
// the whole mutation commits or rolls back as one unit.
package store
