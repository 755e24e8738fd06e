// Package postgres provides the PostgreSQL implementations of the
// persistence ports defined in internal/store. It handles query
// execution, mapping between domain entities and rows, and translating
// driver errors into the store package's sentinel errors.
package postgres
