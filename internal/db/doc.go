// Package db opens the database connections used by the PostgreSQL and
// SQLite sinks. Both connectors retry transient failures before giving up.
package db
