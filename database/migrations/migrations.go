// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// This package is imported by cmd/pawmart/main.go so every migration is
// registered at CLI startup.
package migrations
