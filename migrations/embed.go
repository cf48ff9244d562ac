// Package migrations holds the PostgreSQL schema applied at start-up and in tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
