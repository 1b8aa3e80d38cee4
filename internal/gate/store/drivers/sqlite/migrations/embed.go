package migrations

import "embed"

// Migrations holds the .sql files compiled into the binary.
//
//go:embed *.sql
var Migrations embed.FS
