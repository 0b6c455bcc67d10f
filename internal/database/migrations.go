package database

import "embed"

// Migrations holds the schema migrations under [MigrationsDir].
//
//go:embed migrations/*.sql
var Migrations embed.FS
