package migration

import "embed"

// scripts holds the versioned SQL migrations, one directory per dialect
//
//go:embed scripts/mysql/*.sql scripts/sqlite/*.sql
var scripts embed.FS
