package database

import _ "embed"

// Schema is the full schema produced by the migrations, used to set up test databases.
//
//go:embed sqlc/schema.sql
var Schema string
