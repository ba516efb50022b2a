package database

// Code generation for the database package.
//
// schema.sql is rebuilt from the migration files, then sqlc regenerates the
// query code from it:
//   go generate ./internal/database

//go:generate sh -c "cd ../.. && go run internal/database/tools/generate_schema.go"
//go:generate sh -c "cd ../.. && sqlc generate -f internal/database/sqlc/sqlc.yaml"
