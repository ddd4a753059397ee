// Package migrations embeds the SQL schema for the PostgreSQL key-value backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
