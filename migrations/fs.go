// Package migrations embeds the goose SQL migration files so the
// compiled binary carries its own schema and cmd/server can migrate on
// startup without a separate deploy step.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
