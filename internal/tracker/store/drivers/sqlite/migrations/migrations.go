// Package migrations carries the embedded SQL migration files applied by
// the sqlite driver at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
