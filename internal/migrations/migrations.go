// Package migrations embeds the versioned SQL schema migrations so the
// binary carries its own schema and never depends on a migrations directory
// existing on the device.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
