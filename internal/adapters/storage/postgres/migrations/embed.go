// Package migrations embebe los SQL de goose.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
