// Package migrations embebe el esquema SQL que goose aplica al arrancar.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
