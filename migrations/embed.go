// Package migrations embeds the versioned schema for both databases.
// Applied by the migrate:up / migrate:down commands, never at server
// startup.
package migrations

import "embed"

//go:embed main/*.sql special/*.sql
var FS embed.FS
