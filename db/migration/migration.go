// Package migration embeds the schema migrations of every supported
// save backend, one directory per database driver.
package migration

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
