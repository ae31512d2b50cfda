// Package migrations embeds the SQL schema for every supported database driver.
package migrations

import "embed"

// FS holds one directory of numbered migrations per dialect: postgresql, mysql and sqlite3.
//
//go:embed postgresql/*.sql mysql/*.sql sqlite3/*.sql
var FS embed.FS
