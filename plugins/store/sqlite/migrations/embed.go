package migrations

import "embed"

// FS 内嵌记录存储的 SQLite 迁移脚本。
//
//go:embed *.sql
var FS embed.FS
