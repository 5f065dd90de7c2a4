package web

import "embed"

// FS contains the UI page templates and static assets.
//
//go:embed templates static
var FS embed.FS
