// Package ui embeds the HTML templates and static assets so the server
// binary is self-contained.
package ui

import "embed"

//go:embed "html" "static"
var Files embed.FS
