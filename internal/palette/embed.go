// Package palette provides the embedded colour scheme used to draw mazes.
package palette

import "embed"

// dataFS embeds the palette definition at build time.
//
//go:embed palette.json
var dataFS embed.FS
