// Package web provides the embedded static assets for the marketing site
// shell. The API serves JSON; everything under web/static/ is the landing
// page and admin panel bundle served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
