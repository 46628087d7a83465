// Package webui exposes the embedded canvas frontend filesystem.
// It lives at the module root so go:embed can reach the sibling "web/"
// directory; internal/server/embed.go serves it.
package webui

import "embed"

// FS is the embedded web directory tree. web/dist holds the production
// canvas build when present; web/index.html is the development skeleton.
//
//go:embed web
var FS embed.FS
