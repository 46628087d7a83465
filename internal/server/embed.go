// Static hosting of the embedded canvas frontend.
// API routes registered before this take precedence; all unmatched routes
// fall back to index.html for client-side routing.
package server

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/villeh/netcanvas/webui"
)

// RegisterStaticFiles mounts the embedded frontend on the Gin engine.
// web/dist (production build) is preferred when it has real content,
// otherwise the web/ development skeleton is served.
func RegisterStaticFiles(r *gin.Engine) {
	root := "web"
	if distFS, err := fs.Sub(webui.FS, "web/dist"); err == nil {
		if entries, err := fs.ReadDir(distFS, "."); err == nil && len(entries) > 0 {
			root = "web/dist"
		}
	}
	webRoot, err := fs.Sub(webui.FS, root)
	if err != nil {
		panic("embed: " + root + " sub-fs failed: " + err.Error())
	}
	staticFS := http.FS(webRoot)

	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		path := strings.TrimPrefix(c.Request.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}
		if _, err := webRoot.Open(path); err != nil {
			path = "index.html" // SPA fallback
		}
		serveFile(c, staticFS, path)
	})
}

func serveFile(c *gin.Context, staticFS http.FileSystem, path string) {
	f, err := staticFS.Open(path)
	if err != nil {
		c.String(http.StatusNotFound, "UI not found — build the frontend into web/dist")
		return
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil || stat.IsDir() {
		c.String(http.StatusNotFound, "UI not found — build the frontend into web/dist")
		return
	}
	c.DataFromReader(http.StatusOK, stat.Size(), contentType(path), f, nil)
}

func contentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".html"):
		return "text/html; charset=utf-8"
	case strings.HasSuffix(path, ".js"):
		return "application/javascript"
	case strings.HasSuffix(path, ".css"):
		return "text/css"
	case strings.HasSuffix(path, ".svg"):
		return "image/svg+xml"
	}
	return "application/octet-stream"
}
