package middleware

import (
	"net/http"
	"os"
	"path/filepath"
)

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200"><rect width="200" height="200" fill="#1e293b"/><path d="M70 75h60a10 10 0 0 1 10 10v30a10 10 0 0 1-10 10H70a10 10 0 0 1-10-10V85a10 10 0 0 1 10-10z" fill="#475569"/><circle cx="85" cy="100" r="6" fill="#94a3b8"/><circle cx="115" cy="100" r="6" fill="#94a3b8"/><text x="100" y="150" text-anchor="middle" font-family="Arial" font-size="14" fill="#64748b">GAME</text></svg>`

// StaticFileServer serves game imagery from dir, answering misses with a
// placeholder so listings render before real assets are uploaded.
func StaticFileServer(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean(r.URL.Path))

		if _, err := os.Stat(path); err == nil {
			w.Header().Set("Cache-Control", "public, max-age=2592000")
			http.ServeFile(w, r, path)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write([]byte(placeholderSVG))
	})
}
