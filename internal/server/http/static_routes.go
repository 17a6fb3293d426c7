package httpserver

import (
	"net/http"
	"os"
)

// RegisterStaticRoutes mounts:
// - /web/* -> board UI assets
// - /      -> redirect to /web/
// 目录不存在时 /web/ 返回一个简短提示，API 仍然可用。
func RegisterStaticRoutes(mux *http.ServeMux, webDir string) {
	if mux == nil {
		return
	}
	if webDir == "" {
		webDir = "."
	}

	if st, err := os.Stat(webDir); err == nil && st.IsDir() {
		mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir(webDir))))
	} else {
		mux.HandleFunc("/web/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("timechess: no web assets; the JSON API lives under /api/\n"))
		})
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/", "/web":
			http.Redirect(w, r, "/web/", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	})
}
