package site

import (
	"embed"
	"net/http"
)

//go:embed assets
var assets embed.FS

// assetHandler serves one embedded file with a fixed content type
func assetHandler(name, contentType string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := assets.ReadFile(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(data)
	})
}

func reloadScript() string {
	data, _ := assets.ReadFile("assets/reload.js")
	return string(data)
}
