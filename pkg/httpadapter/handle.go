package httpadapter

import "net/http"

// HttpHandle pairs a ServeMux pattern with its handler.
type HttpHandle struct {
	Path    string
	Handler http.HandlerFunc
}

func Register(mux *http.ServeMux, routes ...HttpHandle) {
	for _, route := range routes {
		mux.HandleFunc(route.Path, route.Handler)
	}
}
