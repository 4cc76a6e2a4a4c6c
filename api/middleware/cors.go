package middleware

import (
	"context"
	"net/http"

	"github.com/irsalhamdi/realty-training/api/web"
)

// Cors lets the browser front end served from origin call the API with its
// session cookie.
func Cors(origin string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
			w.Header().Add("Vary", "Origin")

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
