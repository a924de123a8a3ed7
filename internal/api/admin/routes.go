package admin

import (
	"database/sql"
	"net/http"
)

// RegisterRoutes registers all admin API endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, db *sql.DB) {
	h := &Handler{db: db}

	mux.HandleFunc("POST /_studio/reset", h.Reset)
	mux.HandleFunc("POST /_studio/seed", h.SeedData)
	mux.HandleFunc("GET /_studio/version", h.Version)
}
