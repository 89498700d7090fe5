package httpserver

import (
	"net/http"
	"time"
)

// New builds the registrar HTTP server. Header and write timeouts are fixed
// here rather than configurable; per-request deadlines live in the router's
// timeout middleware.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
