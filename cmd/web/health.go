package main

import (
	"context"
	"io"
	"net/http"
	"time"
)

// healthHandler reports that the process is up. It never touches the database.
func (app *applicationDependencies) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

// readyHandler reports whether the database answers a ping within two seconds.
func (app *applicationDependencies) readyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.models.Books.Ping(ctx); err != nil {
		app.logError(r, err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}
