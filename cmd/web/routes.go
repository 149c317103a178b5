// cmd/web/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/fainmariya/sorting-books-read/ui"
)

// routes registers all HTTP endpoints and returns the router wrapped in
// middleware.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → rateLimit → router
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.Handler(http.MethodGet, "/static/*filepath", http.FileServer(http.FS(ui.Files)))

	// HTML pages and form posts
	router.HandlerFunc(http.MethodGet, "/", app.listBooksPage)
	router.HandlerFunc(http.MethodGet, "/new", app.newBookPage)
	router.HandlerFunc(http.MethodPost, "/books", app.createBook)
	router.HandlerFunc(http.MethodGet, "/books/:id", app.showBookPage)
	router.HandlerFunc(http.MethodGet, "/books/:id/edit", app.editBookPage)
	router.HandlerFunc(http.MethodPost, "/books/:id/update-meta", app.updateBook)
	router.HandlerFunc(http.MethodPost, "/books/:id/update-notes", app.updateBook)
	router.HandlerFunc(http.MethodPost, "/books/:id/delete", app.deleteBook)

	// JSON API
	router.HandlerFunc(http.MethodGet, "/api/books", app.listBooksAPI)
	router.HandlerFunc(http.MethodPost, "/api/books", app.createBookAPI)
	router.HandlerFunc(http.MethodGet, "/api/books/:id", app.showBookAPI)

	// Probes
	router.HandlerFunc(http.MethodGet, "/health", app.healthHandler)
	router.HandlerFunc(http.MethodGet, "/ready", app.readyHandler)

	return app.recoverPanic(app.logRequest(app.rateLimit(router)))
}
