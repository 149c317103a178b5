// cmd/web/api.go
// JSON endpoints under /api/. Books are returned bare, without an envelope.
package main

import (
	"net/http"

	"github.com/fainmariya/sorting-books-read/internal/data"
)

// bookPayload is the accepted JSON body for POST /api/books. Fields are read
// as text so that "7" and 7 are treated alike.
type bookPayload struct {
	Title    jsonText `json:"books_name"`
	Author   jsonText `json:"author"`
	ISBN     jsonText `json:"isbn"`
	ReadDate jsonText `json:"read_date"`
	Rating   jsonText `json:"rating"`
	Notes    jsonText `json:"notes"`
}

func (p bookPayload) input() data.BookInput {
	return data.BookInput{
		Title:    string(p.Title),
		Author:   string(p.Author),
		ISBN:     string(p.ISBN),
		ReadDate: string(p.ReadDate),
		Rating:   string(p.Rating),
		Notes:    string(p.Notes),
	}
}

// listBooksAPI handles GET /api/books, newest insert first.
func (app *applicationDependencies) listBooksAPI(w http.ResponseWriter, r *http.Request) {
	books, err := app.models.Books.ListByID(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, books); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookAPI handles GET /api/books/:id.
func (app *applicationDependencies) showBookAPI(w http.ResponseWriter, r *http.Request) {
	book, ok := app.bookFromPath(w, r)
	if !ok {
		return
	}

	if err := app.writeJSON(w, http.StatusOK, book); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookAPI handles POST /api/books and responds 201 with the stored row.
func (app *applicationDependencies) createBookAPI(w http.ResponseWriter, r *http.Request) {
	var payload bookPayload
	if err := app.readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := payload.input().Book()
	if err != nil {
		app.writeErrorResponse(w, r, err)
		return
	}

	if err := app.models.Books.Insert(r.Context(), book); err != nil {
		app.writeErrorResponse(w, r, err)
		return
	}

	app.logger.Info("book created", "id", book.ID, "request_id", requestIDFromContext(r.Context()))

	if err := app.writeJSON(w, http.StatusCreated, book); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
