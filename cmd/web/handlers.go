// cmd/web/handlers.go
// HTML page handlers and the form posts behind them. Each handler is a
// method on *applicationDependencies so it has access to the logger, the
// models and the template cache.
package main

import (
	"fmt"
	"net/http"

	"github.com/fainmariya/sorting-books-read/internal/data"
)

// listBooksPage handles GET /.
// The sort and order query parameters pick one of the fixed orderings.
func (app *applicationDependencies) listBooksPage(w http.ResponseWriter, r *http.Request) {
	filters := app.readFilters(r.URL.Query())

	books, err := app.models.Books.List(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	td := app.newTemplateData("My Read Books")
	td.Books = data.NewBookViews(books)
	td.Sort = string(filters.Sort)
	td.Order = filters.Order()
	td.SortOptions = data.SortSafeList

	app.render(w, r, http.StatusOK, "index.tmpl", td)
}

// showBookPage handles GET /books/:id.
func (app *applicationDependencies) showBookPage(w http.ResponseWriter, r *http.Request) {
	book, ok := app.bookFromPath(w, r)
	if !ok {
		return
	}

	td := app.newTemplateData(book.Title)
	td.Book = data.NewBookView(book)

	app.render(w, r, http.StatusOK, "book.tmpl", td)
}

func (app *applicationDependencies) newBookPage(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "new.tmpl", app.newTemplateData("Add a book"))
}

// editBookPage handles GET /books/:id/edit with the form prefilled.
func (app *applicationDependencies) editBookPage(w http.ResponseWriter, r *http.Request) {
	book, ok := app.bookFromPath(w, r)
	if !ok {
		return
	}

	td := app.newTemplateData("Edit " + book.Title)
	td.Form = newBookForm(book)

	app.render(w, r, http.StatusOK, "edit.tmpl", td)
}

// createBook handles POST /books and redirects to the list on success.
func (app *applicationDependencies) createBook(w http.ResponseWriter, r *http.Request) {
	input, err := app.readBookForm(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := input.Book()
	if err != nil {
		app.writeErrorResponse(w, r, err)
		return
	}

	if err := app.models.Books.Insert(r.Context(), book); err != nil {
		app.writeErrorResponse(w, r, err)
		return
	}

	app.logger.Info("book created", "id", book.ID, "request_id", requestIDFromContext(r.Context()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// updateBook handles both POST /books/:id/update-meta and
// POST /books/:id/update-notes. Notes are not part of the update; the edit
// form posts every other field. Updating a book that no longer exists is a
// no-op and still redirects to its detail page.
func (app *applicationDependencies) updateBook(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	input, err := app.readBookForm(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := input.Book()
	if err != nil {
		app.writeErrorResponse(w, r, err)
		return
	}
	book.ID = id

	if err := app.models.Books.Update(r.Context(), book); err != nil {
		app.writeErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/books/%d", id), http.StatusSeeOther)
}

// deleteBook handles POST /books/:id/delete. Deleting a missing book still
// redirects to the list.
func (app *applicationDependencies) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	if err := app.models.Books.Delete(r.Context(), id); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// bookFromPath loads the book named by the :id parameter. It writes the 404
// or 500 itself and reports false when the handler should stop.
func (app *applicationDependencies) bookFromPath(w http.ResponseWriter, r *http.Request) (*data.Book, bool) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return nil, false
	}

	book, err := app.models.Books.Get(r.Context(), id)
	if err != nil {
		app.writeErrorResponse(w, r, err)
		return nil, false
	}
	return book, true
}
