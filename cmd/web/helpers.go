// cmd/web/helpers.go
// General-purpose helpers for reading requests and writing responses.
// Error-response helpers live in errors.go.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/fainmariya/sorting-books-read/internal/data"
)

// maxBodyBytes caps form and JSON request bodies.
const maxBodyBytes = 1_048_576

// readIDParam extracts and validates the ":id" URL parameter added by httprouter.
// Returns an error if the value is missing, non-numeric, or less than 1.
func (app *applicationDependencies) readIDParam(r *http.Request) (int64, error) {
	// httprouter stores the matched parameters in the request context.
	params := httprouter.ParamsFromContext(r.Context())

	// Ids start at 1, so zero and negatives are rejected with the rest.
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// readString reads a string query parameter from qs, returning defaultValue
// if the key is absent or empty.
func (app *applicationDependencies) readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// readFilters turns the sort and order query parameters into list filters.
// Unknown values are passed through; the data layer maps them to its
// fallback ordering, so nothing from the query string reaches the SQL.
func (app *applicationDependencies) readFilters(qs url.Values) data.Filters {
	return data.Filters{
		Sort:      data.ParseSortKey(app.readString(qs, "sort", string(data.SortBest))),
		Direction: data.ParseSortDirection(qs.Get("order")),
	}
}

// readBookForm parses a url-encoded book form.
func (app *applicationDependencies) readBookForm(w http.ResponseWriter, r *http.Request) (data.BookInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return data.BookInput{}, err
	}

	// PostForm holds body values only; query-string parameters are ignored.
	form := r.PostForm
	return data.BookInput{
		Title:    form.Get("books_name"),
		Author:   form.Get("author"),
		ISBN:     form.Get("isbn"),
		ReadDate: form.Get("read_date"),
		Rating:   form.Get("rating"),
		Notes:    form.Get("notes"),
	}, nil
}

// writeJSON marshals payload to indented JSON, sets Content-Type to
// "application/json", writes the status code, and sends the body.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, payload any) error {
	js, err := json.MarshalIndent(payload, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value. Returned errors are client-safe.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &typeError):
			if typeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", typeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", typeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown field %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// jsonText accepts a JSON string, number, boolean or null and keeps its text
// form, so API fields go through the same normalization as form fields.
type jsonText string

func (t *jsonText) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = jsonText(s)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return errors.New("must be a string or a number")
	default:
		*t = jsonText(b)
	}
	return nil
}
