// Package data provides the book model, input normalization, link
// formatting and the database access layer for the bookshelf application.
package data

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fainmariya/sorting-books-read/internal/validator"
)

// Client-facing validation messages.
const (
	MsgTitleRequired   = "Title is required"
	MsgRatingRange     = "Rating must be between 0 and 10"
	MsgReadDateInvalid = "Read date must be a valid date"
)

// Book represents a single row in the lib_books table.
// Optional columns are pointers; nil maps to SQL NULL and JSON null.
type Book struct {
	ID       int64      `json:"id"`
	Title    string     `json:"books_name" validate:"required"`
	Author   *string    `json:"author"`
	ISBN     *string    `json:"isbn"`
	ReadDate *time.Time `json:"read_date"`
	Rating   *int       `json:"rating" validate:"omitempty,min=0,max=10"`
	Notes    *string    `json:"notes"`
}

// bookMessages maps struct rule failures to the messages shown to clients.
var bookMessages = map[string]string{
	"books_name": MsgTitleRequired,
	"rating":     MsgRatingRange,
}

// BookInput holds raw field values exactly as they arrive from an HTML form
// or a JSON body, before any normalization.
type BookInput struct {
	Title    string
	Author   string
	ISBN     string
	ReadDate string
	Rating   string
	Notes    string
}

// Book normalizes the input into a Book. Blank optional fields become nil and
// a non-numeric rating is dropped. Only an unparseable read date fails here;
// title and rating bounds are checked by ValidateBook.
func (in BookInput) Book() (*Book, error) {
	readDate, err := NormalizeDate(in.ReadDate)
	if err != nil {
		return nil, err
	}

	return &Book{
		Title:    in.Title,
		Author:   NormalizeOptional(in.Author),
		ISBN:     NormalizeOptional(in.ISBN),
		ReadDate: readDate,
		Rating:   NormalizeRating(in.Rating),
		Notes:    NormalizeOptional(in.Notes),
	}, nil
}

// NormalizeOptional returns nil for blank input and a pointer to the
// unchanged value otherwise.
func NormalizeOptional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// NormalizeRating parses a rating. Blank and non-numeric input both yield
// nil; out-of-range numbers are returned as-is so validation can reject them.
// Whole-valued decimals such as "12.0" count as numbers. Values too large
// for an int are clamped to math.MaxInt or math.MinInt.
func NormalizeRating(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	// On overflow Atoi already returns the clamped bound with ErrRange.
	n, err := strconv.Atoi(value)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return &n
	}

	// ParseFloat reports overflow as ErrRange with an infinite result; the
	// literal words "NaN" and "Inf" parse cleanly and are not ratings.
	f, err := strconv.ParseFloat(value, 64)
	overflow := errors.Is(err, strconv.ErrRange)
	if err != nil && !overflow {
		return nil
	}
	if math.IsNaN(f) || (math.IsInf(f, 0) && !overflow) || f != math.Trunc(f) {
		return nil
	}

	switch {
	case f >= float64(math.MaxInt):
		n = math.MaxInt
	case f <= float64(math.MinInt):
		n = math.MinInt
	default:
		n = int(f)
	}
	return &n
}

// readDateLayouts are tried in order: HTML date input, datetime-local input,
// then full RFC 3339 as sent by API clients.
var readDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	time.RFC3339,
}

// NormalizeDate parses a read date. Blank input yields nil.
func NormalizeDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range readDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, &ValidationError{Field: "read_date", Message: MsgReadDateInvalid}
}

// RequireTitle trims the title and fails when nothing is left.
func RequireTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Field: "books_name", Message: MsgTitleRequired}
	}
	return title, nil
}

// ValidateBook trims the title in place and checks the field rules. The
// first failure is returned as a *ValidationError, title before rating.
func ValidateBook(book *Book) error {
	title, err := RequireTitle(book.Title)
	if err != nil {
		return err
	}
	book.Title = title

	v := validator.New()
	v.CheckStruct(book, bookMessages)
	if field, message, failed := v.First(); failed {
		return &ValidationError{Field: field, Message: message}
	}
	return nil
}
