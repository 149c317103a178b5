package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// BookRepository is the storage contract the HTTP layer depends on.
// BookModel is the database/sql implementation.
type BookRepository interface {
	List(ctx context.Context, filters Filters) ([]*Book, error)
	ListByID(ctx context.Context) ([]*Book, error)
	Get(ctx context.Context, id int64) (*Book, error)
	Insert(ctx context.Context, book *Book) error
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Models groups the repositories handed to the application at startup.
type Models struct {
	Books BookRepository
}

// NewModels wires every repository to the given connection pool.
func NewModels(db *sql.DB) Models {
	return Models{
		Books: BookModel{DB: db},
	}
}

// SortKey selects the list ordering strategy.
type SortKey string

const (
	SortBest   SortKey = "best"
	SortNewest SortKey = "newest"
	SortTitle  SortKey = "title"
)

// SortSafeList holds the keys with a dedicated ordering. Anything else falls
// back to rating then read date, both descending.
var SortSafeList = []SortKey{SortBest, SortNewest, SortTitle}

// ParseSortKey lower-cases s and defaults an empty value to SortBest.
// Unknown keys are kept so that List applies the fallback ordering.
func ParseSortKey(s string) SortKey {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortBest
	}
	return SortKey(s)
}

// SortDirection is a closed set; only its two keywords ever reach SQL.
type SortDirection int

const (
	DirectionDefault SortDirection = iota
	Ascending
	Descending
)

// ParseSortDirection accepts "asc" and "desc" in any case. Anything else
// leaves the direction to the sort key's default.
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return Ascending
	case "desc":
		return Descending
	default:
		return DirectionDefault
	}
}

func (d SortDirection) keyword() string {
	if d == Ascending {
		return "ASC"
	}
	return "DESC"
}

// Filters holds the list ordering parameters extracted from the query string.
type Filters struct {
	Sort      SortKey
	Direction SortDirection
}

// direction resolves DirectionDefault: ascending for title, descending
// for everything else.
func (f Filters) direction() SortDirection {
	if f.Direction != DirectionDefault {
		return f.Direction
	}
	if f.Sort == SortTitle {
		return Ascending
	}
	return Descending
}

// Order returns the effective direction as "asc" or "desc".
func (f Filters) Order() string {
	return strings.ToLower(f.direction().keyword())
}

// orderBy builds the ORDER BY clause from fixed fragments only.
func (f Filters) orderBy() string {
	dir := f.direction().keyword()

	switch f.Sort {
	case SortBest:
		return "rating " + dir + " NULLS LAST, read_date DESC NULLS LAST, lower(books_name) ASC"
	case SortNewest:
		return "read_date " + dir + " NULLS LAST, rating DESC NULLS LAST, lower(books_name) ASC"
	case SortTitle:
		return "lower(books_name) " + dir + ", read_date DESC NULLS LAST"
	default:
		return "rating DESC NULLS LAST, read_date DESC NULLS LAST"
	}
}

const bookColumns = "id, books_name, author, isbn, read_date, rating, notes"

// BookModel wraps a *sql.DB connection pool and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB *sql.DB
}

var _ BookRepository = BookModel{}

// Insert validates book and adds it to the database. The generated id is
// written back into book.
func (m BookModel) Insert(ctx context.Context, book *Book) error {
	if err := ValidateBook(book); err != nil {
		return err
	}

	query := `
		INSERT INTO lib_books (books_name, author, isbn, read_date, rating, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := m.DB.QueryRowContext(ctx, query,
		book.Title,
		book.Author,
		book.ISBN,
		book.ReadDate,
		book.Rating,
		book.Notes,
	).Scan(&book.ID)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(ctx context.Context, id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `SELECT ` + bookColumns + ` FROM lib_books WHERE id = $1`

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return book, nil
}

// List returns every book ordered according to filters.
func (m BookModel) List(ctx context.Context, filters Filters) ([]*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM lib_books ORDER BY ` + filters.orderBy()
	return m.query(ctx, query)
}

// ListByID returns every book, newest id first.
func (m BookModel) ListByID(ctx context.Context) ([]*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM lib_books ORDER BY id DESC`
	return m.query(ctx, query)
}

func (m BookModel) query(ctx context.Context, query string) ([]*Book, error) {
	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update validates book and saves its title, author, isbn, read date and
// rating. Notes are left untouched. Updating an id that does not exist is
// not an error.
func (m BookModel) Update(ctx context.Context, book *Book) error {
	if err := ValidateBook(book); err != nil {
		return err
	}

	query := `
		UPDATE lib_books
		SET books_name = $1, author = $2, isbn = $3, read_date = $4, rating = $5
		WHERE id = $6`

	_, err := m.DB.ExecContext(ctx, query,
		book.Title,
		book.Author,
		book.ISBN,
		book.ReadDate,
		book.Rating,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	return nil
}

// Delete removes the book with the given id. Deleting a missing id succeeds.
func (m BookModel) Delete(ctx context.Context, id int64) error {
	_, err := m.DB.ExecContext(ctx, `DELETE FROM lib_books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (m BookModel) Ping(ctx context.Context) error {
	return m.DB.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*Book, error) {
	var book Book
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.ReadDate,
		&book.Rating,
		&book.Notes,
	)
	if err != nil {
		return nil, err
	}
	if book.ReadDate != nil {
		t := book.ReadDate.UTC()
		book.ReadDate = &t
	}
	return &book, nil
}
