package data

import (
	"net/url"
	"strings"
)

const (
	coverBaseURL = "https://covers.openlibrary.org/b"
	searchURL    = "https://www.amazon.com/s"

	// PlaceholderCover is served from the embedded static files.
	PlaceholderCover = "/static/placeholder.png"
)

// CoverURL returns the Open Library large cover image for the ISBN, or the
// local placeholder when there is no ISBN. default=false makes Open Library
// answer 404 instead of a blank image for unknown ISBNs.
func CoverURL(isbn *string) string {
	code := trimmed(isbn)
	if code == "" {
		return PlaceholderCover
	}
	return coverBaseURL + "/isbn/" + url.PathEscape(code) + "-L.jpg?default=false"
}

// BuyURL returns a marketplace search link: an exact ISBN search when the
// ISBN is known, otherwise a text search on title and author.
func BuyURL(isbn *string, title string, author *string) string {
	if code := trimmed(isbn); code != "" {
		return searchURL + "?k=" + url.QueryEscape(code)
	}

	terms := make([]string, 0, 2)
	for _, s := range []string{strings.TrimSpace(title), trimmed(author)} {
		if s != "" {
			terms = append(terms, s)
		}
	}
	return searchURL + "?k=" + url.QueryEscape(strings.Join(terms, " "))
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// BookView is a Book decorated with its derived links for rendering.
type BookView struct {
	*Book
	Cover  string `json:"cover"`
	BuyURL string `json:"buyUrl"`
}

// NewBookView attaches the cover and purchase links to b.
func NewBookView(b *Book) BookView {
	return BookView{
		Book:   b,
		Cover:  CoverURL(b.ISBN),
		BuyURL: BuyURL(b.ISBN, b.Title, b.Author),
	}
}

// NewBookViews decorates every book in order.
func NewBookViews(books []*Book) []BookView {
	views := make([]BookView, 0, len(books))
	for _, b := range books {
		views = append(views, NewBookView(b))
	}
	return views
}
