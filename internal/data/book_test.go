package data

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOptional(t *testing.T) {
	assert.Nil(t, NormalizeOptional(""))
	assert.Nil(t, NormalizeOptional("   "))

	got := NormalizeOptional(" Le Guin ")
	require.NotNil(t, got)
	assert.Equal(t, " Le Guin ", *got)
}

func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"", nil},
		{"  ", nil},
		{"abc", nil},
		{"7.5", nil},
		{"7", intPtr(7)},
		{" 10 ", intPtr(10)},
		{"0", intPtr(0)},
		{"11", intPtr(11)},
		{"-1", intPtr(-1)},
		{"12.0", intPtr(12)},
		{"1e1", intPtr(10)},
		{"NaN", nil},
		{"Inf", nil},
		{"99999999999999999999", intPtr(math.MaxInt)},
		{"-99999999999999999999", intPtr(math.MinInt)},
		{"1e400", intPtr(math.MaxInt)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRating(tt.in))
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = NormalizeDate("2024-01-31")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-01-31T00:00:00Z", got.Format("2006-01-02T15:04:05Z07:00"))

	got, err = NormalizeDate("2024-01-31T22:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31T20:30:00Z", got.Format("2006-01-02T15:04:05Z07:00"))

	got, err = NormalizeDate("2024-01-31T08:15")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())

	_, err = NormalizeDate("31/01/2024")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, MsgReadDateInvalid, verr.Message)
	assert.Equal(t, "read_date", verr.Field)
}

func TestRequireTitle(t *testing.T) {
	title, err := RequireTitle("  Dune  ")
	require.NoError(t, err)
	assert.Equal(t, "Dune", title)

	for _, blank := range []string{"", "   ", "\t\n"} {
		_, err := RequireTitle(blank)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, MsgTitleRequired, verr.Error())
	}
}

func TestValidateBook(t *testing.T) {
	book := &Book{Title: "  Dune  ", Rating: intPtr(10)}
	require.NoError(t, ValidateBook(book))
	assert.Equal(t, "Dune", book.Title)

	err := ValidateBook(&Book{Title: "Dune", Rating: intPtr(11)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rating", verr.Field)
	assert.Equal(t, MsgRatingRange, verr.Message)

	for _, rating := range []string{"99999999999999999999", "-99999999999999999999", "12.0"} {
		err = ValidateBook(&Book{Title: "Dune", Rating: NormalizeRating(rating)})
		require.ErrorAs(t, err, &verr, rating)
		assert.Equal(t, MsgRatingRange, verr.Message)
	}
}

func TestBookInput_Book(t *testing.T) {
	book, err := BookInput{
		Title:  "Dune",
		Author: "",
		ISBN:   "0441013597",
		Rating: "not a number",
		Notes:  "spice",
	}.Book()
	require.NoError(t, err)

	assert.Equal(t, "Dune", book.Title)
	assert.Nil(t, book.Author)
	assert.Equal(t, "0441013597", *book.ISBN)
	assert.Nil(t, book.Rating)
	assert.Nil(t, book.ReadDate)
	assert.Equal(t, "spice", *book.Notes)

	_, err = BookInput{Title: "Dune", ReadDate: "yesterday"}.Book()
	assert.Error(t, err)
}
