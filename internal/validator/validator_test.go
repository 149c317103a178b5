package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fainmariya/sorting-books-read/internal/validator"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Score *int   `json:"score" validate:"omitempty,min=0,max=10"`
	Note  string `json:"-"`
}

func intPtr(n int) *int { return &n }

func TestValidator_Check(t *testing.T) {
	v := validator.New()
	v.Check(true, "name", "never recorded")
	assert.True(t, v.Valid())

	v.Check(false, "name", "first")
	v.Check(false, "name", "second")
	assert.False(t, v.Valid())
	assert.Equal(t, "first", v.Errors["name"])
}

func TestValidator_CheckStruct(t *testing.T) {
	messages := map[string]string{"score": "Score must be between 0 and 10"}

	tests := []struct {
		name    string
		input   sample
		wantErr map[string]string
	}{
		{"valid", sample{Name: "x", Score: intPtr(5)}, map[string]string{}},
		{"nil_score_skipped", sample{Name: "x"}, map[string]string{}},
		{"zero_score_accepted", sample{Name: "x", Score: intPtr(0)}, map[string]string{}},
		{"upper_bound_accepted", sample{Name: "x", Score: intPtr(10)}, map[string]string{}},
		{"score_too_high", sample{Name: "x", Score: intPtr(11)}, map[string]string{"score": "Score must be between 0 and 10"}},
		{"score_negative", sample{Name: "x", Score: intPtr(-1)}, map[string]string{"score": "Score must be between 0 and 10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			v.CheckStruct(&tt.input, messages)
			assert.Equal(t, tt.wantErr, v.Errors)
		})
	}
}

func TestValidator_CheckStruct_DefaultMessage(t *testing.T) {
	v := validator.New()
	v.CheckStruct(&sample{}, nil)

	require.Contains(t, v.Errors, "name")
	assert.NotEmpty(t, v.Errors["name"])
}

func TestValidator_First(t *testing.T) {
	v := validator.New()
	_, _, ok := v.First()
	assert.False(t, ok)

	v.AddError("b", "second field")
	v.AddError("a", "third field")

	key, message, ok := v.First()
	require.True(t, ok)
	assert.Equal(t, "b", key)
	assert.Equal(t, "second field", message)
}

func TestIn(t *testing.T) {
	assert.True(t, validator.In("asc", "asc", "desc"))
	assert.False(t, validator.In("ASC", "asc", "desc"))
	assert.False(t, validator.In("x"))
}
