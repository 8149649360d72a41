package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Height *float64 `json:"height" validate:"omitempty,gt=0"`
	Born   string   `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

type outer struct {
	Limit int   `json:"limit" validate:"min=1,max=50"`
	Side  inner `json:"side"`
}

func TestValidateStruct(t *testing.T) {
	neg := -1.0

	require.NoError(t, ValidateStruct(&outer{Limit: 10}))

	err := ValidateStruct(&outer{Limit: 0, Side: inner{Height: &neg, Born: "16/10/2000"}})
	require.Error(t, err)

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{
		"limit must be at least 1",
		"side.height must be greater than 0",
		"side.date_of_birth must be a date formatted as 2006-01-02",
	}, verr.Fields)
}

func TestRespondWithValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithValidationError(rec, ValidateStruct(&outer{Limit: 51}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Validation failed","details":["limit must be at most 50"]}`, rec.Body.String())
}
