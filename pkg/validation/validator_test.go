package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=5"`
	Due   string `json:"due_date" validate:"required,isodate"`
	Start string `json:"start_time" validate:"omitempty,clock"`
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Email: "nope", Name: "toolong", Due: "05/01/2024", Start: "9am"})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", de.Code)
	require.Equal(t, "must be a valid email", de.Details["email"])
	require.Equal(t, "must be at most 5 characters long", de.Details["name"])
	require.Equal(t, "must be a date in YYYY-MM-DD format", de.Details["due_date"])
	require.Equal(t, "must be a time in HH:MM format", de.Details["start_time"])
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(sample{Email: "a@x.com", Name: "Ann", Due: "2024-05-01"}))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var v sample
	err := json.Unmarshal([]byte(`{"email":`), &v)
	require.Equal(t, map[string]any{"payload": "invalid json"}, ToDetails(err))
}
