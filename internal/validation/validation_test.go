package validation_test

import (
	"testing"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lessonForm struct {
	Day   string `form:"day_of_week" validate:"required,weekday"`
	Start string `form:"time_start" validate:"required,clock"`
}

type secret struct {
	Password string `form:"password" validate:"maxbytes=4"`
}

type taskBody struct {
	Due string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func TestIsClock(t *testing.T) {
	for _, ok := range []string{"00:00", "08:30", "23:59"} {
		assert.True(t, validation.IsClock(ok), ok)
	}
	for _, bad := range []string{"", "8:30", "24:00", "12:60", "12-30", "08:30:00", "ab:cd"} {
		assert.False(t, validation.IsClock(bad), bad)
	}
}

func TestNew_CustomTags(t *testing.T) {
	v := validation.New()

	require.NoError(t, v.Struct(lessonForm{Day: "Monday", Start: "08:00"}))

	err := apperror.FromValidator(v.Struct(lessonForm{Day: "Sunday", Start: "8am"}))
	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 2)
	assert.Equal(t, "day_of_week", ve.Fields[0].Field)
	assert.Equal(t, "day_of_week must be a school day (Monday to Friday)", ve.Fields[0].Message)
	assert.Equal(t, "time_start", ve.Fields[1].Field)
	assert.Equal(t, "time_start must be a time in HH:MM format", ve.Fields[1].Message)
}

func TestNew_MaxBytes(t *testing.T) {
	v := validation.New()

	require.NoError(t, v.Struct(secret{Password: "abcd"}))
	require.NoError(t, v.Struct(secret{Password: "її"}))

	err := apperror.FromValidator(v.Struct(secret{Password: "їїї"}))
	assert.EqualError(t, err, "password must be at most 4 bytes")
}

func TestNew_JSONNames(t *testing.T) {
	v := validation.New()

	require.NoError(t, v.Struct(taskBody{}))
	require.NoError(t, v.Struct(taskBody{Due: "2025-08-10"}))

	err := apperror.FromValidator(v.Struct(taskBody{Due: "10.08.2025"}))
	assert.EqualError(t, err, "due_date must be a date in YYYY-MM-DD format")
}
