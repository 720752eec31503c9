// Package validation builds the validator shared by the form and JSON handlers.
package validation

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"schoolplanner/internal/entity"

	"github.com/go-playground/validator/v10"
)

const clockLayout = "15:04"

// New returns a validator that reports fields by their form or json name and
// knows the tags "weekday", "clock" and "maxbytes".
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)

	// registration only fails for an empty tag or a nil func
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return entity.IsWeekday(fl.Field().String())
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return IsClock(fl.Field().String())
	})
	// bcrypt rejects passwords longer than 72 bytes, not characters
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	return v
}

// IsClock reports whether s is a zero padded 24h HH:MM time.
func IsClock(s string) bool {
	if len(s) != len(clockLayout) {
		return false
	}
	_, err := time.Parse(clockLayout, s)
	return err == nil
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
