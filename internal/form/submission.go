// Package form holds the record-temperature form: its editable field state
// and the required-field validation applied before a reading is classified.
package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

var (
	ErrLocationRequired    = errors.New("location is required")
	ErrTemperatureRequired = errors.New("temperature is required")
	ErrTemperatureInvalid  = errors.New("temperature must be a number")
	ErrCheckedByRequired   = errors.New("checked by is required")
)

var validate = validator.New()

// Submission is the raw form content as typed by the operator.
type Submission struct {
	LocationID  string `validate:"required"`
	Temperature string `validate:"required"`
	CheckedBy   string `validate:"required"`
	Notes       string
}

// Reading is a validated submission with a parsed temperature.
type Reading struct {
	LocationID  string
	Temperature float64
	CheckedBy   string
	Notes       string
}

// Parse validates the required fields and converts the temperature.
func (s Submission) Parse() (Reading, error) {
	s.LocationID = strings.TrimSpace(s.LocationID)
	s.Temperature = strings.TrimSpace(s.Temperature)
	s.CheckedBy = strings.TrimSpace(s.CheckedBy)
	s.Notes = strings.TrimSpace(s.Notes)

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Reading{}, fieldError(verrs[0])
		}
		return Reading{}, err
	}

	temp, err := ParseTemperature(s.Temperature)
	if err != nil {
		return Reading{}, err
	}

	return Reading{
		LocationID:  s.LocationID,
		Temperature: temp,
		CheckedBy:   s.CheckedBy,
		Notes:       s.Notes,
	}, nil
}

// ParseTemperature parses a decimal temperature such as "-12", ".5", "5."
// or "1e2". Unparseable and non-finite values yield ErrTemperatureInvalid.
func ParseTemperature(s string) (float64, error) {
	temp, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(temp) || math.IsInf(temp, 0) {
		return 0, ErrTemperatureInvalid
	}
	return temp, nil
}

func fieldError(fe validator.FieldError) error {
	switch fe.Field() {
	case "LocationID":
		return ErrLocationRequired
	case "Temperature":
		return ErrTemperatureRequired
	case "CheckedBy":
		return ErrCheckedByRequired
	}
	return fmt.Errorf("%s: failed %q check", fe.Field(), fe.Tag())
}
