package entities

import (
	"regexp"
	"strings"
	"time"

	apperrors "github.com/velectro/voicelead/backend/pkg/errors"
)

// PhonePattern is the accepted phone format: (XXX) XXX-XXXX.
var PhonePattern = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)

const maxNameLength = 120

// Lead represents a visitor who submitted the capture form and is
// awaiting or has received a recommendation call.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateLeadInput checks a name/phone pair before a lead is created.
// It returns a validation error enumerating every failing field.
func ValidateLeadInput(name, phone string) error {
	var fields []apperrors.FieldError

	if strings.TrimSpace(name) == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > maxNameLength {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "name is too long"})
	}

	if !PhonePattern.MatchString(phone) {
		fields = append(fields, apperrors.FieldError{Field: "phone", Message: "Invalid phone format"})
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("Validation failed", fields...)
	}
	return nil
}
