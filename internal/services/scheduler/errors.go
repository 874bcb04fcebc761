package scheduler

import (
	"errors"
	"strings"

	"github.com/onegreenvn/phishing-campaign-service/internal/database/repository"
)

var (
	ErrCampaignNotFound = repository.ErrCampaignNotFound
	ErrNotRecurring     = errors.New("campaign is not recurring")
	ErrAlreadyActive    = errors.New("campaign is already active")
	ErrCampaignFinished = errors.New("campaign has already finished its schedule")
	ErrNotRestored      = errors.New("scheduler has not restored active campaigns yet")
)

// ValidationError is returned when recurring campaign parameters are rejected.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Reason  string
	Missing []string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func missingFields(fields []string) *ValidationError {
	return &ValidationError{
		Reason:  "Missing required fields for recurring campaign: " + strings.Join(fields, ", "),
		Missing: fields,
	}
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
