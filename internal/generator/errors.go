package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches any *ValidationError with errors.Is
	ErrValidation = errors.New("calendar validation failed")

	// ErrReferenceDataMissing is returned when the holiday or track list was not supplied
	ErrReferenceDataMissing = errors.New("reference data missing")

	// ErrInvalidPolicy is returned when the generator's policy fails its own rules
	ErrInvalidPolicy = errors.New("invalid generator policy")

	// ErrSafetyBoundExceeded is returned when onboarding placement scans past its horizon
	ErrSafetyBoundExceeded = errors.New("placement safety bound exceeded")
)

// ValidationError carries every violated policy rule
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Errors, "; "))
}

// Is makes errors.Is(err, ErrValidation) true
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
