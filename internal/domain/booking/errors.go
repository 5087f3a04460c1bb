package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrSessionNotFound      = errors.New("booking session not found")
	ErrStepNotActive        = errors.New("step is not the active step")
	ErrNoPreviousStep       = errors.New("no previous step")
	ErrNoNextStep           = errors.New("no next step, submit instead")
	ErrWizardClosed         = errors.New("booking already submitted")
	ErrNothingPriced        = errors.New("price breakdown is empty")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrConfirmationNotFound = errors.New("confirmed booking not found")
	ErrAlreadyCancelled     = errors.New("booking already cancelled")
)

// ErrorKind classifies a field failure.
type ErrorKind string

const (
	// KindMissingRequired blocks advancing past a step.
	KindMissingRequired ErrorKind = "missing_required_field"
	// KindOutOfRange is refused at the input boundary; the draft is left untouched.
	KindOutOfRange ErrorKind = "out_of_range_value"
	// KindFormatMismatch is shown inline next to the field.
	KindFormatMismatch ErrorKind = "format_mismatch"
)

// FieldError is the message attached to one input.
type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// FieldErrors maps field paths (e.g. "contact.phone") to their failure.
type FieldErrors map[string]FieldError

// add keeps the first failure reported for a field.
func (fe FieldErrors) add(field string, kind ErrorKind, msg string) {
	if _, ok := fe[field]; ok {
		return
	}
	fe[field] = FieldError{Kind: kind, Message: msg}
}

func (fe FieldErrors) merge(other FieldErrors) {
	for field, e := range other {
		fe.add(field, e.Kind, e.Message)
	}
}

// StepError carries every field failure of a refused patch or transition.
type StepError struct {
	Step   Step
	Fields FieldErrors
}

func newStepError(step Step, fields FieldErrors) *StepError {
	return &StepError{Step: step, Fields: fields}
}

func (e *StepError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("step %s: invalid fields: %s", e.Step, strings.Join(names, ", "))
}

// AsStepError returns the *StepError in err's chain, or nil.
func AsStepError(err error) *StepError {
	if err == nil {
		return nil
	}

	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr
	}
	return nil
}
