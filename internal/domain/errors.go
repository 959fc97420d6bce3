package domain

import (
	"errors"
)

// Error categories. Every error returned by a use case wraps exactly one of them.
var (
	// ErrValidation некорректная форма входных данных
	ErrValidation = errors.New("validation error")

	// ErrPolicyViolation запрос корректен, но нарушает правила бронирования
	ErrPolicyViolation = errors.New("policy violation")

	// ErrConflict нарушение уникальности при записи (слот только что заняли)
	ErrConflict = errors.New("conflict")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrAuthorization недостаточно прав для операции
	ErrAuthorization = errors.New("authorization error")
)

var (
	// ErrReservationNotActive возвращается при попытке изменить отмененное бронирование
	ErrReservationNotActive = errors.New("reservation is not active")

	// ErrInvalidRecurrence возвращается при несогласованном типе и дне недели повторяющегося блока
	ErrInvalidRecurrence = errors.New("recurring block weekday must be set iff kind is weekly")
)

// PolicyError carries a human-readable reason for a policy rejection
type PolicyError struct {
	Reason string
	Err    error
}

// NewPolicyError wraps a sentinel with a reason suitable for the end user
func NewPolicyError(err error, reason string) *PolicyError {
	return &PolicyError{Reason: reason, Err: err}
}

func (e *PolicyError) Error() string {
	return e.Err.Error() + ": " + e.Reason
}

func (e *PolicyError) Unwrap() error {
	return e.Err
}

// Outcome labels for metrics and logs
const (
	OutcomeSuccess       = "success"
	OutcomeValidation    = "validation"
	OutcomePolicy        = "policy"
	OutcomeConflict      = "conflict"
	OutcomeNotFound      = "not_found"
	OutcomeAuthorization = "authorization"
	OutcomeError         = "error"
)

// Outcome returns the category label of err, OutcomeSuccess for nil
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrValidation):
		return OutcomeValidation
	case errors.Is(err, ErrPolicyViolation):
		return OutcomePolicy
	case errors.Is(err, ErrConflict):
		return OutcomeConflict
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrAuthorization):
		return OutcomeAuthorization
	default:
		return OutcomeError
	}
}

// ReasonOf returns the human-readable reason of a policy rejection, or empty string
func ReasonOf(err error) string {
	var policyErr *PolicyError
	if errors.As(err, &policyErr) {
		return policyErr.Reason
	}
	return ""
}
