package ledger

import (
	"errors"
	"fmt"
)

// Rules carried by BusinessRuleError.
const (
	RuleAlreadySettled  = "already_settled"
	RuleOverpayment     = "overpayment"
	RuleBatchSize       = "invoice_count_out_of_bounds"
	RuleAmountBelowPaid = "amount_below_paid"
)

// ValidationError means the caller sent missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// BusinessRuleError means the input was well-formed but violates a ledger rule.
type BusinessRuleError struct {
	Rule    string
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

// ConflictError means a uniqueness or referential constraint blocks the write.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// PersistenceError means the store failed, timed out, or holds inconsistent
// data. The wrapped cause is for logs, not for the API response.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return e.Op + ": persistence failure"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// classified reports whether err already belongs to the ledger taxonomy.
func classified(err error) bool {
	var (
		ve *ValidationError
		nf *NotFoundError
		br *BusinessRuleError
		ce *ConflictError
		pe *PersistenceError
	)
	return errors.As(err, &ve) || errors.As(err, &nf) ||
		errors.As(err, &br) || errors.As(err, &ce) || errors.As(err, &pe)
}
