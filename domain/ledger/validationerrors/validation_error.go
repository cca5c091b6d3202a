package validationerrors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind identifies which validation rule a ValidationError violates.
type ErrorKind string

// These constants are used to identify a specific ValidationError.
const (
	// KindUTXONotFound indicates an input references a UTXO that is not in
	// the pool.
	KindUTXONotFound ErrorKind = "UTXO_NOT_FOUND"

	// KindAmountMismatch indicates the outputs of a transaction do not sum
	// to the value of its resolved inputs.
	KindAmountMismatch ErrorKind = "AMOUNT_MISMATCH"

	// KindInvalidSignature indicates an input's signature does not verify
	// against its owner and the transaction's signing payload.
	KindInvalidSignature ErrorKind = "INVALID_SIGNATURE"

	// KindDoubleSpending indicates an input spends a UTXO already spent by
	// an earlier input of the same transaction.
	KindDoubleSpending ErrorKind = "DOUBLE_SPENDING"

	// KindNegativeAmount indicates an output amount is zero or negative.
	KindNegativeAmount ErrorKind = "NEGATIVE_AMOUNT"
)

// ValidationError is a single rule violation found in a transaction.
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// New returns a ValidationError of the given kind.
func New(kind ErrorKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error satisfies the error interface and prints human-readable errors.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ValidationResult is the outcome of validating a single transaction.
// Errors are ordered by rule, and within a rule by input or output index.
type ValidationResult struct {
	Valid  bool               `json:"valid"`
	Errors []*ValidationError `json:"errors"`
}

// NewValidationResult builds a result out of the collected errors.
func NewValidationResult(validationErrors []*ValidationError) *ValidationResult {
	if validationErrors == nil {
		validationErrors = []*ValidationError{}
	}
	return &ValidationResult{
		Valid:  len(validationErrors) == 0,
		Errors: validationErrors,
	}
}

// HasKind returns whether the result contains an error of the given kind.
func (r *ValidationResult) HasKind(kind ErrorKind) bool {
	return r.CountKind(kind) > 0
}

// CountKind returns how many errors of the given kind the result contains.
func (r *ValidationResult) CountKind(kind ErrorKind) int {
	count := 0
	for _, validationError := range r.Errors {
		if validationError.Kind == kind {
			count++
		}
	}
	return count
}

// Kinds returns the kind of every error, in order.
func (r *ValidationResult) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, len(r.Errors))
	for i, validationError := range r.Errors {
		kinds[i] = validationError.Kind
	}
	return kinds
}

// Err returns nil for a valid result, and otherwise an error wrapping
// ErrInvalidTransaction that lists every violation.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return errors.WithStack(&ErrInvalidTransaction{Errors: r.Errors})
}

// ErrInvalidTransaction carries the violations of a rejected transaction for
// callers that prefer to handle validation through the error interface.
type ErrInvalidTransaction struct {
	Errors []*ValidationError
}

func (e *ErrInvalidTransaction) Error() string {
	messages := make([]string, len(e.Errors))
	for i, validationError := range e.Errors {
		messages[i] = validationError.Error()
	}
	return "invalid transaction: [" + strings.Join(messages, "; ") + "]"
}
