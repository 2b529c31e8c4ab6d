package sponsorship

import "fmt"

// Stage names the pipeline step a failure belongs to. The caller-facing
// layer maps stages onto user-visible messaging: funds are never at risk
// before signing, and a failure after signing is "pending, check again".
type Stage string

const (
	StageSponsoring Stage = "sponsoring"
	StageSigning    Stage = "signing"
	StageExecuting  Stage = "executing"
)

// Validation failure reasons.
const (
	ReasonMissingSender    = "missing_sender"
	ReasonInvalidAddress   = "invalid_address"
	ReasonInvalidTarget    = "invalid_target"
	ReasonSenderNotAllowed = "sender_not_allowed"
	ReasonTargetNotAllowed = "target_not_allowed"
)

// ValidationError reports a structurally invalid request. It is surfaced to
// the caller as a 4xx with the field-level message and is never retried.
type ValidationError struct {
	Field   string
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, reason, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}

// SponsorshipError reports that the provider rejected or could not complete
// a sponsorship request. Detail carries the provider's raw error text for
// operator logs; it must not be surfaced verbatim to callers.
type SponsorshipError struct {
	Detail string
	Err    error
}

func (e *SponsorshipError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sponsorship provider rejected the transaction: %v", e.Err)
	}
	return "sponsorship provider rejected the transaction"
}

func (e *SponsorshipError) Unwrap() error {
	return e.Err
}

// ExecutionError reports that the provider rejected or could not complete an
// execution request, including unknown, expired, and already-executed
// digests.
type ExecutionError struct {
	Detail string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("execution provider rejected the transaction: %v", e.Err)
	}
	return "execution provider rejected the transaction"
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// SigningError reports a failure in the user-side signing step. A cancelled
// signature is user abandonment, not a system fault.
type SigningError struct {
	Cancelled bool
	Err       error
}

func (e *SigningError) Error() string {
	if e.Cancelled {
		return "transaction signing cancelled by user"
	}
	return fmt.Sprintf("transaction signing failed: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// ErrUserCancelled is the canonical user-abandonment signing error.
var ErrUserCancelled = &SigningError{Cancelled: true}
