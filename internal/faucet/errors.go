package faucet

import (
	"fmt"

	"github.com/pkg/errors"
)

// ValidationError is a terminal request rejection. No chain interaction has
// happened and no sequence number was consumed when one is returned.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SequenceGapError marks a request that consumed a sequence number but never
// reached the network's pending pool. The number is not returned to the
// sequencer; until an operator fills the gap (e.g. with a self-transfer at
// that nonce), transactions at higher nonces will not confirm.
type SequenceGapError struct {
	Nonce uint64
	cause error
}

func (e *SequenceGapError) Error() string {
	return fmt.Sprintf("sequence gap at nonce %d: %v", e.Nonce, e.cause)
}

func (e *SequenceGapError) Unwrap() error {
	return e.cause
}
