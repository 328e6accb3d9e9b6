package tx

import "errors"

// Admission failure kinds. Validation errors are reported to the caller and
// never mutate bank, window, or signature-set state.
var (
	ErrMalformedTransfer  = errors.New("tx: malformed transfer")
	ErrInvalidSignature   = errors.New("tx: invalid signature")
	ErrUnknownRecentHash  = errors.New("tx: unknown recent hash")
	ErrDuplicateSignature = errors.New("tx: duplicate signature")
	ErrInsufficientFunds  = errors.New("tx: insufficient funds")
)
