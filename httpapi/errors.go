package httpapi

import (
	"errors"
	"net/http"

	"github.com/rustkas/mini-ledger-go/bank"
	"github.com/rustkas/mini-ledger-go/node"
	"github.com/rustkas/mini-ledger-go/tx"
)

// statusFor maps a validation or ingest failure to the HTTP status the
// endpoint table implies: malformed input and admission failures are 400s,
// an IngestMismatch is a 409 (the caller's view of the chain conflicts with
// what was sent), anything unrecognized is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tx.ErrMalformedTransfer),
		errors.Is(err, tx.ErrInvalidSignature),
		errors.Is(err, tx.ErrUnknownRecentHash),
		errors.Is(err, tx.ErrDuplicateSignature),
		errors.Is(err, tx.ErrInsufficientFunds),
		errors.Is(err, bank.ErrInsufficientFunds),
		errors.Is(err, bank.ErrAmountOverflow):
		return http.StatusBadRequest
	}
	var mismatch *node.IngestMismatch
	if errors.As(err, &mismatch) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
