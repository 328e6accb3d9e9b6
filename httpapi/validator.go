package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/rustkas/mini-ledger-go/entry"
	"github.com/rustkas/mini-ledger-go/internal/tlog"
	"github.com/rustkas/mini-ledger-go/node"
)

// NewValidatorHandler routes health, bank, ledger, and ingest against v.
func NewValidatorHandler(v *node.Validator) http.Handler {
	router := httprouter.New()
	router.GET("/health", handleHealth)
	router.GET("/bank", handleValidatorBank(v))
	router.GET("/ledger", handleValidatorLedger(v))
	router.POST("/ingest", handleIngest(v))
	return cors.Default().Handler(router)
}

func handleValidatorBank(v *node.Validator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, bankSnapshotToWire(v.Bank()))
	}
}

func handleValidatorLedger(v *node.Validator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, v.Ledger())
	}
}

type ingestRequest struct {
	Slots []*entry.Slot `json:"slots"`
}

type ingestResponse struct {
	Accepted int    `json:"accepted"`
	Error    string `json:"error,omitempty"`
}

func handleIngest(v *node.Validator) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req ingestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		accepted, err := v.Ingest(req.Slots)
		if err != nil {
			tlog.Warn("httpapi: ingest mismatch", "accepted", accepted, "err", err)
			writeJSON(w, statusFor(err), ingestResponse{Accepted: accepted, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, ingestResponse{Accepted: accepted})
	}
}
