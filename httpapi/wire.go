// Package httpapi wires the ledger's operations to HTTP: routing via
// julienschmidt/httprouter, CORS via rs/cors, hex encoding case-insensitive
// on parse and lowercase on output per the wire format.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/holiman/uint256"
	"github.com/rustkas/mini-ledger-go/common"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// bankSnapshotToWire renders a balance map as pubkey-hex -> decimal-string,
// since Go's JSON encoder cannot use common.PublicKey as an object key
// directly.
func bankSnapshotToWire(snap map[common.PublicKey]*uint256.Int) map[string]string {
	out := make(map[string]string, len(snap))
	for k, v := range snap {
		out[k.Hex()] = v.Dec()
	}
	return out
}
