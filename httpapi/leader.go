package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/rustkas/mini-ledger-go/common"
	"github.com/rustkas/mini-ledger-go/internal/tlog"
	"github.com/rustkas/mini-ledger-go/node"
	"github.com/rustkas/mini-ledger-go/tx"
)

// NewLeaderHandler routes health, poh, bank, ledger, slots/:n, airdrop, and
// transfer against l, wrapped in permissive CORS so a browser-based demo
// client can hit a leader directly.
func NewLeaderHandler(l *node.Leader) http.Handler {
	router := httprouter.New()
	router.GET("/health", handleHealth)
	router.GET("/poh", handlePoH(l))
	router.GET("/bank", handleLeaderBank(l))
	router.GET("/ledger", handleLeaderLedger(l))
	router.GET("/slots/:n", handleLeaderSlot(l))
	router.POST("/airdrop", handleAirdrop(l))
	router.POST("/transfer", handleTransfer(l))
	return cors.Default().Handler(router)
}

func handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handlePoH(l *node.Leader) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, map[string]common.Hash{"hash": l.PoH()})
	}
}

func handleLeaderBank(l *node.Leader) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, bankSnapshotToWire(l.Bank()))
	}
}

func handleLeaderLedger(l *node.Leader) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, l.Ledger())
	}
}

func handleLeaderSlot(l *node.Leader) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		n, err := strconv.ParseUint(ps.ByName("n"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		slot := l.Slot(n)
		if slot == nil {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "slot not sealed yet"})
			return
		}
		writeJSON(w, http.StatusOK, slot)
	}
}

type airdropRequest struct {
	Pubkey common.PublicKey `json:"pubkey"`
	Amount json.Number      `json:"amount"`
}

func handleAirdrop(l *node.Leader) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req airdropRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		amount, err := uint256.FromDecimal(string(req.Amount))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := l.Airdrop(req.Pubkey, amount); err != nil {
			tlog.Warn("httpapi: airdrop rejected", "pubkey", req.Pubkey, "err", err)
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func handleTransfer(l *node.Leader) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var t tx.Transfer
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := l.Transfer(&t); err != nil {
			tlog.Debug("httpapi: transfer rejected", "from", t.From, "err", err)
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
