package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/avoronov/ledgerd/internal/services/ledger"
)

type createTransferRequest struct {
	FromAccountID int64  `json:"fromAccountId"`
	ToAccountID   int64  `json:"toAccountId"`
	Amount        string `json:"amount"`
}

// ListTransfersHandler handles GET /api/v1/transfers
func (h *HandlerProvider) ListTransfersHandler(w http.ResponseWriter, r *http.Request) {
	trs, err := h.svc.ListTransfers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trs)
}

// GetTransferHandler handles GET /api/v1/transfers/{transferID}
func (h *HandlerProvider) GetTransferHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDFromPath(r, "transferID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transferID in path")
		return
	}

	tr, err := h.svc.GetTransfer(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tr)
}

// CreateTransferHandler handles POST /api/v1/transfers. The created
// transfer comes back PLANNED; execution is asynchronous and owned by the
// scheduler.
func (h *HandlerProvider) CreateTransferHandler(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Amount == "" {
		writeError(w, http.StatusBadRequest, "amount required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	tr, err := h.svc.CreateTransfer(r.Context(), ledger.CreateRequest{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        amount,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tr)
}
