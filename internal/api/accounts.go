package api

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type createAccountRequest struct {
	OwnerName string `json:"ownerName"`
	Balance   string `json:"balance"`
}

type renameAccountRequest struct {
	OwnerName string `json:"ownerName"`
}

// ListAccountsHandler handles GET /api/v1/accounts
func (h *HandlerProvider) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	accs, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accs)
}

// GetAccountHandler handles GET /api/v1/accounts/{accountID}
func (h *HandlerProvider) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDFromPath(r, "accountID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountID in path")
		return
	}

	acc, err := h.svc.GetAccount(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, acc)
}

// CreateAccountHandler handles POST /api/v1/accounts. The starting balance
// is optional and defaults to zero; blocked amount always starts at zero.
func (h *HandlerProvider) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest

	err := decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance := decimal.Zero

	if req.Balance != "" {
		balance, err = decimal.NewFromString(req.Balance)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid balance")
			return
		}
	}

	acc, err := h.svc.CreateAccount(r.Context(), req.OwnerName, balance)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, acc)
}

// RenameAccountHandler handles PUT /api/v1/accounts/{accountID}. Only the
// owner name can be changed from outside; balances belong to the engine.
func (h *HandlerProvider) RenameAccountHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDFromPath(r, "accountID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid accountID in path")
		return
	}

	var req renameAccountRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.RenameAccount(r.Context(), id, req.OwnerName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	acc, err := h.svc.GetAccount(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, acc)
}
