package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avoronov/ledgerd/internal/services/ledger"
)

// NewRouter constructs the router with all API endpoints registered.
func NewRouter(svc *ledger.Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/accounts", h.ListAccountsHandler)
		r.Post("/accounts", h.CreateAccountHandler)
		r.Get("/accounts/{accountID}", h.GetAccountHandler)
		r.Put("/accounts/{accountID}", h.RenameAccountHandler)

		r.Get("/transfers", h.ListTransfersHandler)
		r.Post("/transfers", h.CreateTransferHandler)
		r.Get("/transfers/{transferID}", h.GetTransferHandler)
	})

	return r
}
