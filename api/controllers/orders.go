package controllers

import (
	"net/http"

	"github.com/decantiq/decantiq-backend/api/responses"
	"github.com/decantiq/decantiq-backend/internal/orders"
	"github.com/decantiq/decantiq-backend/pkg/logger"
)

// OrderHistory returns the session's own confirmed orders, newest first.
func OrderHistory(repo orders.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := repo.ListBySession(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]orderResponse, 0, len(history))
		for i := range history {
			payload = append(payload, newOrderResponse(&history[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}
