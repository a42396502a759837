package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/decantiq/decantiq-backend/api/responses"
	"github.com/decantiq/decantiq-backend/api/validators"
	"github.com/decantiq/decantiq-backend/internal/orders"
	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
	"github.com/decantiq/decantiq-backend/pkg/logger"
)

// AdminOrderList returns the most recent confirmed orders.
func AdminOrderList(repo orders.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recent, err := repo.ListRecent(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]orderResponse, 0, len(recent))
		for i := range recent {
			payload = append(payload, newOrderResponse(&recent[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

// AdminOrderGet returns a single order with its line items.
func AdminOrderGet(repo orders.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "order id must be a uuid"))
			return
		}

		order, err := repo.GetByID(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}
