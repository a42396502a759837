package controllers

import (
	"net/http"
	"time"

	"github.com/decantiq/decantiq-backend/api/responses"
	"github.com/decantiq/decantiq-backend/api/validators"
	"github.com/decantiq/decantiq-backend/internal/checkout"
	"github.com/decantiq/decantiq-backend/pkg/db/models"
	"github.com/decantiq/decantiq-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// CheckoutQuote returns the cart snapshot the payment step is priced
// against. It never mutates the cart.
func CheckoutQuote(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(quote.Items, quote.Total.StringFixed(2)))
	}
}

// CheckoutConfirm persists the cart as an order and clears it. The
// Idempotency-Key header, when present, makes retries return the
// original order.
func CheckoutConfirm(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutConfirmRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Confirm(r.Context(), sessionID, checkout.ConfirmInput{
			Email:          payload.Email,
			IdempotencyKey: r.Header.Get("Idempotency-Key"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(order))
	}
}

type checkoutConfirmRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type orderResponse struct {
	ID        string              `json:"id"`
	SessionID string              `json:"session_id"`
	Email     string              `json:"email"`
	Status    string              `json:"status"`
	Subtotal  string              `json:"subtotal"`
	Discount  string              `json:"discount"`
	Total     string              `json:"total"`
	Items     []orderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}

type orderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
	Size        string `json:"size"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Total       string `json:"total"`
}

func newOrderResponse(order *models.Order) orderResponse {
	response := orderResponse{
		ID:        order.ID.String(),
		SessionID: order.SessionID,
		Email:     order.Email,
		Status:    string(order.Status),
		Subtotal:  centsToAmount(order.SubtotalCents),
		Discount:  centsToAmount(order.DiscountCents),
		Total:     centsToAmount(order.TotalCents),
		Items:     make([]orderItemResponse, 0, len(order.Items)),
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		response.Items = append(response.Items, orderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Brand:       item.Brand,
			Size:        item.Size,
			UnitPrice:   centsToAmount(item.UnitPriceCents),
			Quantity:    item.Quantity,
			Total:       centsToAmount(item.TotalCents),
		})
	}
	return response
}

func centsToAmount(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}
