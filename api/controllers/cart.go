package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/decantiq/decantiq-backend/api/middleware"
	"github.com/decantiq/decantiq-backend/api/responses"
	"github.com/decantiq/decantiq-backend/api/validators"
	cartsvc "github.com/decantiq/decantiq-backend/internal/cart"
	"github.com/decantiq/decantiq-backend/internal/catalog"
	"github.com/decantiq/decantiq-backend/internal/pricing"
	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
	"github.com/decantiq/decantiq-backend/pkg/logger"
)

// CartGet returns the session's line items and total.
func CartGet(carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := carts.ListItems(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := carts.Total(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(items, total.StringFixed(2)))
	}
}

// CartAdd snapshots the product's current effective price for the chosen
// size and merges the line into the session cart.
func CartAdd(carts cartsvc.Service, products catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.GetProduct(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := pricing.EffectivePrice(product, payload.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := carts.AddItem(r.Context(), sessionID, cartsvc.AddItemInput{
			ProductID:   product.ID,
			ProductName: product.Name,
			Brand:       product.Brand,
			Size:        payload.Size,
			UnitPrice:   quote.Display,
			Quantity:    payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newLineItemResponse(item))
	}
}

// CartUpdateQuantity sets a line's quantity; zero removes it.
func CartUpdateQuantity(carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		size := chi.URLParam(r, "size")

		if err := carts.UpdateQuantity(r.Context(), sessionID, productID, size, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"product_id": productID,
			"size":       size,
			"quantity":   payload.Quantity,
		})
	}
}

// CartRemove deletes a line item; removing an absent line is a no-op.
func CartRemove(carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		size := chi.URLParam(r, "size")

		if err := carts.RemoveItem(r.Context(), sessionID, productID, size); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"removed": productID + "/" + size})
	}
}

// CartClear drops the whole cart for the session.
func CartClear(carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := requireSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := carts.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func requireSessionID(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session missing")
	}
	return sessionID, nil
}

type cartAddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

type cartResponse struct {
	Items []lineItemResponse `json:"items"`
	Total string             `json:"total"`
}

type lineItemResponse struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Brand       string    `json:"brand"`
	Size        string    `json:"size"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
	AddedAt     time.Time `json:"added_at"`
}

func newCartResponse(items []cartsvc.LineItem, total string) cartResponse {
	response := cartResponse{Items: make([]lineItemResponse, 0, len(items)), Total: total}
	for _, item := range items {
		response.Items = append(response.Items, newLineItemResponse(item))
	}
	return response
}

func newLineItemResponse(item cartsvc.LineItem) lineItemResponse {
	return lineItemResponse{
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Brand:       item.Brand,
		Size:        item.Size,
		UnitPrice:   item.UnitPrice.StringFixed(2),
		Quantity:    item.Quantity,
		Subtotal:    item.Subtotal().StringFixed(2),
		AddedAt:     item.AddedAt,
	}
}
