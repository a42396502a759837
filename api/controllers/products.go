package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/decantiq/decantiq-backend/api/responses"
	"github.com/decantiq/decantiq-backend/api/validators"
	"github.com/decantiq/decantiq-backend/internal/catalog"
	"github.com/decantiq/decantiq-backend/internal/pricing"
	"github.com/decantiq/decantiq-backend/pkg/logger"
)

// ProductList serves the storefront catalog with the filter/sort view
// applied server-side.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := viewParamsFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]productResponse, 0, len(products))
		for _, product := range products {
			item, buildErr := newProductResponse(product)
			if buildErr != nil {
				responses.WriteError(r.Context(), logg, w, buildErr)
				return
			}
			payload = append(payload, item)
		}
		responses.WriteSuccess(w, payload)
	}
}

// ProductGet serves one product with per-size effective prices.
func ProductGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := newProductResponse(product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

// AdminProductCreate persists a new catalog product. The admin gate runs in
// middleware before this handler.
func AdminProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productWriteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		response, err := newProductResponse(product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, response)
	}
}

// AdminProductUpdate applies a partial update to a product.
func AdminProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")

		var payload productPatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		response, err := newProductResponse(product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, response)
	}
}

// AdminProductDelete removes a product from the catalog.
func AdminProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": productID})
	}
}

func viewParamsFromQuery(r *http.Request) (catalog.ViewParams, error) {
	sortKey, err := validators.ParseQuerySortKey(r, "sort")
	if err != nil {
		return catalog.ViewParams{}, err
	}
	inStock, err := validators.ParseQueryBool(r, "in_stock")
	if err != nil {
		return catalog.ViewParams{}, err
	}
	homepage, err := validators.ParseQueryBool(r, "homepage")
	if err != nil {
		return catalog.ViewParams{}, err
	}

	query := r.URL.Query()
	return catalog.ViewParams{
		SearchTerm:   strings.TrimSpace(query.Get("search")),
		Category:     strings.TrimSpace(query.Get("category")),
		Brand:        strings.TrimSpace(query.Get("brand")),
		SortKey:      sortKey,
		InStockOnly:  inStock,
		HomepageOnly: homepage,
	}, nil
}

type productResponse struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Brand              string              `json:"brand"`
	Sizes              []string            `json:"sizes"`
	Prices             []string            `json:"prices"`
	Category           string              `json:"category"`
	IsOnOffer          bool                `json:"is_on_offer"`
	DiscountPercentage string              `json:"discount_percentage,omitempty"`
	OfferDescription   string              `json:"offer_description,omitempty"`
	Notes              []string            `json:"notes,omitempty"`
	Rating             float64             `json:"rating"`
	InStock            bool                `json:"in_stock"`
	ShowOnHomepage     bool                `json:"show_on_homepage"`
	EffectivePrices    []sizePriceResponse `json:"effective_prices"`
	CreatedAt          *time.Time          `json:"created_at,omitempty"`
	UpdatedAt          *time.Time          `json:"updated_at,omitempty"`
}

type sizePriceResponse struct {
	Size         string `json:"size"`
	Display      string `json:"display"`
	Original     string `json:"original"`
	IsDiscounted bool   `json:"is_discounted"`
}

func newProductResponse(product catalog.Product) (productResponse, error) {
	response := productResponse{
		ID:                 product.ID,
		Name:               product.Name,
		Brand:              product.Brand,
		Sizes:              product.Sizes,
		Prices:             product.Prices,
		Category:           product.Category,
		IsOnOffer:          product.IsOnOffer,
		DiscountPercentage: product.DiscountPercentage,
		OfferDescription:   product.OfferDescription,
		Notes:              product.Notes,
		Rating:             product.Rating,
		InStock:            product.InStock,
		ShowOnHomepage:     product.ShowOnHomepage,
	}
	if !product.CreatedAt.IsZero() {
		created := product.CreatedAt
		response.CreatedAt = &created
	}
	if !product.UpdatedAt.IsZero() {
		updated := product.UpdatedAt
		response.UpdatedAt = &updated
	}

	for _, size := range product.Sizes {
		quote, err := pricing.EffectivePrice(product, size)
		if err != nil {
			return productResponse{}, err
		}
		response.EffectivePrices = append(response.EffectivePrices, sizePriceResponse{
			Size:         size,
			Display:      quote.Display.StringFixed(2),
			Original:     quote.Original.StringFixed(2),
			IsDiscounted: quote.IsDiscounted,
		})
	}
	return response, nil
}

type productWriteRequest struct {
	Name               string   `json:"name" validate:"required"`
	Brand              string   `json:"brand" validate:"required"`
	Sizes              []string `json:"sizes" validate:"required,min=1"`
	Prices             []string `json:"prices" validate:"required,min=1"`
	Category           string   `json:"category"`
	IsOnOffer          bool     `json:"is_on_offer"`
	DiscountPercentage string   `json:"discount_percentage"`
	OfferDescription   string   `json:"offer_description"`
	Notes              []string `json:"notes"`
	Rating             float64  `json:"rating" validate:"gte=0,lte=5"`
	InStock            bool     `json:"in_stock"`
	ShowOnHomepage     bool     `json:"show_on_homepage"`
}

func (r productWriteRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:               r.Name,
		Brand:              r.Brand,
		Sizes:              r.Sizes,
		Prices:             r.Prices,
		Category:           r.Category,
		IsOnOffer:          r.IsOnOffer,
		DiscountPercentage: r.DiscountPercentage,
		OfferDescription:   r.OfferDescription,
		Notes:              r.Notes,
		Rating:             r.Rating,
		InStock:            r.InStock,
		ShowOnHomepage:     r.ShowOnHomepage,
	}
}

type productPatchRequest struct {
	Name               *string   `json:"name"`
	Brand              *string   `json:"brand"`
	Sizes              *[]string `json:"sizes"`
	Prices             *[]string `json:"prices"`
	Category           *string   `json:"category"`
	IsOnOffer          *bool     `json:"is_on_offer"`
	DiscountPercentage *string   `json:"discount_percentage"`
	OfferDescription   *string   `json:"offer_description"`
	Notes              *[]string `json:"notes"`
	Rating             *float64  `json:"rating"`
	InStock            *bool     `json:"in_stock"`
	ShowOnHomepage     *bool     `json:"show_on_homepage"`
}

func (r productPatchRequest) toInput() catalog.UpdateProductInput {
	return catalog.UpdateProductInput{
		Name:               r.Name,
		Brand:              r.Brand,
		Sizes:              r.Sizes,
		Prices:             r.Prices,
		Category:           r.Category,
		IsOnOffer:          r.IsOnOffer,
		DiscountPercentage: r.DiscountPercentage,
		OfferDescription:   r.OfferDescription,
		Notes:              r.Notes,
		Rating:             r.Rating,
		InStock:            r.InStock,
		ShowOnHomepage:     r.ShowOnHomepage,
	}
}
