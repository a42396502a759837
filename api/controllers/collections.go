package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/decantiq/decantiq-backend/api/responses"
	"github.com/decantiq/decantiq-backend/api/validators"
	"github.com/decantiq/decantiq-backend/internal/catalog"
	"github.com/decantiq/decantiq-backend/pkg/logger"
)

func CollectionList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collections, err := svc.ListCollections(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]collectionResponse, 0, len(collections))
		for _, collection := range collections {
			payload = append(payload, newCollectionResponse(collection))
		}
		responses.WriteSuccess(w, payload)
	}
}

func CollectionGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		collection, err := svc.GetCollection(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCollectionResponse(collection))
	}
}

// AdminCollectionSave upserts a curated collection by slug.
func AdminCollectionSave(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		var payload collectionWriteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		collection, err := svc.SaveCollection(r.Context(), slug, catalog.CollectionInput{
			Name:        payload.Name,
			Slug:        slug,
			Description: payload.Description,
			ProductIDs:  payload.ProductIDs,
			Position:    payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCollectionResponse(collection))
	}
}

func AdminCollectionDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		if err := svc.DeleteCollection(r.Context(), slug); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": slug})
	}
}

type collectionResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ProductIDs  []string   `json:"product_ids,omitempty"`
	Position    int        `json:"position"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func newCollectionResponse(collection catalog.Collection) collectionResponse {
	response := collectionResponse{
		ID:          collection.ID,
		Name:        collection.Name,
		Slug:        collection.Slug,
		Description: collection.Description,
		ProductIDs:  collection.ProductIDs,
		Position:    collection.Position,
	}
	if !collection.UpdatedAt.IsZero() {
		updated := collection.UpdatedAt
		response.UpdatedAt = &updated
	}
	return response
}

type collectionWriteRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	ProductIDs  []string `json:"product_ids"`
	Position    int      `json:"position" validate:"gte=0"`
}
