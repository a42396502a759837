package catalog

import (
	"context"
	"fmt"
)

// Service exposes catalog read and admin write operations.
type Service interface {
	ListProducts(ctx context.Context, params ViewParams) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCollections(ctx context.Context) ([]Collection, error)
	GetCollection(ctx context.Context, slug string) (Collection, error)
	SaveCollection(ctx context.Context, slug string, input CollectionInput) (Collection, error)
	DeleteCollection(ctx context.Context, slug string) error
}

// UpdateProductInput holds optional mutation values; nil fields are untouched.
type UpdateProductInput struct {
	Name               *string
	Brand              *string
	Sizes              *[]string
	Prices             *[]string
	Category           *string
	IsOnOffer          *bool
	DiscountPercentage *string
	OfferDescription   *string
	Notes              *[]string
	Rating             *float64
	InStock            *bool
	ShowOnHomepage     *bool
}

type service struct {
	store Store
}

// NewService constructs a catalog service over the provided store.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	return &service{store: store}, nil
}

// ListProducts loads the catalog snapshot and applies the filter/sort view.
func (s *service) ListProducts(ctx context.Context, params ViewParams) ([]Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return View(products, params), nil
}

func (s *service) GetProduct(ctx context.Context, id string) (Product, error) {
	return s.store.GetProduct(ctx, id)
}

// CreateProduct validates the payload and persists a new catalog document.
// Callers are assumed to have passed the admin gate already.
func (s *service) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	product, err := ParseProduct("", input)
	if err != nil {
		return Product{}, err
	}
	return s.store.CreateProduct(ctx, product)
}

// UpdateProduct merges the patch over the stored record and revalidates the
// whole product, so a partial update can never break size/price alignment.
func (s *service) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (Product, error) {
	existing, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}

	merged := applyPatch(existing, input)
	product, err := ParseProduct(existing.ID, merged)
	if err != nil {
		return Product{}, err
	}
	product.CreatedAt = existing.CreatedAt
	return s.store.UpdateProduct(ctx, product)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.store.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteProduct(ctx, id)
}

func (s *service) ListCollections(ctx context.Context) ([]Collection, error) {
	return s.store.ListCollections(ctx)
}

func (s *service) GetCollection(ctx context.Context, slug string) (Collection, error) {
	return s.store.GetCollection(ctx, slug)
}

func (s *service) SaveCollection(ctx context.Context, slug string, input CollectionInput) (Collection, error) {
	if input.Slug == "" {
		input.Slug = slug
	}
	collection, err := ParseCollection(slug, input)
	if err != nil {
		return Collection{}, err
	}
	return s.store.SaveCollection(ctx, collection)
}

func (s *service) DeleteCollection(ctx context.Context, slug string) error {
	return s.store.DeleteCollection(ctx, slug)
}

func applyPatch(existing Product, input UpdateProductInput) ProductInput {
	merged := ProductInput{
		Name:               existing.Name,
		Brand:              existing.Brand,
		Sizes:              existing.Sizes,
		Prices:             existing.Prices,
		Category:           existing.Category,
		IsOnOffer:          existing.IsOnOffer,
		DiscountPercentage: existing.DiscountPercentage,
		OfferDescription:   existing.OfferDescription,
		Notes:              existing.Notes,
		Rating:             existing.Rating,
		InStock:            existing.InStock,
		ShowOnHomepage:     existing.ShowOnHomepage,
	}

	if input.Name != nil {
		merged.Name = *input.Name
	}
	if input.Brand != nil {
		merged.Brand = *input.Brand
	}
	if input.Sizes != nil {
		merged.Sizes = *input.Sizes
	}
	if input.Prices != nil {
		merged.Prices = *input.Prices
	}
	if input.Category != nil {
		merged.Category = *input.Category
	}
	if input.IsOnOffer != nil {
		merged.IsOnOffer = *input.IsOnOffer
	}
	if input.DiscountPercentage != nil {
		merged.DiscountPercentage = *input.DiscountPercentage
	}
	if input.OfferDescription != nil {
		merged.OfferDescription = *input.OfferDescription
	}
	if input.Notes != nil {
		merged.Notes = *input.Notes
	}
	if input.Rating != nil {
		merged.Rating = *input.Rating
	}
	if input.InStock != nil {
		merged.InStock = *input.InStock
	}
	if input.ShowOnHomepage != nil {
		merged.ShowOnHomepage = *input.ShowOnHomepage
	}

	return merged
}
