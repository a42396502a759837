package catalog

import "context"

// Store is the catalog read/write contract. The pricing engine and the
// filter view operate purely on the snapshots it returns.
type Store interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	CreateProduct(ctx context.Context, product Product) (Product, error)
	UpdateProduct(ctx context.Context, product Product) (Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCollections(ctx context.Context) ([]Collection, error)
	GetCollection(ctx context.Context, slug string) (Collection, error)
	SaveCollection(ctx context.Context, collection Collection) (Collection, error)
	DeleteCollection(ctx context.Context, slug string) error
}
