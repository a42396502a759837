package catalog

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
	fsclient "github.com/decantiq/decantiq-backend/pkg/firestore"
)

// FirestoreStore implements Store on top of Firestore document collections.
type FirestoreStore struct {
	client             *fsclient.Client
	productsCollection string
	curatedCollection  string
}

// NewFirestoreStore builds a catalog store backed by the named collections.
func NewFirestoreStore(client *fsclient.Client, productsCollection, curatedCollection string) (*FirestoreStore, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "firestore client required")
	}
	if productsCollection == "" || curatedCollection == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "firestore collection names required")
	}
	return &FirestoreStore{
		client:             client,
		productsCollection: productsCollection,
		curatedCollection:  curatedCollection,
	}, nil
}

func (s *FirestoreStore) products() *firestore.CollectionRef {
	return s.client.Raw().Collection(s.productsCollection)
}

func (s *FirestoreStore) collections() *firestore.CollectionRef {
	return s.client.Raw().Collection(s.curatedCollection)
}

// ListProducts returns the full catalog snapshot in document order.
func (s *FirestoreStore) ListProducts(ctx context.Context) ([]Product, error) {
	it := s.products().Documents(ctx)
	defer it.Stop()

	var items []Product
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
		}
		items = append(items, docToProduct(doc))
	}
	return items, nil
}

func (s *FirestoreStore) GetProduct(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	doc, err := s.products().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return docToProduct(doc), nil
}

func (s *FirestoreStore) CreateProduct(ctx context.Context, product Product) (Product, error) {
	var ref *firestore.DocumentRef
	if product.ID == "" {
		ref = s.products().NewDoc()
		product.ID = ref.ID
	} else {
		ref = s.products().Doc(product.ID)
	}

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := ref.Create(ctx, productToDoc(product)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return Product{}, pkgerrors.New(pkgerrors.CodeConflict, "product already exists")
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}
	return product, nil
}

func (s *FirestoreStore) UpdateProduct(ctx context.Context, product Product) (Product, error) {
	if product.ID == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	ref := s.products().Doc(product.ID)
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	product.UpdatedAt = time.Now().UTC()
	if _, err := ref.Set(ctx, productToDoc(product)); err != nil {
		return Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}
	return product, nil
}

func (s *FirestoreStore) DeleteProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if _, err := s.products().Doc(id).Delete(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}
	return nil
}

// ListCollections returns curated collections ordered by position.
func (s *FirestoreStore) ListCollections(ctx context.Context) ([]Collection, error) {
	it := s.collections().OrderBy("position", firestore.Asc).Documents(ctx)
	defer it.Stop()

	var items []Collection
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing collections")
		}
		items = append(items, docToCollection(doc))
	}
	return items, nil
}

func (s *FirestoreStore) GetCollection(ctx context.Context, slug string) (Collection, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Collection{}, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
	}

	doc, err := s.collections().Doc(slug).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Collection{}, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		return Collection{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading collection")
	}
	return docToCollection(doc), nil
}

// SaveCollection upserts by slug; the slug doubles as the document id.
func (s *FirestoreStore) SaveCollection(ctx context.Context, collection Collection) (Collection, error) {
	if collection.Slug == "" {
		return Collection{}, pkgerrors.New(pkgerrors.CodeValidation, "collection slug is required")
	}

	collection.ID = collection.Slug
	collection.UpdatedAt = time.Now().UTC()
	if collection.CreatedAt.IsZero() {
		collection.CreatedAt = collection.UpdatedAt
	}

	ref := s.collections().Doc(collection.Slug)
	if _, err := ref.Set(ctx, collectionToDoc(collection)); err != nil {
		return Collection{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving collection")
	}
	return collection, nil
}

func (s *FirestoreStore) DeleteCollection(ctx context.Context, slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil
	}
	if _, err := s.collections().Doc(slug).Delete(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting collection")
	}
	return nil
}

// docToProduct coerces a loosely-typed document into a Product. The legacy
// catalog stored some numeric fields as strings and omitted optional arrays,
// so every field is read defensively.
func docToProduct(doc *firestore.DocumentSnapshot) Product {
	data := doc.Data()
	if data == nil {
		return Product{ID: doc.Ref.ID}
	}
	return Product{
		ID:                 doc.Ref.ID,
		Name:               asString(data["name"]),
		Brand:              asString(data["brand"]),
		Sizes:              asStringSlice(data["sizes"]),
		Prices:             asStringSlice(data["prices"]),
		Category:           asString(data["category"]),
		IsOnOffer:          asBool(data["isOnOffer"]),
		DiscountPercentage: asString(data["discountPercentage"]),
		OfferDescription:   asString(data["offerDescription"]),
		Notes:              asStringSlice(data["notes"]),
		Rating:             asFloat(data["rating"]),
		InStock:            asBool(data["inStock"]),
		ShowOnHomepage:     asBool(data["showOnHomepage"]),
		CreatedAt:          asTime(data["createdAt"]),
		UpdatedAt:          asTime(data["updatedAt"]),
	}
}

func productToDoc(product Product) map[string]any {
	return map[string]any{
		"name":               product.Name,
		"brand":              product.Brand,
		"sizes":              product.Sizes,
		"prices":             product.Prices,
		"category":           product.Category,
		"isOnOffer":          product.IsOnOffer,
		"discountPercentage": product.DiscountPercentage,
		"offerDescription":   product.OfferDescription,
		"notes":              product.Notes,
		"rating":             product.Rating,
		"inStock":            product.InStock,
		"showOnHomepage":     product.ShowOnHomepage,
		"createdAt":          product.CreatedAt,
		"updatedAt":          product.UpdatedAt,
	}
}

func docToCollection(doc *firestore.DocumentSnapshot) Collection {
	data := doc.Data()
	if data == nil {
		return Collection{ID: doc.Ref.ID, Slug: doc.Ref.ID}
	}
	return Collection{
		ID:          doc.Ref.ID,
		Name:        asString(data["name"]),
		Slug:        doc.Ref.ID,
		Description: asString(data["description"]),
		ProductIDs:  asStringSlice(data["productIds"]),
		Position:    int(asFloat(data["position"])),
		CreatedAt:   asTime(data["createdAt"]),
		UpdatedAt:   asTime(data["updatedAt"]),
	}
}

func collectionToDoc(collection Collection) map[string]any {
	return map[string]any{
		"name":        collection.Name,
		"description": collection.Description,
		"productIds":  collection.ProductIDs,
		"position":    collection.Position,
		"createdAt":   collection.CreatedAt,
		"updatedAt":   collection.UpdatedAt,
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asTime(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t.UTC()
	}
	return time.Time{}
}

func asStringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		out := make([]string, 0, len(vv))
		for _, s := range vv {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}
