package catalog

import (
	"context"
	"fmt"
	"testing"

	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
	"github.com/decantiq/decantiq-backend/pkg/enums"
)

type stubStore struct {
	products    map[string]Product
	collections map[string]Collection
	listOrder   []string
}

func newStubStore() *stubStore {
	return &stubStore{
		products:    map[string]Product{},
		collections: map[string]Collection{},
	}
}

func (s *stubStore) ListProducts(ctx context.Context) ([]Product, error) {
	items := make([]Product, 0, len(s.listOrder))
	for _, id := range s.listOrder {
		items = append(items, s.products[id])
	}
	return items, nil
}

func (s *stubStore) GetProduct(ctx context.Context, id string) (Product, error) {
	product, ok := s.products[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *stubStore) CreateProduct(ctx context.Context, product Product) (Product, error) {
	if product.ID == "" {
		product.ID = fmt.Sprintf("generated-%d", len(s.listOrder)+1)
	}
	s.products[product.ID] = product
	s.listOrder = append(s.listOrder, product.ID)
	return product, nil
}

func (s *stubStore) UpdateProduct(ctx context.Context, product Product) (Product, error) {
	if _, ok := s.products[product.ID]; !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	s.products[product.ID] = product
	return product, nil
}

func (s *stubStore) DeleteProduct(ctx context.Context, id string) error {
	delete(s.products, id)
	for i, existing := range s.listOrder {
		if existing == id {
			s.listOrder = append(s.listOrder[:i], s.listOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubStore) ListCollections(ctx context.Context) ([]Collection, error) {
	items := make([]Collection, 0, len(s.collections))
	for _, c := range s.collections {
		items = append(items, c)
	}
	return items, nil
}

func (s *stubStore) GetCollection(ctx context.Context, slug string) (Collection, error) {
	collection, ok := s.collections[slug]
	if !ok {
		return Collection{}, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
	}
	return collection, nil
}

func (s *stubStore) SaveCollection(ctx context.Context, collection Collection) (Collection, error) {
	s.collections[collection.Slug] = collection
	return collection, nil
}

func (s *stubStore) DeleteCollection(ctx context.Context, slug string) error {
	delete(s.collections, slug)
	return nil
}

func newTestService(t *testing.T) (Service, *stubStore) {
	t.Helper()
	store := newStubStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestServiceCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}

	loaded, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Name != "Aventus" {
		t.Fatalf("unexpected product %+v", loaded)
	}
}

func TestServiceCreateRejectsInvalidInput(t *testing.T) {
	svc, store := newTestService(t)

	input := validInput()
	input.Prices = []string{"15.00"}
	if _, err := svc.CreateProduct(context.Background(), input); err == nil {
		t.Fatal("expected validation error")
	}
	if len(store.products) != 0 {
		t.Fatal("invalid product must not be persisted")
	}
}

func TestServiceListAppliesView(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := validInput()
	second := validInput()
	second.Name = "Oud Wood"
	second.Brand = "Tom Ford"
	second.Prices = []string{"25.00", "45.00"}

	if _, err := svc.CreateProduct(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	products, err := svc.ListProducts(ctx, ViewParams{SortKey: enums.SortKeyPriceHigh})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 || products[0].Name != "Oud Wood" {
		t.Fatalf("expected price-high ordering, got %+v", products)
	}

	filtered, err := svc.ListProducts(ctx, ViewParams{Brand: "Tom Ford"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected one Tom Ford product, got %d", len(filtered))
	}
}

func TestServiceUpdateMergesPatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	onOffer := true
	pct := "30"
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		IsOnOffer:          &onOffer,
		DiscountPercentage: &pct,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsOnOffer || updated.DiscountPercentage != "30" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Name != created.Name {
		t.Fatal("untouched fields must survive the patch")
	}
}

func TestServiceUpdateRevalidates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// shrinking sizes without prices must break alignment and be rejected
	sizes := []string{"5ml"}
	_, err = svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Sizes: &sizes})
	if err == nil {
		t.Fatal("expected alignment validation error")
	}
}

func TestServiceUpdateMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)

	name := "X"
	_, err := svc.UpdateProduct(context.Background(), "missing", UpdateProductInput{Name: &name})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected CodeNotFound, got %v", err)
	}
}

func TestServiceDeleteMissingProduct(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteProduct(context.Background(), "missing")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected CodeNotFound, got %v", err)
	}
}

func TestServiceSaveCollectionDefaultsSlug(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	saved, err := svc.SaveCollection(ctx, "summer-picks", CollectionInput{Name: "Summer Picks"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Slug != "summer-picks" {
		t.Fatalf("expected slug from path, got %q", saved.Slug)
	}

	loaded, err := svc.GetCollection(ctx, "summer-picks")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Name != "Summer Picks" {
		t.Fatalf("unexpected collection %+v", loaded)
	}
}
