package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/decantiq/decantiq-backend/internal/catalog"
	"github.com/decantiq/decantiq-backend/pkg/config"
	pkgerrors "github.com/decantiq/decantiq-backend/pkg/errors"
	"github.com/decantiq/decantiq-backend/pkg/firestore"
	"github.com/decantiq/decantiq-backend/pkg/logger"
)

type seedProduct struct {
	id    string
	input catalog.ProductInput
}

// Seeds are keyed by fixed document ids so reruns never duplicate.
func seedProducts() []seedProduct {
	return []seedProduct{
		{
			id: "amber-oud-01",
			input: catalog.ProductInput{
				Name:     "Amber Oud",
				Brand:    "Atelier Sable",
				Sizes:    []string{"2ml", "5ml", "10ml"},
				Prices:   []string{"8.00", "17.00", "30.00"},
				Category: "unisex",
				Notes:    []string{"amber", "oud", "vanilla"},
				Rating:   4.6,
				InStock:  true,
			},
		},
		{
			id: "verte-fougere-01",
			input: catalog.ProductInput{
				Name:               "Fougere Verte",
				Brand:              "Maison Verte",
				Sizes:              []string{"5ml", "10ml"},
				Prices:             []string{"12.00", "21.00"},
				Category:           "masculine",
				IsOnOffer:          true,
				DiscountPercentage: "15",
				OfferDescription:   "Launch offer",
				Notes:              []string{"lavender", "oakmoss"},
				Rating:             4.2,
				InStock:            true,
				ShowOnHomepage:     true,
			},
		},
		{
			id: "rose-santal-01",
			input: catalog.ProductInput{
				Name:           "Rose Santal",
				Brand:          "Atelier Sable",
				Sizes:          []string{"2ml", "5ml"},
				Prices:         []string{"9.50", "19.00"},
				Category:       "feminine",
				Notes:          []string{"rose", "sandalwood", "musk"},
				Rating:         4.8,
				InStock:        true,
				ShowOnHomepage: true,
			},
		},
	}
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)

	fsClient, err := firestore.New(ctx, cfg.Firestore, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap firestore", err)
		os.Exit(1)
	}
	defer fsClient.Close()

	store, err := catalog.NewFirestoreStore(fsClient, cfg.Firestore.PerfumesCollection, cfg.Firestore.CuratedCollection)
	if err != nil {
		logg.Error(ctx, "failed to create catalog store", err)
		os.Exit(1)
	}

	var created, skipped int
	for _, seed := range seedProducts() {
		product, err := catalog.ParseProduct(seed.id, seed.input)
		if err != nil {
			logg.Error(logg.WithField(ctx, "product_id", seed.id), "invalid seed product", err)
			os.Exit(1)
		}

		if _, err := store.CreateProduct(ctx, product); err != nil {
			if coded := pkgerrors.As(err); coded != nil && coded.Code() == pkgerrors.CodeConflict {
				skipped++
				continue
			}
			logg.Error(logg.WithField(ctx, "product_id", seed.id), "failed to seed product", err)
			os.Exit(1)
		}
		created++
	}

	collection, err := catalog.ParseCollection("homepage-picks", catalog.CollectionInput{
		Name:        "Homepage Picks",
		Slug:        "homepage-picks",
		Description: "Curated decants featured on the storefront",
		ProductIDs:  []string{"verte-fougere-01", "rose-santal-01"},
		Position:    1,
	})
	if err != nil {
		logg.Error(ctx, "invalid seed collection", err)
		os.Exit(1)
	}
	if _, err := store.SaveCollection(ctx, collection); err != nil {
		logg.Error(ctx, "failed to seed collection", err)
		os.Exit(1)
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"created": created,
		"skipped": skipped,
	}), "seed complete")
}
