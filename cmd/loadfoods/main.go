// Command loadfoods upserts a JSON array of food items into the catalog.
//
//	loadfoods -file foods.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/foodmind/foodmind-backend/internal/config"
	"github.com/foodmind/foodmind-backend/internal/db"
	"github.com/foodmind/foodmind-backend/internal/domain"
	"github.com/foodmind/foodmind-backend/internal/repository"
)

type foodWriter interface {
	Upsert(ctx context.Context, f *domain.FoodItem) error
}

func main() {
	file := flag.String("file", "foods.json", "path to a JSON array of food items")
	flag.Parse()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *file, err)
	}
	defer f.Close()

	foods, err := decodeFoods(f)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *file, err)
	}

	ctx := context.Background()
	cfg := config.Load()
	database, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	n, err := load(ctx, repository.NewFoodRepository(database), foods)
	if err != nil {
		log.Fatalf("load stopped after %d items: %v", n, err)
	}
	log.Printf("loaded %d food items", n)
}

// decodeFoods reads and validates the catalog file.
func decodeFoods(r io.Reader) ([]domain.FoodItem, error) {
	var foods []domain.FoodItem
	if err := json.NewDecoder(r).Decode(&foods); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	for i, f := range foods {
		if f.ID == "" || f.Name == "" {
			return nil, fmt.Errorf("item %d: id and name are required", i)
		}
		if f.Calories < 0 {
			return nil, fmt.Errorf("item %s: calories must not be negative", f.ID)
		}
	}
	return foods, nil
}

func load(ctx context.Context, w foodWriter, foods []domain.FoodItem) (int, error) {
	for i := range foods {
		if err := w.Upsert(ctx, &foods[i]); err != nil {
			return i, err
		}
		log.Printf("upserted %s (%s)", foods[i].Name, foods[i].ID)
	}
	return len(foods), nil
}
