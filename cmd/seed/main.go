// Package main seeds the database with sample directory data.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/geodirhq/geodir/internal/repository"
	"github.com/geodirhq/geodir/pkg/config"
	"github.com/geodirhq/geodir/pkg/database"
	"github.com/geodirhq/geodir/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.LogLevel, "text")
	log = log.WithService("seed")

	ctx := context.Background()

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repo := repository.New(db.Pool)

	activities, err := seedActivities(ctx, repo)
	if err != nil {
		return err
	}

	buildings, err := seedBuildings(ctx, repo)
	if err != nil {
		return err
	}

	if err := seedOrganizations(ctx, repo, buildings, activities); err != nil {
		return err
	}

	log.Info("database seeded")
	return nil
}

// seedActivities creates the sample taxonomy: two level-1 roots, four level-2
// categories, and two level-3 leaves under Passenger cars.
func seedActivities(ctx context.Context, repo *repository.Repository) (map[string]int64, error) {
	ids := make(map[string]int64)

	insert := func(name, key string, parentKey string, level int) error {
		var parentID *int64
		if parentKey != "" {
			p := ids[parentKey]
			parentID = &p
		}
		id, err := repo.InsertActivity(ctx, name, parentID, level)
		if err != nil {
			return err
		}
		ids[key] = id
		return nil
	}

	for _, a := range []struct {
		name, key, parent string
		level             int
	}{
		{"Food", "food", "", 1},
		{"Cars", "cars", "", 1},
		{"Meat products", "meat", "food", 2},
		{"Dairy products", "dairy", "food", 2},
		{"Trucks", "trucks", "cars", 2},
		{"Passenger cars", "passenger_cars", "cars", 2},
		{"Parts", "parts", "passenger_cars", 3},
		{"Accessories", "accessories", "passenger_cars", 3},
	} {
		if err := insert(a.name, a.key, a.parent, a.level); err != nil {
			return nil, err
		}
	}

	return ids, nil
}

func seedBuildings(ctx context.Context, repo *repository.Repository) ([]int64, error) {
	buildings := []struct {
		address  string
		lat, lon float64
	}{
		{"123 Main St, New York", 40.7128, -74.0060},
		{"456 Market St, San Francisco", 37.7749, -122.4194},
		{"789 Lombard St, San Francisco", 37.8025, -122.4186},
		{"321 Pine St, Seattle", 47.6062, -122.3321},
		{"654 Broadway, New York", 40.7308, -73.9973},
	}

	ids := make([]int64, 0, len(buildings))
	for _, b := range buildings {
		id, err := repo.InsertBuilding(ctx, b.address, b.lat, b.lon)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedOrganizations(ctx context.Context, repo *repository.Repository, buildings []int64, activities map[string]int64) error {
	orgs := []struct {
		name       string
		building   int
		phones     []string
		activities []string
	}{
		{"Best Foods Inc.", 0, []string{"555-123-4567", "555-234-5678"}, []string{"food", "meat", "dairy"}},
		{"Dairy King", 1, []string{"555-345-6789"}, []string{"food", "dairy"}},
		{"Meat Masters", 0, []string{"555-456-7890", "555-567-8901"}, []string{"food", "meat"}},
		{"Auto World", 2, []string{"555-678-9012"}, []string{"cars", "passenger_cars"}},
		{"Truck Paradise", 3, []string{"555-789-0123"}, []string{"cars", "trucks"}},
		{"Car Parts Emporium", 4, []string{"555-890-1234", "555-901-2345"}, []string{"cars", "passenger_cars", "parts"}},
	}

	for _, o := range orgs {
		orgID, err := repo.InsertOrganization(ctx, o.name, buildings[o.building])
		if err != nil {
			return err
		}
		for _, number := range o.phones {
			if err := repo.InsertPhoneNumber(ctx, orgID, number); err != nil {
				return err
			}
		}
		for _, key := range o.activities {
			if err := repo.LinkOrganizationActivity(ctx, orgID, activities[key]); err != nil {
				return err
			}
		}
	}

	return nil
}
