package store

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/entities"
	"time"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

// SeedItems is the demo shelf a first run starts with when seeding is enabled.
func SeedItems(now time.Time) []entities.ShelfItem {
	seed := func(name string, category domain.Category, storage domain.StorageLocation, ttl time.Duration) entities.ShelfItem {
		return entities.ShelfItem{
			ID:         uuid.New().String(),
			Name:       name,
			Category:   category,
			Storage:    storage,
			AddedDate:  now,
			ExpiryDate: now.Add(ttl),
			Status:     domain.StatusActive,
		}
	}

	return []entities.ShelfItem{
		seed("Milk", domain.CategoryDairy, domain.StorageFridge, 5*day),
		seed("Eggs", domain.CategoryDairy, domain.StorageFridge, 21*day),
		seed("Spinach", domain.CategoryProduce, domain.StorageFridge, 2*day),
		seed("Chicken breast", domain.CategoryMeatSeafood, domain.StorageFridge, 1*day),
		seed("Leftover pasta", domain.CategoryLeftovers, domain.StorageFridge, day/2),
		seed("Bread", domain.CategoryBakery, domain.StoragePantry, 4*day),
	}
}
