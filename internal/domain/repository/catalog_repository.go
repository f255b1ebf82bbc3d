// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"vitrina/internal/domain/entity"
)

// CatalogRepository exposes the seed-only reference collections.
type CatalogRepository interface {
	// GetCatalog returns provinces, cities, categories and subcategories.
	GetCatalog(ctx context.Context) (*entity.Catalog, error)
}

// DataResetter wipes every collection and restores the seed data.
type DataResetter interface {
	Reset(ctx context.Context) error
}
