package usecase

import (
	"context"

	"vitrina/internal/domain/entity"
)

// Snapshot is the full denormalized state served to clients.
type Snapshot struct {
	Provinces     []entity.Province      `json:"provinces"`
	Cities        []entity.City          `json:"cities"`
	Categories    []entity.Category      `json:"categories"`
	Subcategories []entity.Subcategory   `json:"subcategories"`
	Merchants     []*entity.Merchant     `json:"merchants"`
	Businesses    []*entity.Business     `json:"businesses"`
	Banners       []*entity.Banner       `json:"banners"`
	Payments      []*entity.Payment      `json:"payments"`
	PublicUsers   []*entity.PublicUser   `json:"publicUsers"`
	Conversations []*entity.Conversation `json:"conversations"`
	Messages      []*entity.ChatMessage  `json:"messages"`
}

// DataUsecase exposes the whole store and its reset.
type DataUsecase interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	Reset(ctx context.Context) error
}
