// Package memory implements every repository over process memory. It is the default
// store: all state is lost on restart and Reset returns it to the seed dataset.
package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"vitrina/config"
	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/internal/domain/service"
	"vitrina/internal/infra/persistence/seed"
)

// Store holds every collection behind a single RWMutex. Each repository call is
// atomic; operations spanning several calls are not.
type Store struct {
	mu sync.RWMutex

	hasher     service.PasswordHasher
	adDuration time.Duration
	now        func() time.Time

	catalog       entity.Catalog
	merchants     []*entity.Merchant
	publicUsers   []*entity.PublicUser
	businesses    []*entity.Business
	banners       []*entity.Banner
	payments      []*entity.Payment
	conversations []*entity.Conversation
	messages      []*entity.ChatMessage
	events        []*entity.TrackingEvent
}

// Params holds the dependencies of the fx constructor.
type Params struct {
	fx.In

	Config *config.Config
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

// Provide builds the seeded store for the fx graph.
func Provide(params Params) (*Store, error) {
	store, err := NewStore(params.Hasher, params.Config.Ads.Duration)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("In-memory store seeded",
		slog.Int("businesses", len(store.businesses)),
		slog.Int("merchants", len(store.merchants)),
	)

	return store, nil
}

// NewStore returns a store loaded with the seed dataset.
func NewStore(hasher service.PasswordHasher, adDuration time.Duration) (*Store, error) {
	s := &Store{
		hasher:     hasher,
		adDuration: adDuration,
		now:        time.Now,
	}
	if err := s.Reset(context.Background()); err != nil {
		return nil, err
	}

	return s, nil
}

// Reset wipes every collection and reloads the seed dataset.
func (s *Store) Reset(_ context.Context) error {
	ds, err := seed.Build(s.now(), s.adDuration, s.hasher)
	if err != nil {
		return errors.Wrap(err, "build seed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = ds.Catalog
	s.merchants = ds.Merchants
	s.businesses = ds.Businesses
	s.banners = ds.Banners
	s.publicUsers = nil
	s.payments = nil
	s.conversations = nil
	s.messages = nil
	s.events = nil

	return nil
}

// GetCatalog returns a copy of the reference collections.
func (s *Store) GetCatalog(_ context.Context) (*entity.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &entity.Catalog{
		Provinces:     append([]entity.Province(nil), s.catalog.Provinces...),
		Cities:        append([]entity.City(nil), s.catalog.Cities...),
		Categories:    append([]entity.Category(nil), s.catalog.Categories...),
		Subcategories: append([]entity.Subcategory(nil), s.catalog.Subcategories...),
	}, nil
}

// Merchants returns the merchant repository view of the store.
func (s *Store) Merchants() repository.MerchantRepository { return &merchantRepository{s: s} }

// PublicUsers returns the public user repository view of the store.
func (s *Store) PublicUsers() repository.PublicUserRepository { return &publicUserRepository{s: s} }

// Businesses returns the business repository view of the store.
func (s *Store) Businesses() repository.BusinessRepository { return &businessRepository{s: s} }

// Banners returns the banner repository view of the store.
func (s *Store) Banners() repository.BannerRepository { return &bannerRepository{s: s} }

// Payments returns the payment repository view of the store.
func (s *Store) Payments() repository.PaymentRepository { return &paymentRepository{s: s} }

// Conversations returns the conversation repository view of the store.
func (s *Store) Conversations() repository.ConversationRepository {
	return &conversationRepository{s: s}
}

// Messages returns the message repository view of the store.
func (s *Store) Messages() repository.MessageRepository { return &messageRepository{s: s} }

// Tracking returns the tracking event repository view of the store.
func (s *Store) Tracking() repository.TrackingRepository { return &trackingRepository{s: s} }

// Catalog returns the store as a CatalogRepository.
func (s *Store) Catalog() repository.CatalogRepository { return s }

// Resetter returns the store as a DataResetter.
func (s *Store) Resetter() repository.DataResetter { return s }
