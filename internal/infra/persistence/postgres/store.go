package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"vitrina/config"
	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/lifecycle"
	"vitrina/internal/domain/repository"
	"vitrina/internal/domain/service"
	"vitrina/internal/infra/persistence/model"
	"vitrina/internal/infra/persistence/seed"
)

// Store implements every repository over PostgreSQL.
type Store struct {
	db         *gorm.DB
	hasher     service.PasswordHasher
	adDuration time.Duration
	logger     *slog.Logger
}

// StoreParams holds the dependencies of the fx constructor.
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	DB     *gorm.DB
	Config *config.Config
	Hasher service.PasswordHasher
	Logger *slog.Logger
}

// NewStore migrates the schema on start and loads the seed data into an empty database.
func NewStore(params StoreParams) *Store {
	s := &Store{
		db:         params.DB,
		hasher:     params.Hasher,
		adDuration: params.Config.Ads.Duration,
		logger:     params.Logger,
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return s.migrate(ctx)
		},
	})

	return s
}

func (s *Store) migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	var provinces int64
	if err := s.db.WithContext(ctx).Model(&model.ProvinceModel{}).Count(&provinces).Error; err != nil {
		return errors.Wrap(err, "failed to count provinces")
	}
	if provinces > 0 {
		return nil
	}

	s.logger.Info("Empty database, loading seed data")

	return s.Reset(ctx)
}

// Reset truncates every table and reloads the seed dataset in one transaction.
func (s *Store) Reset(ctx context.Context) error {
	ds, err := seed.Build(time.Now(), s.adDuration, s.hasher)
	if err != nil {
		return errors.Wrap(err, "build seed")
	}

	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		for _, m := range model.All() {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return errors.Wrap(err, "failed to clear table")
			}
		}

		if err := insertCatalog(tx, &ds.Catalog); err != nil {
			return err
		}
		for _, m := range ds.Merchants {
			if err := tx.Create(toMerchantModel(m)).Error; err != nil {
				return errors.Wrap(err, "failed to seed merchant")
			}
		}
		for _, b := range ds.Businesses {
			if err := tx.Create(toBusinessModel(b)).Error; err != nil {
				return errors.Wrap(err, "failed to seed business")
			}
		}
		for _, b := range ds.Banners {
			if err := tx.Create(toBannerModel(b)).Error; err != nil {
				return errors.Wrap(err, "failed to seed banner")
			}
		}

		return nil
	})
}

func insertCatalog(tx *gorm.DB, c *entity.Catalog) error {
	for _, p := range c.Provinces {
		if err := tx.Create(&model.ProvinceModel{ID: p.ID, Name: p.Name}).Error; err != nil {
			return errors.Wrap(err, "failed to seed province")
		}
	}
	for _, city := range c.Cities {
		if err := tx.Create(&model.CityModel{ID: city.ID, ProvinceID: city.ProvinceID, Name: city.Name}).Error; err != nil {
			return errors.Wrap(err, "failed to seed city")
		}
	}
	for _, cat := range c.Categories {
		if err := tx.Create(&model.CategoryModel{ID: cat.ID, Name: cat.Name, Icon: cat.Icon}).Error; err != nil {
			return errors.Wrap(err, "failed to seed category")
		}
	}
	for _, sub := range c.Subcategories {
		if err := tx.Create(&model.SubcategoryModel{ID: sub.ID, CategoryID: sub.CategoryID, Name: sub.Name}).Error; err != nil {
			return errors.Wrap(err, "failed to seed subcategory")
		}
	}

	return nil
}

// GetCatalog loads the reference collections.
func (s *Store) GetCatalog(ctx context.Context) (*entity.Catalog, error) {
	db := s.db.WithContext(ctx)

	var (
		provinces     []model.ProvinceModel
		cities        []model.CityModel
		categories    []model.CategoryModel
		subcategories []model.SubcategoryModel
	)
	if err := db.Order("id").Find(&provinces).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list provinces")
	}
	if err := db.Order("id").Find(&cities).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cities")
	}
	if err := db.Order("id").Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	if err := db.Order("id").Find(&subcategories).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list subcategories")
	}

	c := &entity.Catalog{}
	for _, p := range provinces {
		c.Provinces = append(c.Provinces, entity.Province{ID: p.ID, Name: p.Name})
	}
	for _, city := range cities {
		c.Cities = append(c.Cities, entity.City{ID: city.ID, ProvinceID: city.ProvinceID, Name: city.Name})
	}
	for _, cat := range categories {
		c.Categories = append(c.Categories, entity.Category{ID: cat.ID, Name: cat.Name, Icon: cat.Icon})
	}
	for _, sub := range subcategories {
		c.Subcategories = append(c.Subcategories, entity.Subcategory{ID: sub.ID, CategoryID: sub.CategoryID, Name: sub.Name})
	}

	return c, nil
}

// Merchants returns the merchant repository view of the store.
func (s *Store) Merchants() repository.MerchantRepository { return &merchantRepository{db: s.db} }

// PublicUsers returns the public user repository view of the store.
func (s *Store) PublicUsers() repository.PublicUserRepository {
	return &publicUserRepository{db: s.db}
}

// Businesses returns the business repository view of the store.
func (s *Store) Businesses() repository.BusinessRepository { return &businessRepository{db: s.db} }

// Banners returns the banner repository view of the store.
func (s *Store) Banners() repository.BannerRepository { return &bannerRepository{db: s.db} }

// Payments returns the payment repository view of the store.
func (s *Store) Payments() repository.PaymentRepository { return &paymentRepository{db: s.db} }

// Conversations returns the conversation repository view of the store.
func (s *Store) Conversations() repository.ConversationRepository {
	return &conversationRepository{db: s.db}
}

// Messages returns the message repository view of the store.
func (s *Store) Messages() repository.MessageRepository { return &messageRepository{db: s.db} }

// Tracking returns the tracking event repository view of the store.
func (s *Store) Tracking() repository.TrackingRepository { return &trackingRepository{db: s.db} }

// Catalog returns the store as a CatalogRepository.
func (s *Store) Catalog() repository.CatalogRepository { return s }

// Resetter returns the store as a DataResetter.
func (s *Store) Resetter() repository.DataResetter { return s }
