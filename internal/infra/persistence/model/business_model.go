package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"vitrina/internal/domain/entity"
)

// BusinessModel mirrors the 'businesses' table. Opinions are embedded as JSONB.
type BusinessModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq             int64     `gorm:"autoIncrement"`
	Name            string    `gorm:"type:varchar(150);not null"`
	CategoryID      string    `gorm:"type:varchar(50);index"`
	CategoryName    string    `gorm:"type:varchar(100)"`
	SubcategoryID   string    `gorm:"type:varchar(50)"`
	SubcategoryName string    `gorm:"type:varchar(100)"`
	ProvinceID      string    `gorm:"type:varchar(10);index"`
	ProvinceName    string    `gorm:"type:varchar(100)"`
	CityID          string    `gorm:"type:varchar(10);index"`
	CityName        string    `gorm:"type:varchar(100)"`
	Neighborhood    string    `gorm:"type:varchar(100)"`
	Address         string    `gorm:"type:varchar(255)"`
	OwnerID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Phone           string    `gorm:"type:varchar(50)"`
	WhatsApp        string    `gorm:"type:varchar(50)"`
	Email           string    `gorm:"type:varchar(255)"`
	Website         string    `gorm:"type:varchar(255)"`
	Instagram       string    `gorm:"type:varchar(100)"`
	Description     string    `gorm:"type:text"`
	Image           string    `gorm:"type:text"`
	Gallery         datatypes.JSONSlice[string]
	AdTier          int `gorm:"not null;default:1;check:ad_tier BETWEEN 1 AND 6"`
	AdExpiresAt     *time.Time
	AutoRenew       bool `gorm:"not null;default:false"`
	Opinions        datatypes.JSONSlice[entity.Opinion]
	Lat             *float64
	Lon             *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (BusinessModel) TableName() string {
	return "businesses"
}

// BannerModel mirrors the 'banners' table, one row per banner business.
type BannerModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq          int64     `gorm:"autoIncrement"`
	BusinessID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	BusinessName string    `gorm:"type:varchar(150)"`
	Image        string    `gorm:"type:text"`
	Tier         int       `gorm:"not null"`
	ExpiresAt    *time.Time
}

// TableName explicitly sets the table name for GORM.
func (BannerModel) TableName() string {
	return "banners"
}

// PaymentModel mirrors the 'payments' table.
type PaymentModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq          int64     `gorm:"autoIncrement"`
	PreferenceID string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	BusinessID   uuid.UUID `gorm:"type:uuid;index"`
	BusinessName string    `gorm:"type:varchar(150)"`
	MerchantID   uuid.UUID `gorm:"type:uuid"`
	Level        int       `gorm:"not null"`
	Amount       float64
	Status       string `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	ApprovedAt   *time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}
