// Package model holds the GORM persistence models. Nested value collections
// (gallery, opinions, favorites, history) are stored as JSONB columns.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"vitrina/internal/domain/entity"
)

// MerchantModel mirrors the 'merchants' table.
type MerchantModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq              int64     `gorm:"autoIncrement"`
	Name             string    `gorm:"type:varchar(100);not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password         string    `gorm:"type:varchar(100);not null"`
	Phone            string    `gorm:"type:varchar(50)"`
	Verified         bool      `gorm:"not null;default:false"`
	VerificationCode string    `gorm:"type:varchar(6)"`
	UnreadMessages   int       `gorm:"not null;default:0"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (MerchantModel) TableName() string {
	return "merchants"
}

// PublicUserModel mirrors the 'public_users' table.
type PublicUserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int64     `gorm:"autoIncrement"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Surname        string    `gorm:"type:varchar(100)"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password       string    `gorm:"type:varchar(100);not null"`
	Favorites      datatypes.JSONSlice[uuid.UUID]
	History        datatypes.JSONSlice[entity.Interaction]
	UnreadMessages int `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (PublicUserModel) TableName() string {
	return "public_users"
}
