package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ConversationModel mirrors the 'conversations' table.
type ConversationModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int64     `gorm:"autoIncrement"`
	ClientID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_conversation_pair;not null"`
	BusinessID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_conversation_pair;not null"`
	OwnerID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientName     string    `gorm:"type:varchar(200)"`
	BusinessName   string    `gorm:"type:varchar(150)"`
	BusinessImage  string    `gorm:"type:text"`
	LastMessage    string    `gorm:"type:text"`
	LastMessageAt  time.Time
	LastSenderID   uuid.UUID `gorm:"type:uuid"`
	UnreadClient   int       `gorm:"not null;default:0"`
	UnreadBusiness int       `gorm:"not null;default:0"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (ConversationModel) TableName() string {
	return "conversations"
}

// MessageModel mirrors the 'messages' table.
type MessageModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int64     `gorm:"autoIncrement"`
	ConversationID uuid.UUID `gorm:"type:uuid;index;not null"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null"`
	Content        string    `gorm:"type:text;not null"`
	CreatedAt      time.Time
	Read           bool `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}

// TrackingEventModel mirrors the 'tracking_events' table.
type TrackingEventModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type       string     `gorm:"type:varchar(30);index;not null"`
	BusinessID *uuid.UUID `gorm:"type:uuid;index"`
	UserID     *uuid.UUID `gorm:"type:uuid"`
	Meta       datatypes.JSONType[map[string]string]
	At         time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (TrackingEventModel) TableName() string {
	return "tracking_events"
}
