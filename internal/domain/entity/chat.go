package entity

import (
	"time"

	"github.com/google/uuid"
)

// Side identifies one of the two participants of a Conversation.
type Side string

const (
	// SideClient is the public user that opened the conversation.
	SideClient Side = "client"
	// SideBusiness is the merchant owning the business.
	SideBusiness Side = "business"
)

// Conversation is a chat thread between a public user and a business.
type Conversation struct {
	ID             uuid.UUID `json:"id"`
	ClientID       uuid.UUID `json:"clienteId"`
	BusinessID     uuid.UUID `json:"comercioId"`
	OwnerID        uuid.UUID `json:"usuarioId"`
	ClientName     string    `json:"clienteNombre"`
	BusinessName   string    `json:"comercioNombre"`
	BusinessImage  string    `json:"comercioImagen,omitempty"`
	LastMessage    string    `json:"ultimoMensaje"`
	LastMessageAt  time.Time `json:"ultimoMensajeFecha"`
	LastSenderID   uuid.UUID `json:"ultimoRemitenteId"`
	UnreadClient   int       `json:"noLeidosCliente"`
	UnreadBusiness int       `json:"noLeidosComercio"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ChatMessage is a single message of a Conversation.
type ChatMessage struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversacionId"`
	SenderID       uuid.UUID `json:"remitenteId"`
	Content        string    `json:"contenido"`
	CreatedAt      time.Time `json:"fecha"`
	Read           bool      `json:"leido"`
}

// SideOf returns which side userID acts on, and false when userID is not a participant.
func (c *Conversation) SideOf(userID uuid.UUID) (Side, bool) {
	switch userID {
	case c.ClientID:
		return SideClient, true
	case c.OwnerID:
		return SideBusiness, true
	default:
		return "", false
	}
}

// UnreadFor returns the unread counter of side.
func (c *Conversation) UnreadFor(side Side) int {
	if side == SideClient {
		return c.UnreadClient
	}

	return c.UnreadBusiness
}

// Counterpart returns the user id on the opposite side.
func (c *Conversation) Counterpart(side Side) uuid.UUID {
	if side == SideClient {
		return c.OwnerID
	}

	return c.ClientID
}
