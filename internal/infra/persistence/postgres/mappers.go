package postgres

import (
	"slices"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"vitrina/internal/domain/entity"
	"vitrina/internal/infra/persistence/model"
)

func toMerchantModel(m *entity.Merchant) *model.MerchantModel {
	return &model.MerchantModel{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Password:         m.Password,
		Phone:            m.Phone,
		Verified:         m.Verified,
		VerificationCode: m.VerificationCode,
		UnreadMessages:   m.UnreadMessages,
		CreatedAt:        m.CreatedAt,
	}
}

func toMerchantDomain(m *model.MerchantModel) *entity.Merchant {
	return &entity.Merchant{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Password:         m.Password,
		Phone:            m.Phone,
		Verified:         m.Verified,
		VerificationCode: m.VerificationCode,
		UnreadMessages:   m.UnreadMessages,
		CreatedAt:        m.CreatedAt,
	}
}

func toPublicUserModel(u *entity.PublicUser) *model.PublicUserModel {
	return &model.PublicUserModel{
		ID:             u.ID,
		Name:           u.Name,
		Surname:        u.Surname,
		Email:          u.Email,
		Password:       u.Password,
		Favorites:      datatypes.JSONSlice[uuid.UUID](slices.Clone(u.Favorites)),
		History:        datatypes.JSONSlice[entity.Interaction](slices.Clone(u.History)),
		UnreadMessages: u.UnreadMessages,
		CreatedAt:      u.CreatedAt,
	}
}

func toPublicUserDomain(m *model.PublicUserModel) *entity.PublicUser {
	return &entity.PublicUser{
		ID:             m.ID,
		Name:           m.Name,
		Surname:        m.Surname,
		Email:          m.Email,
		Password:       m.Password,
		Favorites:      nonNil([]uuid.UUID(m.Favorites)),
		History:        nonNil([]entity.Interaction(m.History)),
		UnreadMessages: m.UnreadMessages,
		CreatedAt:      m.CreatedAt,
	}
}

func toBusinessModel(b *entity.Business) *model.BusinessModel {
	return &model.BusinessModel{
		ID:              b.ID,
		Name:            b.Name,
		CategoryID:      b.CategoryID,
		CategoryName:    b.CategoryName,
		SubcategoryID:   b.SubcategoryID,
		SubcategoryName: b.SubcategoryName,
		ProvinceID:      b.ProvinceID,
		ProvinceName:    b.ProvinceName,
		CityID:          b.CityID,
		CityName:        b.CityName,
		Neighborhood:    b.Neighborhood,
		Address:         b.Address,
		OwnerID:         b.OwnerID,
		Phone:           b.Phone,
		WhatsApp:        b.WhatsApp,
		Email:           b.Email,
		Website:         b.Website,
		Instagram:       b.Instagram,
		Description:     b.Description,
		Image:           b.Image,
		Gallery:         datatypes.JSONSlice[string](slices.Clone(b.Gallery)),
		AdTier:          int(b.AdTier),
		AdExpiresAt:     b.AdExpiresAt,
		AutoRenew:       b.AutoRenew,
		Opinions:        datatypes.JSONSlice[entity.Opinion](slices.Clone(b.Opinions)),
		Lat:             b.Lat,
		Lon:             b.Lon,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBusinessDomain(m *model.BusinessModel) *entity.Business {
	return &entity.Business{
		ID:              m.ID,
		Name:            m.Name,
		CategoryID:      m.CategoryID,
		CategoryName:    m.CategoryName,
		SubcategoryID:   m.SubcategoryID,
		SubcategoryName: m.SubcategoryName,
		ProvinceID:      m.ProvinceID,
		ProvinceName:    m.ProvinceName,
		CityID:          m.CityID,
		CityName:        m.CityName,
		Neighborhood:    m.Neighborhood,
		Address:         m.Address,
		OwnerID:         m.OwnerID,
		Phone:           m.Phone,
		WhatsApp:        m.WhatsApp,
		Email:           m.Email,
		Website:         m.Website,
		Instagram:       m.Instagram,
		Description:     m.Description,
		Image:           m.Image,
		Gallery:         nonNil([]string(m.Gallery)),
		AdTier:          entity.AdTier(m.AdTier),
		AdExpiresAt:     m.AdExpiresAt,
		AutoRenew:       m.AutoRenew,
		Opinions:        nonNil([]entity.Opinion(m.Opinions)),
		Lat:             m.Lat,
		Lon:             m.Lon,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBannerModel(b *entity.Banner) *model.BannerModel {
	return &model.BannerModel{
		ID:           b.ID,
		BusinessID:   b.BusinessID,
		BusinessName: b.BusinessName,
		Image:        b.Image,
		Tier:         int(b.Tier),
		ExpiresAt:    b.ExpiresAt,
	}
}

func toBannerDomain(m *model.BannerModel) *entity.Banner {
	return &entity.Banner{
		ID:           m.ID,
		BusinessID:   m.BusinessID,
		BusinessName: m.BusinessName,
		Image:        m.Image,
		Tier:         entity.AdTier(m.Tier),
		ExpiresAt:    m.ExpiresAt,
	}
}

func toPaymentModel(p *entity.Payment) *model.PaymentModel {
	return &model.PaymentModel{
		ID:           p.ID,
		PreferenceID: p.PreferenceID,
		BusinessID:   p.BusinessID,
		BusinessName: p.BusinessName,
		MerchantID:   p.MerchantID,
		Level:        int(p.Level),
		Amount:       p.Amount,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		ApprovedAt:   p.ApprovedAt,
	}
}

func toPaymentDomain(m *model.PaymentModel) *entity.Payment {
	return &entity.Payment{
		ID:           m.ID,
		PreferenceID: m.PreferenceID,
		BusinessID:   m.BusinessID,
		BusinessName: m.BusinessName,
		MerchantID:   m.MerchantID,
		Level:        entity.AdTier(m.Level),
		Amount:       m.Amount,
		Status:       entity.PaymentStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		ApprovedAt:   m.ApprovedAt,
	}
}

func toConversationModel(c *entity.Conversation) *model.ConversationModel {
	return &model.ConversationModel{
		ID:             c.ID,
		ClientID:       c.ClientID,
		BusinessID:     c.BusinessID,
		OwnerID:        c.OwnerID,
		ClientName:     c.ClientName,
		BusinessName:   c.BusinessName,
		BusinessImage:  c.BusinessImage,
		LastMessage:    c.LastMessage,
		LastMessageAt:  c.LastMessageAt,
		LastSenderID:   c.LastSenderID,
		UnreadClient:   c.UnreadClient,
		UnreadBusiness: c.UnreadBusiness,
		CreatedAt:      c.CreatedAt,
	}
}

func toConversationDomain(m *model.ConversationModel) *entity.Conversation {
	return &entity.Conversation{
		ID:             m.ID,
		ClientID:       m.ClientID,
		BusinessID:     m.BusinessID,
		OwnerID:        m.OwnerID,
		ClientName:     m.ClientName,
		BusinessName:   m.BusinessName,
		BusinessImage:  m.BusinessImage,
		LastMessage:    m.LastMessage,
		LastMessageAt:  m.LastMessageAt,
		LastSenderID:   m.LastSenderID,
		UnreadClient:   m.UnreadClient,
		UnreadBusiness: m.UnreadBusiness,
		CreatedAt:      m.CreatedAt,
	}
}

func toMessageModel(m *entity.ChatMessage) *model.MessageModel {
	return &model.MessageModel{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
		Read:           m.Read,
	}
}

func toMessageDomain(m *model.MessageModel) *entity.ChatMessage {
	return &entity.ChatMessage{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
		Read:           m.Read,
	}
}

func toTrackingEventModel(e *entity.TrackingEvent) *model.TrackingEventModel {
	return &model.TrackingEventModel{
		ID:         e.ID,
		Type:       string(e.Type),
		BusinessID: e.BusinessID,
		UserID:     e.UserID,
		Meta:       datatypes.NewJSONType(e.Meta),
		At:         e.At,
	}
}

func toTrackingEventDomain(m *model.TrackingEventModel) *entity.TrackingEvent {
	return &entity.TrackingEvent{
		ID:         m.ID,
		Type:       entity.TrackingEventType(m.Type),
		BusinessID: m.BusinessID,
		UserID:     m.UserID,
		Meta:       m.Meta.Data(),
		At:         m.At,
	}
}

func mapAll[M any, E any](models []M, fn func(*M) *E) []*E {
	out := make([]*E, 0, len(models))
	for i := range models {
		out = append(out, fn(&models[i]))
	}

	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
