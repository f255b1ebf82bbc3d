package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
	"vitrina/internal/domain/repository"
	"vitrina/internal/infra/persistence/seed"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Check(password, hash string) bool   { return hash == "hashed:"+password }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(plainHasher{}, 30*24*time.Hour)
	require.NoError(t, err)

	return store
}

func TestStore_SeededOnCreate(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	businesses, err := store.Businesses().List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, businesses)

	merchants, err := store.Merchants().List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, merchants)

	catalog, err := store.Catalog().GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, "La Plata", catalog.CityName("06441"))

	users, err := store.PublicUsers().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestStore_ResetRestoresSeed(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	seeded, err := store.Businesses().List(ctx)
	require.NoError(t, err)
	seedCount := len(seeded)

	require.NoError(t, store.Businesses().Create(ctx, &entity.Business{ID: uuid.New(), Name: "Nuevo", AdTier: entity.AdTierFree}))
	require.NoError(t, store.Businesses().Delete(ctx, seeded[0].ID))
	require.NoError(t, store.PublicUsers().Create(ctx, &entity.PublicUser{ID: uuid.New(), Email: "ana@example.com"}))
	conv := &entity.Conversation{ID: uuid.New(), ClientID: uuid.New(), BusinessID: seeded[1].ID}
	require.NoError(t, store.Conversations().Create(ctx, conv))
	require.NoError(t, store.Messages().Create(ctx, &entity.ChatMessage{ID: uuid.New(), ConversationID: conv.ID}))
	require.NoError(t, store.Payments().Create(ctx, &entity.Payment{ID: uuid.New(), PreferenceID: "pref"}))
	require.NoError(t, store.Tracking().Create(ctx, &entity.TrackingEvent{ID: uuid.New(), Type: entity.EventPageView, At: time.Now()}))

	require.NoError(t, store.Resetter().Reset(ctx))

	businesses, err := store.Businesses().List(ctx)
	require.NoError(t, err)
	assert.Len(t, businesses, seedCount)
	assert.Equal(t, seed.ID("business/Parrilla Don Julio"), businesses[0].ID)

	users, _ := store.PublicUsers().List(ctx)
	assert.Empty(t, users)
	convs, _ := store.Conversations().List(ctx)
	assert.Empty(t, convs)
	msgs, _ := store.Messages().List(ctx)
	assert.Empty(t, msgs)
	payments, _ := store.Payments().List(ctx)
	assert.Empty(t, payments)
	events, _ := store.Tracking().ListSince(ctx, time.Time{}, nil)
	assert.Empty(t, events)
}

func TestMerchantRepository_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	err := store.Merchants().Create(ctx, &entity.Merchant{ID: uuid.New(), Email: "DEMO@vitrina.local"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	m, err := store.Merchants().FindByEmail(ctx, "Demo@Vitrina.Local")
	require.NoError(t, err)
	assert.Equal(t, seed.ID("merchant/demo@vitrina.local"), m.ID)

	_, err = store.Merchants().FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrMerchantNotFound)
}

func TestBusinessRepository_ReturnsCopies(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	id := seed.ID("business/Parrilla Don Julio")
	b, err := store.Businesses().FindByID(ctx, id)
	require.NoError(t, err)
	b.Name = "mutated"
	b.Gallery = append(b.Gallery, "x.jpg")

	again, err := store.Businesses().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Parrilla Don Julio", again.Name)
	assert.Empty(t, again.Gallery)
}

func TestBusinessRepository_UpdateMutateErrorLeavesState(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	id := seed.ID("business/Parrilla Don Julio")

	boom := errors.New("boom")
	_, err := store.Businesses().Update(ctx, id, func(b *entity.Business) error {
		b.Name = "half-written"

		return boom
	})
	assert.ErrorIs(t, err, boom)

	b, err := store.Businesses().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Parrilla Don Julio", b.Name)

	_, err = store.Businesses().Update(ctx, uuid.New(), func(*entity.Business) error { return nil })
	assert.ErrorIs(t, err, repository.ErrBusinessNotFound)
}

func TestBusinessRepository_ConcurrentOpinions(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	id := seed.ID("business/Café del Bosque")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Businesses().Update(ctx, id, func(b *entity.Business) error {
				b.Opinions = append(b.Opinions, entity.Opinion{ID: uuid.New(), Rating: 5})

				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	b, err := store.Businesses().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, b.Opinions, 50)
}

func TestBannerRepository_Upsert(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	before, _ := store.Banners().List(ctx)
	businessID := uuid.New()

	require.NoError(t, store.Banners().Upsert(ctx, &entity.Banner{ID: uuid.New(), BusinessID: businessID, Tier: entity.AdTierHeaderBanner}))
	require.NoError(t, store.Banners().Upsert(ctx, &entity.Banner{ID: uuid.New(), BusinessID: businessID, Tier: entity.AdTierHomeBanner}))

	after, _ := store.Banners().List(ctx)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, entity.AdTierHomeBanner, after[len(after)-1].Tier)

	require.NoError(t, store.Banners().DeleteByBusiness(ctx, businessID))
	final, _ := store.Banners().List(ctx)
	assert.Len(t, final, len(before))
}

func TestMessageRepository_MarkRead(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	convID, client, owner := uuid.New(), uuid.New(), uuid.New()
	for _, sender := range []uuid.UUID{client, owner, owner} {
		require.NoError(t, store.Messages().Create(ctx, &entity.ChatMessage{ID: uuid.New(), ConversationID: convID, SenderID: sender}))
	}

	n, err := store.Messages().MarkRead(ctx, convID, client)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.Messages().MarkRead(ctx, convID, client)
	require.NoError(t, err)
	assert.Zero(t, n)

	msgs, err := store.Messages().ListByConversation(ctx, convID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.False(t, msgs[0].Read)
	assert.True(t, msgs[1].Read)
	assert.True(t, msgs[2].Read)
}

func TestConversationRepository_ListByParticipant(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	client, owner, other := uuid.New(), uuid.New(), uuid.New()
	business := uuid.New()
	conv := &entity.Conversation{ID: uuid.New(), ClientID: client, OwnerID: owner, BusinessID: business}
	require.NoError(t, store.Conversations().Create(ctx, conv))

	for _, id := range []uuid.UUID{client, owner} {
		list, err := store.Conversations().ListByParticipant(ctx, id)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	list, err := store.Conversations().ListByParticipant(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)

	found, err := store.Conversations().FindByPair(ctx, client, business)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, found.ID)
}

func TestTrackingRepository_ListSince(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	now := time.Now()
	businessID := uuid.New()
	events := []*entity.TrackingEvent{
		{ID: uuid.New(), Type: entity.EventPageView, At: now.Add(-40 * 24 * time.Hour)},
		{ID: uuid.New(), Type: entity.EventBusinessView, BusinessID: &businessID, At: now.Add(-time.Hour)},
		{ID: uuid.New(), Type: entity.EventPageView, At: now},
	}
	for _, e := range events {
		require.NoError(t, store.Tracking().Create(ctx, e))
	}

	recent, err := store.Tracking().ListSince(ctx, now.Add(-30*24*time.Hour), nil)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	scoped, err := store.Tracking().ListSince(ctx, now.Add(-30*24*time.Hour), &businessID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, entity.EventBusinessView, scoped[0].Type)
}
