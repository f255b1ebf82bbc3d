package chatsync

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
)

func TestViewer_UnreadTotal(t *testing.T) {
	conversations := []*entity.Conversation{
		{UnreadClient: 1, UnreadBusiness: 4},
		{UnreadClient: 2, UnreadBusiness: 0},
	}

	assert.Equal(t, 4, Viewer{Role: entity.RoleMerchant}.UnreadTotal(conversations))
	assert.Equal(t, 3, Viewer{Role: entity.RolePublic}.UnreadTotal(conversations))
	assert.Zero(t, Viewer{Role: entity.RolePublic}.UnreadTotal(nil))
}

func TestInboxPoller_Poll(t *testing.T) {
	clientID, merchantID := uuid.New(), uuid.New()
	viewer := Viewer{UserID: clientID, Role: entity.RolePublic}
	api := newFakeAPI(viewer)
	first := api.addConversation(clientID, merchantID)
	second := api.addConversation(clientID, merchantID)
	api.post(first, merchantID, "bienvenida")

	var fresh []uuid.UUID
	unread := -1
	p := NewInboxPoller(InboxPollerConfig{
		API:    api,
		Viewer: viewer,
		Logger: discardLogger(),
		OnUnread: func(total int) {
			unread = total
		},
		OnNewMessages: func(conversations []*entity.Conversation) {
			for _, c := range conversations {
				fresh = append(fresh, c.ID)
			}
		},
	})

	require.NoError(t, p.Poll(t.Context()))
	assert.Empty(t, fresh, "first poll only records a baseline")
	assert.Equal(t, 1, unread)

	api.post(second, merchantID, "oferta")
	api.post(first, clientID, "gracias")
	require.NoError(t, p.Poll(t.Context()))
	assert.Equal(t, []uuid.UUID{second}, fresh, "own messages are not reported")
	assert.Equal(t, 2, unread)

	fresh = nil
	require.NoError(t, p.Poll(t.Context()))
	assert.Empty(t, fresh)
}

func TestInboxPoller_RunRetriesUntilCancelled(t *testing.T) {
	clientID, merchantID := uuid.New(), uuid.New()
	viewer := Viewer{UserID: clientID, Role: entity.RolePublic}
	api := newFakeAPI(viewer)
	api.addConversation(clientID, merchantID)
	api.failNext(2)

	var mu sync.Mutex
	polls := 0
	p := NewInboxPoller(InboxPollerConfig{
		API:      api,
		Viewer:   viewer,
		Interval: testInterval,
		Logger:   discardLogger(),
		OnUnread: func(int) {
			mu.Lock()
			polls++
			mu.Unlock()
		},
	})

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return polls >= 2
	}, waitFor, testInterval)

	cancel()
	assert.NoError(t, <-errCh)
}
