package chatsync

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"vitrina/internal/domain/entity"
)

var errUnavailable = errors.New("unavailable")

// fakeAPI is an in-memory chat server for one conversation pair.
type fakeAPI struct {
	mu sync.Mutex

	viewer        Viewer
	conversations map[uuid.UUID]*entity.Conversation
	messages      map[uuid.UUID][]*entity.ChatMessage
	failures      int
	failSend      bool
	markReads     int
	clock         time.Time
}

func newFakeAPI(viewer Viewer) *fakeAPI {
	return &fakeAPI{
		viewer:        viewer,
		conversations: make(map[uuid.UUID]*entity.Conversation),
		messages:      make(map[uuid.UUID][]*entity.ChatMessage),
		clock:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeAPI) addConversation(clientID, ownerID uuid.UUID) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := &entity.Conversation{ID: uuid.New(), ClientID: clientID, OwnerID: ownerID, BusinessID: uuid.New()}
	f.conversations[c.ID] = c

	return c.ID
}

// post stores a message as if senderID had sent it from another client.
func (f *fakeAPI) post(conversationID, senderID uuid.UUID, content string) *entity.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.postLocked(conversationID, senderID, content)
}

func (f *fakeAPI) postLocked(conversationID, senderID uuid.UUID, content string) *entity.ChatMessage {
	f.clock = f.clock.Add(time.Second)
	m := &entity.ChatMessage{ID: uuid.New(), ConversationID: conversationID, SenderID: senderID, Content: content, CreatedAt: f.clock}
	f.messages[conversationID] = append(f.messages[conversationID], m)

	c := f.conversations[conversationID]
	c.LastMessage, c.LastMessageAt, c.LastSenderID = content, f.clock, senderID
	if senderID == c.ClientID {
		c.UnreadBusiness++
	} else {
		c.UnreadClient++
	}

	return m
}

func (f *fakeAPI) failNext(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failures = n
}

func (f *fakeAPI) markReadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.markReads
}

func (f *fakeAPI) fail() bool {
	if f.failures > 0 {
		f.failures--

		return true
	}

	return false
}

func (f *fakeAPI) ListConversations(_ context.Context, userID uuid.UUID) ([]*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail() {
		return nil, errUnavailable
	}

	var out []*entity.Conversation
	for _, c := range f.conversations {
		if c.ClientID == userID || c.OwnerID == userID {
			clone := *c
			out = append(out, &clone)
		}
	}

	return out, nil
}

func (f *fakeAPI) ListMessages(_ context.Context, conversationID uuid.UUID) ([]*entity.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail() {
		return nil, errUnavailable
	}

	out := make([]*entity.ChatMessage, 0, len(f.messages[conversationID]))
	for _, m := range f.messages[conversationID] {
		clone := *m
		out = append(out, &clone)
	}

	return out, nil
}

func (f *fakeAPI) SendMessage(_ context.Context, conversationID uuid.UUID, content string) (*entity.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSend {
		return nil, errUnavailable
	}

	clone := *f.postLocked(conversationID, f.viewer.UserID, content)

	return &clone, nil
}

func (f *fakeAPI) MarkRead(_ context.Context, conversationID uuid.UUID) (*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.markReads++
	c := f.conversations[conversationID]
	for _, m := range f.messages[conversationID] {
		if m.SenderID != f.viewer.UserID {
			m.Read = true
		}
	}
	if f.viewer.Role == entity.RoleMerchant {
		c.UnreadBusiness = 0
	} else {
		c.UnreadClient = 0
	}
	clone := *c

	return &clone, nil
}
