package chatsync

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/internal/domain/entity"
)

const (
	testInterval = 10 * time.Millisecond
	waitFor      = time.Second
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recorder collects callback results across goroutines.
type recorder struct {
	mu       sync.Mutex
	incoming []string
	unread   []int
}

func (r *recorder) onIncoming(_ uuid.UUID, messages []*entity.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range messages {
		r.incoming = append(r.incoming, m.Content)
	}
}

func (r *recorder) onUnread(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unread = append(r.unread, total)
}

func (r *recorder) incomingContents() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.incoming...)
}

func (r *recorder) lastUnread() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.unread) == 0 {
		return -1
	}

	return r.unread[len(r.unread)-1]
}

type pollerFixture struct {
	api            *fakeAPI
	rec            *recorder
	poller         *ConversationPoller
	merchantID     uuid.UUID
	clientID       uuid.UUID
	conversationID uuid.UUID
}

func newPollerFixture(t *testing.T) *pollerFixture {
	t.Helper()

	merchantID, clientID := uuid.New(), uuid.New()
	viewer := Viewer{UserID: merchantID, Role: entity.RoleMerchant}
	api := newFakeAPI(viewer)
	rec := &recorder{}

	f := &pollerFixture{
		api:            api,
		rec:            rec,
		merchantID:     merchantID,
		clientID:       clientID,
		conversationID: api.addConversation(clientID, merchantID),
	}
	f.poller = NewConversationPoller(ConversationPollerConfig{
		API:        api,
		Viewer:     viewer,
		Interval:   testInterval,
		Logger:     discardLogger(),
		OnIncoming: rec.onIncoming,
		OnUnread:   rec.onUnread,
	})
	t.Cleanup(f.poller.Close)

	return f
}

func TestConversationPoller_OpenLoadsAndMarksRead(t *testing.T) {
	f := newPollerFixture(t)
	f.api.post(f.conversationID, f.clientID, "hola")
	f.api.post(f.conversationID, f.clientID, "¿abren hoy?")

	require.NoError(t, f.poller.Open(t.Context(), f.conversationID))

	assert.Len(t, f.poller.Messages(), 2)
	assert.GreaterOrEqual(t, f.api.markReadCount(), 1)
	assert.Equal(t, 0, f.rec.lastUnread())
	assert.Empty(t, f.rec.incomingContents(), "messages present on open are not incoming")
}

func TestConversationPoller_ReportsNewIncomingMessages(t *testing.T) {
	f := newPollerFixture(t)
	require.NoError(t, f.poller.Open(t.Context(), f.conversationID))

	f.api.post(f.conversationID, f.clientID, "nuevo")

	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"nuevo"}, f.rec.incomingContents())
	}, waitFor, testInterval)
	assert.Eventually(t, func() bool { return len(f.poller.Messages()) == 1 }, waitFor, testInterval)
}

func TestConversationPoller_SurvivesFailedPolls(t *testing.T) {
	f := newPollerFixture(t)
	require.NoError(t, f.poller.Open(t.Context(), f.conversationID))

	f.api.failNext(3)
	f.api.post(f.conversationID, f.clientID, "después del corte")

	assert.Eventually(t, func() bool {
		return len(f.rec.incomingContents()) == 1
	}, waitFor, testInterval)
}

func TestConversationPoller_Send(t *testing.T) {
	t.Run("appends and resyncs", func(t *testing.T) {
		f := newPollerFixture(t)
		require.NoError(t, f.poller.Open(t.Context(), f.conversationID))

		sent, err := f.poller.Send(t.Context(), "respuesta")
		require.NoError(t, err)

		messages := f.poller.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, sent.ID, messages[0].ID)
		assert.Empty(t, f.rec.incomingContents(), "own messages are never incoming")
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		f := newPollerFixture(t)
		require.NoError(t, f.poller.Open(t.Context(), f.conversationID))

		f.api.mu.Lock()
		f.api.failSend = true
		f.api.mu.Unlock()

		_, err := f.poller.Send(t.Context(), "perdido")
		require.ErrorIs(t, err, errUnavailable)
		assert.Empty(t, f.poller.Messages())
	})

	t.Run("requires an open conversation", func(t *testing.T) {
		f := newPollerFixture(t)

		_, err := f.poller.Send(t.Context(), "hola")
		assert.ErrorIs(t, err, ErrNotOpen)
	})
}

func TestConversationPoller_CloseStopsPolling(t *testing.T) {
	f := newPollerFixture(t)
	require.NoError(t, f.poller.Open(t.Context(), f.conversationID))

	f.poller.Close()
	f.poller.Close()
	count := f.api.markReadCount()

	time.Sleep(5 * testInterval)
	assert.Equal(t, count, f.api.markReadCount())

	_, err := f.poller.Send(t.Context(), "tarde")
	assert.ErrorIs(t, err, ErrNotOpen)
}

func (f *pollerFixture) loopDone(t *testing.T) chan struct{} {
	t.Helper()

	f.poller.mu.Lock()
	defer f.poller.mu.Unlock()
	require.NotNil(t, f.poller.done, "poller is not running")

	return f.poller.done
}

func TestConversationPoller_CloseFromCallback(t *testing.T) {
	f := newPollerFixture(t)
	returned := make(chan struct{})
	var once sync.Once
	f.poller.cfg.OnIncoming = func(uuid.UUID, []*entity.ChatMessage) {
		f.poller.Close()
		once.Do(func() { close(returned) })
	}
	require.NoError(t, f.poller.Open(t.Context(), f.conversationID))
	done := f.loopDone(t)

	f.api.post(f.conversationID, f.clientID, "hola")

	select {
	case <-returned:
	case <-time.After(waitFor):
		t.Fatal("Close called from OnIncoming did not return")
	}
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("polling goroutine did not exit")
	}

	count := f.api.markReadCount()
	time.Sleep(5 * testInterval)
	assert.Equal(t, count, f.api.markReadCount(), "closed conversation is not marked read again")

	_, err := f.poller.Send(t.Context(), "tarde")
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestConversationPoller_SwitchFromCallback(t *testing.T) {
	f := newPollerFixture(t)
	other := f.api.addConversation(f.clientID, f.merchantID)
	f.api.post(other, f.clientID, "en la otra")

	var switched sync.Once
	f.poller.cfg.OnIncoming = func(conversationID uuid.UUID, messages []*entity.ChatMessage) {
		f.rec.onIncoming(conversationID, messages)
		switched.Do(func() {
			assert.NoError(t, f.poller.Open(t.Context(), other))
		})
	}
	require.NoError(t, f.poller.Open(t.Context(), f.conversationID))
	first := f.loopDone(t)

	f.api.post(f.conversationID, f.clientID, "hola")

	select {
	case <-first:
	case <-time.After(waitFor):
		t.Fatal("first polling goroutine did not exit")
	}
	assert.Eventually(t, func() bool {
		messages := f.poller.Messages()

		return len(messages) == 1 && messages[0].Content == "en la otra"
	}, waitFor, testInterval)

	f.api.post(other, f.clientID, "segundo")
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"hola", "segundo"}, f.rec.incomingContents())
	}, waitFor, testInterval)
}

func TestConversationPoller_OpenFailure(t *testing.T) {
	f := newPollerFixture(t)
	f.api.failNext(1)

	err := f.poller.Open(t.Context(), f.conversationID)
	require.ErrorIs(t, err, errUnavailable)
}
