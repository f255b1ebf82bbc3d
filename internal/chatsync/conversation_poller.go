package chatsync

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"vitrina/internal/domain/entity"
)

// ErrNotOpen is returned by Send when no conversation is open.
var ErrNotOpen = errors.New("chatsync: no conversation open")

// ConversationPollerConfig configures a ConversationPoller. Callbacks are optional. The
// initial load and Send deliver them on the caller's goroutine, every later refresh on the
// polling goroutine, so they must be safe for concurrent use. A callback may call Close or
// Open: the running loop is cancelled without waiting and exits once the callback returns.
// No callback is delivered for a conversation after it was closed.
type ConversationPollerConfig struct {
	API      API
	Viewer   Viewer
	Interval time.Duration
	Logger   *slog.Logger

	// OnMessages receives the full message list after every refresh.
	OnMessages func(conversationID uuid.UUID, messages []*entity.ChatMessage)
	// OnIncoming receives messages seen for the first time that the viewer did not send.
	OnIncoming func(conversationID uuid.UUID, messages []*entity.ChatMessage)
	// OnUnread receives the viewer's unread total across all conversations.
	OnUnread func(total int)
	// OnConversations receives the conversation list after every refetch.
	OnConversations func(conversations []*entity.Conversation)
}

// ConversationPoller keeps one conversation in sync while it is open: every refresh
// refetches the messages, marks them read and refetches the conversation list.
type ConversationPoller struct {
	cfg ConversationPollerConfig

	mu             sync.Mutex
	conversationID uuid.UUID
	messages       []*entity.ChatMessage
	seen           map[uuid.UUID]struct{}
	cancel         context.CancelFunc
	done           chan struct{}
	// emitting is the done channel of the loop whose callback is running, if any.
	emitting chan struct{}
}

// NewConversationPoller creates a closed poller.
func NewConversationPoller(cfg ConversationPollerConfig) *ConversationPoller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConversationInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &ConversationPoller{cfg: cfg}
}

// Open loads the conversation, marks it read and starts the refresh loop. Opening another
// conversation closes the current one first. Messages already present on open are not
// reported as incoming.
func (p *ConversationPoller) Open(ctx context.Context, conversationID uuid.UUID) error {
	p.Close()

	p.mu.Lock()
	p.conversationID = conversationID
	p.messages = nil
	p.seen = make(map[uuid.UUID]struct{})
	p.mu.Unlock()

	if err := p.refresh(ctx, conversationID, nil); err != nil {
		p.mu.Lock()
		if p.conversationID == conversationID {
			p.conversationID = uuid.Nil
		}
		p.mu.Unlock()

		return err
	}

	p.mu.Lock()
	if p.conversationID != conversationID || p.cancel != nil {
		// A callback of the initial load closed or switched the conversation.
		p.mu.Unlock()

		return nil
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go p.loop(loopCtx, conversationID, done)

	return nil
}

// Close stops the refresh loop and waits for it to exit, unless it is called from one of
// that loop's callbacks. Closing twice is a no-op.
func (p *ConversationPoller) Close() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	reentrant := done != nil && p.emitting == done
	p.cancel, p.done = nil, nil
	p.conversationID = uuid.Nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	if !reentrant {
		<-done
	}
}

// Messages returns a copy of the local message list, oldest first.
func (p *ConversationPoller) Messages() []*entity.ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.messages)
}

// Send appends the message locally, posts it and refetches the conversation list. On
// failure the optimistic message is removed again.
func (p *ConversationPoller) Send(ctx context.Context, content string) (*entity.ChatMessage, error) {
	p.mu.Lock()
	conversationID := p.conversationID
	if conversationID == uuid.Nil {
		p.mu.Unlock()

		return nil, ErrNotOpen
	}

	pending := &entity.ChatMessage{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       p.cfg.Viewer.UserID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	p.messages = append(p.messages, pending)
	p.mu.Unlock()

	sent, err := p.cfg.API.SendMessage(ctx, conversationID, content)

	p.mu.Lock()
	idx := slices.Index(p.messages, pending)
	switch {
	case err != nil && idx >= 0:
		p.messages = slices.Delete(p.messages, idx, idx+1)
	case err == nil && idx >= 0:
		if _, dup := p.seen[sent.ID]; dup {
			p.messages = slices.Delete(p.messages, idx, idx+1)
		} else {
			p.messages[idx] = sent
		}
		p.seen[sent.ID] = struct{}{}
	case err == nil:
		p.seen[sent.ID] = struct{}{}
	}
	p.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if err := p.refreshConversations(ctx, conversationID, nil); err != nil {
		p.cfg.Logger.Warn("Failed to refetch conversations after send", slog.Any("error", err))
	}

	return sent, nil
}

func (p *ConversationPoller) loop(ctx context.Context, conversationID uuid.UUID, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.refresh(ctx, conversationID, done); err != nil && ctx.Err() == nil {
				p.cfg.Logger.Warn("Conversation poll failed",
					slog.String("conversation_id", conversationID.String()),
					slog.Any("error", err),
				)
			}
		}
	}
}

// refresh runs one sync of conversationID. owner is the done channel of the calling loop,
// nil for the initial load; incoming messages are only reported from the loop.
func (p *ConversationPoller) refresh(ctx context.Context, conversationID uuid.UUID, owner chan struct{}) error {
	messages, err := p.cfg.API.ListMessages(ctx, conversationID)
	if err != nil {
		return err
	}

	incoming, open := p.merge(conversationID, messages)
	if !open {
		return nil
	}

	if p.cfg.OnMessages != nil {
		if !p.emit(ctx, conversationID, owner, func() { p.cfg.OnMessages(conversationID, messages) }) {
			return nil
		}
	}
	if owner != nil && len(incoming) > 0 && p.cfg.OnIncoming != nil {
		if !p.emit(ctx, conversationID, owner, func() { p.cfg.OnIncoming(conversationID, incoming) }) {
			return nil
		}
	}

	if _, err := p.cfg.API.MarkRead(ctx, conversationID); err != nil {
		return err
	}

	return p.refreshConversations(ctx, conversationID, owner)
}

// emit runs fn when conversationID is still open and reports whether it is still open
// afterwards.
func (p *ConversationPoller) emit(ctx context.Context, conversationID uuid.UUID, owner chan struct{}, fn func()) bool {
	p.mu.Lock()
	if ctx.Err() != nil || p.conversationID != conversationID {
		p.mu.Unlock()

		return false
	}
	if owner != nil {
		p.emitting = owner
	}
	p.mu.Unlock()

	fn()

	p.mu.Lock()
	defer p.mu.Unlock()
	if owner != nil && p.emitting == owner {
		p.emitting = nil
	}

	return ctx.Err() == nil && p.conversationID == conversationID
}

// merge replaces the local list with the server's, keeping unacknowledged sends at the end,
// and returns the messages seen for the first time that the viewer did not send. It reports
// false once the conversation has been closed.
func (p *ConversationPoller) merge(conversationID uuid.UUID, messages []*entity.ChatMessage) ([]*entity.ChatMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conversationID != conversationID {
		return nil, false
	}

	var pending []*entity.ChatMessage
	for _, m := range p.messages {
		if _, ok := p.seen[m.ID]; !ok {
			pending = append(pending, m)
		}
	}

	var incoming []*entity.ChatMessage
	for _, m := range messages {
		if _, ok := p.seen[m.ID]; ok {
			continue
		}
		p.seen[m.ID] = struct{}{}
		if m.SenderID != p.cfg.Viewer.UserID {
			incoming = append(incoming, m)
		}
	}
	p.messages = append(slices.Clone(messages), pending...)

	return incoming, true
}

func (p *ConversationPoller) refreshConversations(ctx context.Context, conversationID uuid.UUID, owner chan struct{}) error {
	conversations, err := p.cfg.API.ListConversations(ctx, p.cfg.Viewer.UserID)
	if err != nil {
		return err
	}

	if p.cfg.OnConversations != nil {
		if !p.emit(ctx, conversationID, owner, func() { p.cfg.OnConversations(conversations) }) {
			return nil
		}
	}
	if p.cfg.OnUnread != nil {
		p.emit(ctx, conversationID, owner, func() { p.cfg.OnUnread(p.cfg.Viewer.UnreadTotal(conversations)) })
	}

	return nil
}
