package chatsync

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vitrina/internal/domain/entity"
)

// InboxPollerConfig configures an InboxPoller. Callbacks are optional.
type InboxPollerConfig struct {
	API      API
	Viewer   Viewer
	Interval time.Duration
	Logger   *slog.Logger

	// OnUnread receives the viewer's unread total after every poll.
	OnUnread func(total int)
	// OnNewMessages receives conversations whose last message changed since the previous
	// poll and was not sent by the viewer.
	OnNewMessages func(conversations []*entity.Conversation)
}

// InboxPoller is the application-wide new-message check.
type InboxPoller struct {
	cfg  InboxPollerConfig
	last map[uuid.UUID]time.Time
}

// NewInboxPoller creates an inbox poller. The first poll only records a baseline.
func NewInboxPoller(cfg InboxPollerConfig) *InboxPoller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInboxInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &InboxPoller{cfg: cfg}
}

// Run polls immediately and then on every tick until ctx is done. Failed polls are logged
// and retried on the next tick.
func (p *InboxPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		if err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			p.cfg.Logger.Warn("Inbox poll failed", slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Poll runs a single check.
func (p *InboxPoller) Poll(ctx context.Context) error {
	conversations, err := p.cfg.API.ListConversations(ctx, p.cfg.Viewer.UserID)
	if err != nil {
		return err
	}

	baseline := p.last == nil
	last := make(map[uuid.UUID]time.Time, len(conversations))
	var fresh []*entity.Conversation
	for _, c := range conversations {
		last[c.ID] = c.LastMessageAt
		if baseline || c.LastSenderID == p.cfg.Viewer.UserID || c.LastMessage == "" {
			continue
		}
		if prev, ok := p.last[c.ID]; !ok || c.LastMessageAt.After(prev) {
			fresh = append(fresh, c)
		}
	}
	p.last = last

	if p.cfg.OnUnread != nil {
		p.cfg.OnUnread(p.cfg.Viewer.UnreadTotal(conversations))
	}
	if len(fresh) > 0 && p.cfg.OnNewMessages != nil {
		p.cfg.OnNewMessages(fresh)
	}

	return nil
}
