package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"vitrina/config"
	"vitrina/internal/chatsync"
	"vitrina/internal/domain/entity"
)

// flagDefaults are the flag values used when the command line does not set them.
type flagDefaults struct {
	server        string
	convInterval  time.Duration
	inboxInterval time.Duration
}

// loadDefaults seeds the flag defaults from the service config (http.port and the chat
// section) when one is found, and from the chatsync cadence otherwise.
func loadDefaults(load func() (*config.Config, error)) flagDefaults {
	d := flagDefaults{
		server:        "http://localhost:8080",
		convInterval:  chatsync.DefaultConversationInterval,
		inboxInterval: chatsync.DefaultInboxInterval,
	}

	cfg, err := load()
	if err != nil || cfg == nil {
		return d
	}
	if cfg.HTTP.Port > 0 {
		d.server = "http://localhost:" + strconv.Itoa(cfg.HTTP.Port)
	}
	if cfg.Chat != nil {
		if cfg.Chat.ConversationInterval > 0 {
			d.convInterval = cfg.Chat.ConversationInterval
		}
		if cfg.Chat.InboxInterval > 0 {
			d.inboxInterval = cfg.Chat.InboxInterval
		}
	}

	return d
}

func run(ctx context.Context, f *watchFlags, in io.Reader, out io.Writer, logger *slog.Logger) error {
	role := entity.Role(f.role)
	if !role.IsValid() {
		return errors.Errorf("invalid role %q", f.role)
	}
	if f.email == "" || f.password == "" {
		return errors.New("-email and -password are required")
	}

	client := chatsync.NewHTTPClient(f.server)
	session, err := client.Login(ctx, role, f.email, f.password)
	if err != nil {
		return err
	}
	logger.Info("Logged in", slog.String("user_id", session.Viewer.UserID.String()), slog.String("role", f.role))

	conversationID, err := resolveConversation(ctx, client, f)
	if err != nil {
		return err
	}

	printer := &printer{out: out}

	inbox := chatsync.NewInboxPoller(chatsync.InboxPollerConfig{
		API:           client,
		Viewer:        session.Viewer,
		Interval:      f.inboxInterval,
		Logger:        logger,
		OnUnread:      printer.unread,
		OnNewMessages: printer.newMessages,
	})
	inboxDone := make(chan struct{})
	go func() {
		defer close(inboxDone)
		_ = inbox.Run(ctx)
	}()

	if conversationID == uuid.Nil {
		<-inboxDone

		return nil
	}

	poller := chatsync.NewConversationPoller(chatsync.ConversationPollerConfig{
		API:        client,
		Viewer:     session.Viewer,
		Interval:   f.convInterval,
		Logger:     logger,
		OnIncoming: printer.incoming,
		OnUnread:   printer.unread,
	})
	if err := poller.Open(ctx, conversationID); err != nil {
		return err
	}
	defer poller.Close()

	for _, m := range poller.Messages() {
		printer.message(m, session.Viewer.UserID)
	}

	go sendLines(ctx, poller, in, logger)

	<-inboxDone

	return nil
}

func resolveConversation(ctx context.Context, client *chatsync.HTTPClient, f *watchFlags) (uuid.UUID, error) {
	if f.conversationID != "" {
		id, err := uuid.Parse(f.conversationID)
		if err != nil {
			return uuid.Nil, errors.Wrap(err, "invalid -conversation")
		}

		return id, nil
	}

	if f.businessID == "" {
		return uuid.Nil, nil
	}

	businessID, err := uuid.Parse(f.businessID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "invalid -business")
	}
	conversation, err := client.StartConversation(ctx, businessID)
	if err != nil {
		return uuid.Nil, err
	}

	return conversation.ID, nil
}

// sendLines posts every non-empty stdin line to the open conversation.
func sendLines(ctx context.Context, poller *chatsync.ConversationPoller, in io.Reader, logger *slog.Logger) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := poller.Send(ctx, line); err != nil {
			logger.Warn("Failed to send message", slog.Any("error", err))
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// printer is shared by both pollers.
type printer struct {
	mu         sync.Mutex
	out        io.Writer
	lastUnread int
	seenUnread bool
}

func (p *printer) unread(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seenUnread && total == p.lastUnread {
		return
	}
	p.seenUnread, p.lastUnread = true, total
	fmt.Fprintf(p.out, "[unread] %d\n", total)
}

func (p *printer) newMessages(conversations []*entity.Conversation) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, c := range conversations {
		fmt.Fprintf(p.out, "[new] %s / %s: %s\n", c.BusinessName, c.ClientName, c.LastMessage)
	}
}

func (p *printer) incoming(_ uuid.UUID, messages []*entity.ChatMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, m := range messages {
		fmt.Fprintf(p.out, "%s  < %s\n", m.CreatedAt.Local().Format(time.Kitchen), m.Content)
	}
}

func (p *printer) message(m *entity.ChatMessage, self uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	dir := "<"
	if m.SenderID == self {
		dir = ">"
	}
	fmt.Fprintf(p.out, "%s  %s %s\n", m.CreatedAt.Local().Format(time.Kitchen), dir, m.Content)
}
