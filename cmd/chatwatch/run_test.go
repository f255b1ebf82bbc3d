package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/config"
	"vitrina/internal/chatsync"
	"vitrina/internal/domain/entity"
)

func TestRunRejectsBadFlags(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name  string
		flags watchFlags
		want  string
	}{
		{name: "unknown role", flags: watchFlags{role: "admin", email: "a@b.c", password: "x"}, want: "invalid role"},
		{name: "missing credentials", flags: watchFlags{role: string(entity.RolePublic)}, want: "-email and -password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t.Context(), &tt.flags, strings.NewReader(""), io.Discard, logger)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPrinterSkipsUnchangedUnread(t *testing.T) {
	var out bytes.Buffer
	p := &printer{out: &out}

	p.unread(2)
	p.unread(2)
	p.unread(0)

	assert.Equal(t, "[unread] 2\n[unread] 0\n", out.String())
}

func TestLoadDefaults(t *testing.T) {
	t.Run("from config", func(t *testing.T) {
		cfg := &config.Config{Chat: &config.ChatConfig{ConversationInterval: 2 * time.Second, InboxInterval: time.Minute}}
		cfg.HTTP.Port = 9090

		d := loadDefaults(func() (*config.Config, error) { return cfg, nil })

		assert.Equal(t, "http://localhost:9090", d.server)
		assert.Equal(t, 2*time.Second, d.convInterval)
		assert.Equal(t, time.Minute, d.inboxInterval)
	})

	t.Run("without config", func(t *testing.T) {
		d := loadDefaults(func() (*config.Config, error) { return nil, errors.New("config not found") })

		assert.Equal(t, "http://localhost:8080", d.server)
		assert.Equal(t, chatsync.DefaultConversationInterval, d.convInterval)
		assert.Equal(t, chatsync.DefaultInboxInterval, d.inboxInterval)
	})

	t.Run("unset chat section", func(t *testing.T) {
		d := loadDefaults(func() (*config.Config, error) { return &config.Config{}, nil })

		assert.Equal(t, chatsync.DefaultInboxInterval, d.inboxInterval)
	})
}
