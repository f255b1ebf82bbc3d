// Command chatwatch follows a user's chat from the terminal: it polls the inbox for new
// messages and, when a conversation is given, keeps it open and sends stdin lines to it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitrina/config"
	"vitrina/internal/domain/entity"
)

type watchFlags struct {
	server         string
	role           string
	email          string
	password       string
	conversationID string
	businessID     string
	convInterval   time.Duration
	inboxInterval  time.Duration
}

func main() {
	defaults := loadDefaults(config.New)

	var f watchFlags
	flag.StringVar(&f.server, "server", defaults.server, "Base URL of the API")
	flag.StringVar(&f.role, "role", string(entity.RolePublic), "Account type: merchant or public")
	flag.StringVar(&f.email, "email", "", "Account e-mail")
	flag.StringVar(&f.password, "password", "", "Account password")
	flag.StringVar(&f.conversationID, "conversation", "", "Conversation to open")
	flag.StringVar(&f.businessID, "business", "", "Business to start a conversation with (public accounts)")
	flag.DurationVar(&f.convInterval, "conversation-interval", defaults.convInterval, "Refresh period of the open conversation")
	flag.DurationVar(&f.inboxInterval, "inbox-interval", defaults.inboxInterval, "Refresh period of the inbox")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &f, os.Stdin, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
