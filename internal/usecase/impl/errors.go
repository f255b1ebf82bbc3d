package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	deliverycontext "vitrina/internal/delivery/context"
	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/domain/repository"
)

// repoErrors maps repository sentinels to the user-facing domain errors.
//
//nolint:gochecknoglobals
var repoErrors = []struct {
	from error
	to   *domainerrors.BaseError
}{
	{repository.ErrMerchantNotFound, domainerrors.ErrMerchantNotFound},
	{repository.ErrPublicUserNotFound, domainerrors.ErrPublicUserNotFound},
	{repository.ErrDuplicateEmail, domainerrors.ErrEmailAlreadyExists},
	{repository.ErrBusinessNotFound, domainerrors.ErrBusinessNotFound},
	{repository.ErrPaymentNotFound, domainerrors.ErrPaymentNotFound},
	{repository.ErrConversationNotFound, domainerrors.ErrConversationNotFound},
}

// translate converts repository errors to domain errors and wraps anything else with msg.
// Domain errors raised inside mutate callbacks pass through untouched.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}

	for _, m := range repoErrors {
		if errors.Is(err, m.from) {
			return m.to
		}
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return errors.Wrap(err, msg)
}

// requestLogger returns the request-scoped logger when one is attached to ctx.
func requestLogger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, fallback)
}
