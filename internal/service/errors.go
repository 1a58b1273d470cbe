package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/virilis/backend/internal/errs"
)

// notFound converts a missing row into a 404 carrying message.
// Other errors are wrapped with op.
func notFound(err error, message, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError(message, true, nil)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireUser(ctx context.Context, users UserChecker, userID int64) error {
	exists, err := users.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return errs.NewNotFoundError("User not found", true, nil)
	}
	return nil
}

// orEmpty keeps empty lists serialized as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
