package utils

import (
	"context"
	"errors"
	"time"
)

const DefaultDBTimeout = 5 * time.Second

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}

// IsTimeout reports whether err was caused by a deadline running out.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
