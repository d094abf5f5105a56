// Package shutdown scopes a context to SIGINT/SIGTERM so servers can
// drain instead of dying mid-request.
package shutdown

import (
	"context"
	"os/signal"
	"syscall"
)

func WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
