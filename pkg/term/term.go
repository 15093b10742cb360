package term

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Wait returns a context that is cancelled when the parent context is
// cancelled or we receive a SIGINT (e.g. ctrl+c) or SIGTERM. Calling
// stop releases the signal handler.
func Wait(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// Interrupt sends SIGINT to the own process.
func Interrupt() error {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return err
	}
	return p.Signal(syscall.SIGINT)
}
