package shutdown

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

var (
	wg   sync.WaitGroup
	ctx  = context.Background()
	stop context.CancelFunc = func() {}
)

// InitShutdownHandler cancels the shared context on SIGINT or SIGTERM.
func InitShutdownHandler() {
	ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Context registers the caller as a goroutine that must call
// NotifyShutdownComplete once it has stopped.
func Context() context.Context {
	wg.Add(1)
	return ctx
}

// Done does not register the caller.
func Done() <-chan struct{} {
	return ctx.Done()
}

func NotifyShutdownComplete() {
	wg.Done()
}

// Trigger starts a shutdown without a signal, e.g. when the listener fails.
func Trigger() {
	stop()
}

// WaitForShutdown returns false if the registered goroutines did not finish
// within timeout.
func WaitForShutdown(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	defer stop()
	select {
	case <-done:
		log.Print("shutdown complete")
		return true
	case <-time.After(timeout):
		log.Printf("gave up waiting for shutdown after %v", timeout)
		return false
	}
}
