// Package poller runs a function on a fixed interval until stopped.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/logger"
)

// DefaultInterval is the status refresh period.
const DefaultInterval = constants.DefaultPollIntervalSeconds * time.Second

// TickFunc is called once per interval. Each call should fully replace
// whatever state the previous call produced.
type TickFunc func(ctx context.Context)

// Poller is the handle for a running loop.
type Poller struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start runs tick immediately and then every interval until Stop is called
// or ctx is cancelled. A non-positive interval uses DefaultInterval.
func Start(ctx context.Context, interval time.Duration, tick TickFunc) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &Poller{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Debug("Poller started", "interval", interval)
		tick(ctx)
		for {
			select {
			case <-ctx.Done():
				logger.Debug("Poller stopped")
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				tick(ctx)
			}
		}
	}()
	return p
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once.
func (p *Poller) Stop() {
	p.once.Do(p.cancel)
	<-p.done
}

// Done is closed once the loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}
