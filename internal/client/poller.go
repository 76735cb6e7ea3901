package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okanalatt/FullStackAIChat/internal/model"
)

// Poller refreshes the message list on a fixed interval and hands each
// successful result to onUpdate. A tick that fires while the previous
// refresh is still in flight is skipped, so at most one refresh runs at a
// time and only the most recent result is ever applied. Failed refreshes
// are logged and dropped; polling is best effort.
type Poller struct {
	interval time.Duration
	client   *Client
	onUpdate func([]model.Message)

	running  atomic.Bool
	inFlight atomic.Bool
	wg       sync.WaitGroup

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(interval time.Duration, c *Client, onUpdate func([]model.Message)) (*Poller, error) {
	if interval <= 0 {
		return nil, errors.New("interval must be > 0")
	}
	if c == nil {
		return nil, errors.New("client must not be nil")
	}
	if onUpdate == nil {
		return nil, errors.New("onUpdate must not be nil")
	}
	return &Poller{
		interval: interval,
		client:   c,
		onUpdate: onUpdate,
		done:     make(chan struct{}),
	}, nil
}

func (p *Poller) Start() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running.Store(true)

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		slog.Info("poller started", "interval", p.interval.String())

		p.refresh(ctx)

		for {
			select {
			case <-ctx.Done():
				slog.Info("poller stopping")
				return
			case <-ticker.C:
				p.refresh(ctx)
			}
		}
	}()

	return true
}

func (p *Poller) Stop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.Load() {
		return false
	}

	p.cancel()
	<-p.done
	p.wg.Wait()
	p.running.Store(false)

	slog.Info("poller stopped")
	return true
}

func (p *Poller) IsRunning() bool {
	return p.running.Load()
}

func (p *Poller) refresh(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		slog.Debug("refresh still in flight, skipping tick")
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.inFlight.Store(false)

		msgs, err := p.client.List(ctx)
		if err != nil {
			if ctx.Err() != nil {
				// Stopped mid-refresh: never apply a stale result.
				return
			}
			slog.Warn("list refresh failed", "error", err)
			return
		}
		if ctx.Err() != nil {
			return
		}
		p.onUpdate(msgs)
	}()
}
