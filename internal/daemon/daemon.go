// Package daemon runs the fetch and pull cycle under the native service
// manager instead of the job scheduler.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/inovacc/autofetch/internal/application"
	"github.com/kardianos/service"
)

// Cycle is one pass over all repositories.
type Cycle func(ctx context.Context) error

// Program implements service.Interface. Start returns immediately and the
// cycle runs on a ticker until Stop.
type Program struct {
	interval time.Duration
	cycle    Cycle
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewProgram creates a Program running cycle every interval.
func NewProgram(interval time.Duration, cycle Cycle, logger *slog.Logger) *Program {
	if logger == nil {
		logger = slog.Default()
	}

	return &Program{interval: interval, cycle: cycle, logger: logger}
}

// Start launches the loop. It does not block.
func (p *Program) Start(_ service.Service) error {
	if p.interval <= 0 {
		return errors.New("interval must be positive")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return errors.New("already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(ctx, p.done)

	return nil
}

// Stop cancels the loop and waits for an in-flight cycle to return.
func (p *Program) Stop(_ service.Service) error {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return nil
	}

	cancel()
	<-done

	return nil
}

func (p *Program) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.once(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Program) once(ctx context.Context) {
	start := time.Now()

	if err := p.cycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("sync cycle failed", slog.String("error", err.Error()))
		return
	}

	p.logger.Debug("sync cycle finished", slog.Duration("elapsed", time.Since(start)))
}

// Config returns the service definition; arguments are appended to the
// executable when the service manager launches it.
func Config(arguments []string) *service.Config {
	return &service.Config{
		Name:        application.ServiceName,
		DisplayName: "Git AutoFetch",
		Description: "Periodically fetches tracked git repositories and fast-forwards the ones behind their upstream",
		Arguments:   arguments,
	}
}
