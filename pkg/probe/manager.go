// Package probe periodically checks that the mail transport is reachable.
//
// The Manager runs one background goroutine that calls the Prober on a fixed
// interval and caches the outcome. Readiness checks read the cached result
// instead of dialling the transport on every request.
//
// Features:
// - Probe on start, then on every tick
// - Manual probe on demand (non-blocking)
// - Graceful shutdown with context cancellation
// - Metrics and structured logging of every outcome
package probe

import (
	"context"
	"sync"
	"time"

	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"github.com/localcarpetfitter/sitemailer/pkg/metrics"
	"go.uber.org/zap"
)

// Prober checks reachability of one dependency.
type Prober interface {
	Check(ctx context.Context) error
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context) error

func (f ProberFunc) Check(ctx context.Context) error { return f(ctx) }

// Manager runs a Prober periodically and remembers the last result.
type Manager struct {
	name     string
	prober   Prober
	metrics  *metrics.Metrics
	logger   *zap.Logger
	interval time.Duration
	timeout  time.Duration

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu        sync.RWMutex
	checkedAt time.Time
	lastErr   error
}

// NewManager creates a probe manager in the stopped state. name labels the
// dependency in metrics and logs.
func NewManager(name string, prober Prober, m *metrics.Metrics, logger *zap.Logger, interval time.Duration) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		name:     name,
		prober:   prober,
		metrics:  m,
		logger:   logger,
		interval: interval,
		timeout:  constants.ProbeTimeout,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start probes once in the background and then on every interval until Stop.
func (m *Manager) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.logger.Info("transport probe started",
			zap.String("transport", m.name),
			zap.Duration("interval", m.interval),
		)

		m.probe()
		for {
			select {
			case <-ticker.C:
				m.probe()
			case <-m.ctx.Done():
				m.logger.Info("transport probe stopping due to context cancellation")
				return
			}
		}
	}()
}

// Stop cancels the background goroutine and waits for it. Safe to call
// more than once, and without Start.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		m.cancel()
		m.wg.Wait()
		m.logger.Info("transport probe shutdown complete", zap.String("transport", m.name))
	})
}

// ProbeNow triggers an immediate probe without blocking the caller.
func (m *Manager) ProbeNow() {
	select {
	case <-m.ctx.Done():
		m.logger.Info("manual probe skipped - manager stopped")
		return
	default:
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.probe()
	}()
}

// LastResult returns when the transport was last probed and the error it
// returned. A zero time means no probe has completed yet.
func (m *Manager) LastResult() (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checkedAt, m.lastErr
}

func (m *Manager) probe() {
	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	defer cancel()

	start := time.Now()
	err := m.prober.Check(ctx)
	duration := time.Since(start)

	if m.ctx.Err() != nil {
		// shutting down; a cancelled probe says nothing about the transport
		return
	}

	m.mu.Lock()
	m.checkedAt = time.Now()
	m.lastErr = err
	m.mu.Unlock()

	m.record(err)

	if err != nil {
		m.logger.Warn("transport probe failed",
			zap.String("transport", m.name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	m.logger.Debug("transport probe succeeded",
		zap.String("transport", m.name),
		zap.Duration("duration", duration),
	)
}

func (m *Manager) record(err error) {
	if m.metrics == nil {
		return
	}
	up := 1.0
	if err != nil {
		up = 0
	}
	m.metrics.TransportUp.WithLabelValues(m.name).Set(up)
}
