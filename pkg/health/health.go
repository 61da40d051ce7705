// Package health serves the liveness and readiness endpoints.
//
// Liveness only says the process is serving. Readiness says whether a
// contact submission posted now is likely to be delivered, which in practice
// is the cached outcome of the background transport probe.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check is the outcome of one checker.
type Check struct {
	Name     string                 `json:"name"`
	Status   Status                 `json:"status"`
	Message  string                 `json:"message,omitempty"`
	Duration string                 `json:"duration,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Response is the body of /health and /ready.
type Response struct {
	Status    Status  `json:"status"`
	Uptime    string  `json:"uptime"`
	Timestamp string  `json:"timestamp"`
	Checks    []Check `json:"checks,omitempty"`
}

type Checker interface {
	Check(ctx context.Context) Check
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) Check

func (f CheckerFunc) Check(ctx context.Context) Check {
	return f(ctx)
}

// endpoint is one of the two check sets with its own timeout and failure rule.
type endpoint struct {
	name    string
	timeout time.Duration
	failOn  map[Status]bool
	checks  map[string]Checker
}

// Manager holds the registered checks and builds the HTTP handlers.
type Manager struct {
	startTime time.Time
	logger    *zap.Logger

	mu        sync.RWMutex
	liveness  *endpoint
	readiness *endpoint
}

func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		startTime: time.Now(),
		logger:    logger,
		// a live process with a degraded dependency must not be restarted
		liveness: &endpoint{
			name:    "liveness",
			timeout: 5 * time.Second,
			failOn:  map[Status]bool{StatusUnhealthy: true},
			checks:  make(map[string]Checker),
		},
		// degraded (probe pending or stale) keeps traffic away as well
		readiness: &endpoint{
			name:    "readiness",
			timeout: 10 * time.Second,
			failOn:  map[Status]bool{StatusUnhealthy: true, StatusDegraded: true},
			checks:  make(map[string]Checker),
		},
	}
}

// RegisterLivenessCheck adds a check to /health. Registering a name twice
// replaces the earlier checker.
func (m *Manager) RegisterLivenessCheck(name string, checker Checker) {
	m.register(m.liveness, name, checker)
}

// RegisterReadinessCheck adds a check to /ready.
func (m *Manager) RegisterReadinessCheck(name string, checker Checker) {
	m.register(m.readiness, name, checker)
}

func (m *Manager) register(e *endpoint, name string, checker Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.checks[name] = checker
}

// LivenessHandler serves /health: 503 only when a check is unhealthy.
func (m *Manager) LivenessHandler() http.HandlerFunc {
	return m.handler(m.liveness)
}

// ReadinessHandler serves /ready: 503 when a check is unhealthy or degraded.
func (m *Manager) ReadinessHandler() http.HandlerFunc {
	return m.handler(m.readiness)
}

func (m *Manager) handler(e *endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), e.timeout)
		defer cancel()

		checks := m.run(ctx, e)
		status := overallStatus(checks)

		statusCode := http.StatusOK
		if e.failOn[status] {
			statusCode = http.StatusServiceUnavailable
			m.logger.Warn("health endpoint failing",
				zap.String("endpoint", e.name),
				zap.String("status", string(status)),
			)
		}

		m.writeResponse(w, statusCode, Response{
			Status:    status,
			Uptime:    time.Since(m.startTime).Truncate(time.Second).String(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Checks:    checks,
		})
	}
}

// run executes the endpoint's checks concurrently and returns them sorted
// by name. A check without a name takes its registration key.
func (m *Manager) run(ctx context.Context, e *endpoint) []Check {
	m.mu.RLock()
	names := make([]string, 0, len(e.checks))
	for name := range e.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	checkers := make([]Checker, len(names))
	for i, name := range names {
		checkers[i] = e.checks[name]
	}
	m.mu.RUnlock()

	results := make([]Check, len(names))
	var wg sync.WaitGroup
	for i, checker := range checkers {
		i, checker := i, checker
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			c := checker.Check(ctx)
			c.Duration = time.Since(start).String()
			if c.Name == "" {
				c.Name = names[i]
			}
			results[i] = c
		}()
	}
	wg.Wait()
	return results
}

// overallStatus is the worst status among checks; no checks is healthy.
func overallStatus(checks []Check) Status {
	status := StatusHealthy
	for _, c := range checks {
		switch c.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}

func (m *Manager) writeResponse(w http.ResponseWriter, statusCode int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		m.logger.Error("failed to encode health response", zap.Error(err))
	}
}

// ServerChecker reports the process as serving.
func ServerChecker() Checker {
	return CheckerFunc(func(ctx context.Context) Check {
		return Check{Name: "server", Status: StatusHealthy, Message: "Server is running"}
	})
}

// UncheckedTransportChecker is the readiness check for transports that
// cannot be probed without delivering a message (slack, log). It is always
// healthy and says so.
func UncheckedTransportChecker(transport string) Checker {
	return CheckerFunc(func(ctx context.Context) Check {
		return Check{
			Name:     "mail_transport",
			Status:   StatusHealthy,
			Message:  fmt.Sprintf("%s transport has no reachability check", transport),
			Metadata: map[string]interface{}{"transport": transport},
		}
	})
}

// ProbeResult reports the outcome of the last background probe.
// A zero time means no probe has completed yet.
type ProbeResult interface {
	LastResult() (time.Time, error)
}

// ProbeChecker creates a health checker from the cached result of a background probe.
//
// Returns degraded until the first probe completes or when the last result is
// older than maxAge, and unhealthy when the last probe failed.
func ProbeChecker(transport string, probe ProbeResult, maxAge time.Duration) Checker {
	return CheckerFunc(func(ctx context.Context) Check {
		c := Check{
			Name:     "mail_transport",
			Metadata: map[string]interface{}{"transport": transport},
		}

		checkedAt, err := probe.LastResult()
		switch {
		case checkedAt.IsZero():
			c.Status = StatusDegraded
			c.Message = fmt.Sprintf("%s transport has not been probed yet", transport)
			return c
		case err != nil:
			c.Status = StatusUnhealthy
			c.Message = fmt.Sprintf("Last %s transport probe failed: %v", transport, err)
		default:
			c.Status = StatusHealthy
			c.Message = fmt.Sprintf("%s transport was reachable at last probe", transport)
		}
		c.Metadata["checked_at"] = checkedAt.UTC().Format(time.RFC3339)

		// a stale success is not evidence of reachability; a stale failure stays unhealthy
		if age := time.Since(checkedAt); err == nil && maxAge > 0 && age > maxAge {
			c.Status = StatusDegraded
			c.Message = fmt.Sprintf("Last %s transport probe is stale (%s old)", transport, age.Truncate(time.Second))
		}
		return c
	})
}
