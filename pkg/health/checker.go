// Package health provides health check endpoints for the site server.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of a service.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the result of a single health check.
type CheckResult struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// Report represents the overall health status.
type Report struct {
	Status    Status        `json:"status"`
	Checks    []CheckResult `json:"checks"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version,omitempty"`
}

// Check defines a single health check.
type Check struct {
	Name     string
	Fn       func(ctx context.Context) error
	Timeout  time.Duration
	Critical bool // failure makes the overall status unhealthy
}

const defaultTimeout = 5 * time.Second

// Checker manages health checks for the application.
type Checker struct {
	checks  []Check
	version string
	now     func() time.Time
	mu      sync.RWMutex
}

// NewChecker creates a new health checker reporting the given version.
func NewChecker(version string) *Checker {
	return &Checker{
		version: version,
		now:     time.Now,
	}
}

// AddCheck adds a non-critical check. A failure degrades the service.
func (hc *Checker) AddCheck(name string, fn func(context.Context) error, timeout time.Duration) {
	hc.add(Check{Name: name, Fn: fn, Timeout: timeout})
}

// AddCriticalCheck adds a critical check. A failure makes the service unhealthy.
func (hc *Checker) AddCriticalCheck(name string, fn func(context.Context) error, timeout time.Duration) {
	hc.add(Check{Name: name, Fn: fn, Timeout: timeout, Critical: true})
}

func (hc *Checker) add(c Check) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks = append(hc.checks, c)
}

// Check runs all checks concurrently and returns the overall status.
// Results are sorted by check name.
func (hc *Checker) Check(ctx context.Context) Report {
	hc.mu.RLock()
	checks := make([]Check, len(hc.checks))
	copy(checks, hc.checks)
	hc.mu.RUnlock()

	results := make([]CheckResult, len(checks))
	var wg sync.WaitGroup

	for i, c := range checks {
		wg.Add(1)
		go func(i int, check Check) {
			defer wg.Done()
			results[i] = run(ctx, check)
		}(i, c)
	}
	wg.Wait()

	report := Report{
		Status:    StatusHealthy,
		Checks:    results,
		Timestamp: hc.now(),
		Version:   hc.version,
	}

	for i, r := range results {
		if r.Status == StatusHealthy {
			continue
		}
		if checks[i].Critical {
			report.Status = StatusUnhealthy
		} else if report.Status == StatusHealthy {
			report.Status = StatusDegraded
		}
	}

	sort.Slice(report.Checks, func(a, b int) bool {
		return report.Checks[a].Name < report.Checks[b].Name
	})
	return report
}

func run(ctx context.Context, check Check) (result CheckResult) {
	timeout := check.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	start := time.Now()
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result = CheckResult{Name: check.Name, Status: StatusHealthy}
	defer func() {
		if rec := recover(); rec != nil {
			result.Status = StatusUnhealthy
			result.Error = fmt.Sprintf("panic: %v", rec)
		}
		result.DurationMS = time.Since(start).Milliseconds()
	}()

	if err := check.Fn(checkCtx); err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
	}
	return result
}

// Handler serves the full report. It answers 503 when unhealthy.
func (hc *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := hc.Check(r.Context())

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if report.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(report)
	})
}

// LivenessHandler answers 200 while the process is running.
func LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// CapacityCheck fails when count reaches max. A max of zero disables it.
func CapacityCheck(what string, count func() int, max int) func(context.Context) error {
	return func(ctx context.Context) error {
		if max <= 0 {
			return nil
		}
		if n := count(); n >= max {
			return fmt.Errorf("%s at capacity: %d/%d", what, n, max)
		}
		return nil
	}
}
