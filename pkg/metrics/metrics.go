// Package metrics provides in-process counters exposed in Prometheus text format.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anotherclibrary/acsite/pkg/pool"
)

// Metrics holds the site server metrics.
type Metrics struct {
	namespace string

	// HTTP
	RequestsTotal    *CounterVec
	NotModifiedTotal *Counter
	RenderDuration   *Histogram

	// Live connections
	LiveActive   *Gauge
	LiveTotal    *Counter
	LiveMessages *CounterVec

	// Errors
	ErrorsTotal *CounterVec
}

// NewMetrics creates a new metrics instance. Every metric name is prefixed
// with namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		namespace: namespace,

		RequestsTotal:    NewCounterVec("requests_total", "HTTP requests served", "route"),
		NotModifiedTotal: NewCounter("not_modified_total", "Requests answered with 304"),
		RenderDuration:   NewHistogram("render_duration_seconds", "Page render duration"),

		LiveActive:   NewGauge("live_connections_active", "Open live connections"),
		LiveTotal:    NewCounter("live_connections_total", "Live connections accepted"),
		LiveMessages: NewCounterVec("live_messages_total", "Live messages by type", "type"),

		ErrorsTotal: NewCounterVec("errors_total", "Errors by kind", "kind"),
	}
}

// Handler returns an HTTP handler for metrics.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		if _, err := m.WriteTo(w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// WriteTo writes all metrics in Prometheus text exposition format.
// Labelled series are sorted by label value.
func (m *Metrics) WriteTo(w io.Writer) (int64, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	m.writeCounterVec(buf, m.RequestsTotal)
	m.writeScalar(buf, m.NotModifiedTotal.name, m.NotModifiedTotal.help, "counter", m.NotModifiedTotal.Value())
	m.writeHistogram(buf, m.RenderDuration)
	m.writeScalar(buf, m.LiveActive.name, m.LiveActive.help, "gauge", m.LiveActive.Value())
	m.writeScalar(buf, m.LiveTotal.name, m.LiveTotal.help, "counter", m.LiveTotal.Value())
	m.writeCounterVec(buf, m.LiveMessages)
	m.writeCounterVec(buf, m.ErrorsTotal)
	return buf.WriteTo(w)
}

func (m *Metrics) fullName(name string) string {
	if m.namespace == "" {
		return name
	}
	return m.namespace + "_" + name
}

func (m *Metrics) writeHeader(w io.Writer, name, help, kind string) {
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func (m *Metrics) writeScalar(w io.Writer, name, help, kind string, value float64) {
	name = m.fullName(name)
	m.writeHeader(w, name, help, kind)
	fmt.Fprintf(w, "%s %g\n", name, value)
}

func (m *Metrics) writeCounterVec(w io.Writer, cv *CounterVec) {
	name := m.fullName(cv.name)
	m.writeHeader(w, name, cv.help, "counter")

	values := cv.Values()
	labels := make([]string, 0, len(values))
	for l := range values {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Fprintf(w, "%s{%s=%q} %g\n", name, cv.label, l, values[l])
	}
}

func (m *Metrics) writeHistogram(w io.Writer, h *Histogram) {
	name := m.fullName(h.name)
	stats := h.Stats()
	m.writeHeader(w, name, h.help, "summary")
	fmt.Fprintf(w, "%s_sum %g\n", name, stats.Sum)
	fmt.Fprintf(w, "%s_count %d\n", name, stats.Count)
}

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	help  string
	value int64
}

// NewCounter creates a new counter.
func NewCounter(name, help string) *Counter {
	return &Counter{name: name, help: help}
}

// Inc increments the counter by 1.
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Add adds the given value to the counter.
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.value, delta)
}

// Value returns the current counter value.
func (c *Counter) Value() float64 {
	return float64(atomic.LoadInt64(&c.value))
}

// Gauge is a value that can go up and down.
type Gauge struct {
	name  string
	help  string
	value int64
}

// NewGauge creates a new gauge.
func NewGauge(name, help string) *Gauge {
	return &Gauge{name: name, help: help}
}

// Inc increments the gauge by 1.
func (g *Gauge) Inc() {
	atomic.AddInt64(&g.value, 1)
}

// Dec decrements the gauge by 1.
func (g *Gauge) Dec() {
	atomic.AddInt64(&g.value, -1)
}

// Value returns the current gauge value.
func (g *Gauge) Value() float64 {
	return float64(atomic.LoadInt64(&g.value))
}

// Int returns the current gauge value as an int.
func (g *Gauge) Int() int {
	return int(atomic.LoadInt64(&g.value))
}

// CounterVec is a counter partitioned by a single label.
type CounterVec struct {
	name   string
	help   string
	label  string
	values map[string]*Counter
	mu     sync.RWMutex
}

// NewCounterVec creates a new counter vector.
func NewCounterVec(name, help, label string) *CounterVec {
	return &CounterVec{
		name:   name,
		help:   help,
		label:  label,
		values: make(map[string]*Counter),
	}
}

// WithLabel returns a counter for the given label value.
func (cv *CounterVec) WithLabel(value string) *Counter {
	cv.mu.RLock()
	c, ok := cv.values[value]
	cv.mu.RUnlock()
	if ok {
		return c
	}

	cv.mu.Lock()
	defer cv.mu.Unlock()
	if c, ok := cv.values[value]; ok {
		return c
	}
	c = NewCounter(cv.name, cv.help)
	cv.values[value] = c
	return c
}

// Inc increments the counter for the given label.
func (cv *CounterVec) Inc(label string) {
	cv.WithLabel(label).Inc()
}

// Values returns all counter values.
func (cv *CounterVec) Values() map[string]float64 {
	cv.mu.RLock()
	defer cv.mu.RUnlock()

	result := make(map[string]float64, len(cv.values))
	for label, counter := range cv.values {
		result[label] = counter.Value()
	}
	return result
}

// Histogram tracks the sum and count of observed values.
type Histogram struct {
	name  string
	help  string
	sum   float64
	count int64
	min   float64
	max   float64
	mu    sync.Mutex
}

// NewHistogram creates a new histogram.
func NewHistogram(name, help string) *Histogram {
	return &Histogram{name: name, help: help, min: -1}
}

// Observe records a value.
func (h *Histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sum += value
	h.count++
	if h.min < 0 || value < h.min {
		h.min = value
	}
	if value > h.max {
		h.max = value
	}
}

// ObserveDuration records a duration value.
func (h *Histogram) ObserveDuration(d time.Duration) {
	h.Observe(d.Seconds())
}

// Timer returns a timer that records its elapsed time on Stop.
func (h *Histogram) Timer() *Timer {
	return &Timer{histogram: h, start: time.Now()}
}

// Stats returns histogram statistics.
func (h *Histogram) Stats() HistogramStats {
	h.mu.Lock()
	defer h.mu.Unlock()

	stats := HistogramStats{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	if h.count > 0 {
		stats.Avg = h.sum / float64(h.count)
	}
	return stats
}

// HistogramStats contains histogram statistics.
type HistogramStats struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Avg   float64
}

// Timer tracks operation duration.
type Timer struct {
	histogram *Histogram
	start     time.Time
}

// Stop records the elapsed time.
func (t *Timer) Stop() {
	t.histogram.ObserveDuration(time.Since(t.start))
}
