package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "style-outfits"

// Registry keeps labelled counters for exposition and mirrors every increment to an
// OpenTelemetry counter of the same name.
type Registry struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
	meter    metric.Meter
	otelCtrs map[string]metric.Int64Counter
}

func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[string]*atomic.Int64),
		meter:    otel.GetMeterProvider().Meter(meterName),
		otelCtrs: make(map[string]metric.Int64Counter),
	}
}

// key renders name{k1=v1,k2=v2} with labels sorted by key.
func key(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
	}
	b.WriteByte('}')
	return b.String()
}

func (r *Registry) Inc(ctx context.Context, name string, labels map[string]string, n int64) {
	r.counter(key(name, labels)).Add(n)

	if inst := r.instrument(name); inst != nil {
		attrs := make([]attribute.KeyValue, 0, len(labels))
		for k, v := range labels {
			attrs = append(attrs, attribute.String(k, v))
		}
		inst.Add(ctx, n, metric.WithAttributes(attrs...))
	}
}

func (r *Registry) counter(k string) *atomic.Int64 {
	r.mu.RLock()
	c := r.counters[k]
	r.mu.RUnlock()
	if c != nil {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c = r.counters[k]; c == nil {
		c = new(atomic.Int64)
		r.counters[k] = c
	}
	return c
}

func (r *Registry) instrument(name string) metric.Int64Counter {
	r.mu.RLock()
	inst := r.otelCtrs[name]
	r.mu.RUnlock()
	if inst != nil {
		return inst
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if inst = r.otelCtrs[name]; inst == nil {
		ctr, err := r.meter.Int64Counter(name)
		if err != nil {
			return nil
		}
		r.otelCtrs[name] = ctr
		inst = ctr
	}
	return inst
}

// Value returns the current count for name and labels.
func (r *Registry) Value(name string, labels map[string]string) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c := r.counters[key(name, labels)]; c != nil {
		return c.Load()
	}
	return 0
}

// Snapshot returns every counter keyed by its rendered name.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int64, len(r.counters))
	for k, v := range r.counters {
		out[k] = v.Load()
	}
	return out
}

// SnapshotLines renders counters as sorted "name{labels} value" lines.
func (r *Registry) SnapshotLines() []string {
	snapshot := r.Snapshot()

	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s %d", k, snapshot[k]))
	}
	return lines
}

func (r *Registry) HandleText(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, line := range r.SnapshotLines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return
		}
	}
}

func (r *Registry) HandleJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(r.Snapshot())
}
