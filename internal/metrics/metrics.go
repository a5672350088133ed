// Package metrics turns run events into Prometheus metrics. A Collector owns
// its own registry, so several runs in one process do not share counters.
package metrics

import (
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/Iron-Ham/postoffice/internal/event"
	"github.com/Iron-Ham/postoffice/internal/journal"
)

const namespace = "postoffice"

// Collector holds the metrics of one run.
type Collector struct {
	registry *prometheus.Registry

	events       *prometheus.CounterVec
	lines        prometheus.Counter
	queueLength  *prometheus.GaugeVec
	open         prometheus.Gauge
	closingDelay prometheus.Gauge
	runDuration  prometheus.Gauge
	runErrors    prometheus.Counter

	subs []string
}

// NewCollector creates a Collector with a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "journal",
				Name:      "events_total",
				Help:      "Journal entries by actor kind and action",
			}, []string{"actor", "action"}),
		lines: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "journal",
				Name:      "lines_total",
				Help:      "Lines written to the journal",
			}),
		queueLength: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "office",
				Name:      "queue_length",
				Help:      "Clients waiting per service type",
			}, []string{"service"}),
		open: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "office",
				Name:      "open",
				Help:      "1 while the office accepts clients",
			}),
		closingDelay: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "office",
				Name:      "closing_delay_seconds",
				Help:      "How long the office stayed open",
			}),
		runDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "office",
				Name:      "run_duration_seconds",
				Help:      "Wall time of the run",
			}),
		runErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "office",
				Name:      "run_errors_total",
				Help:      "Runs that finished with an error",
			}),
	}
	c.registry.MustRegister(
		c.events,
		c.lines,
		c.queueLength,
		c.open,
		c.closingDelay,
		c.runDuration,
		c.runErrors,
	)
	c.open.Set(1)
	for s := 1; s <= journal.MaxService; s++ {
		c.queueLength.WithLabelValues(strconv.Itoa(s)).Set(0)
	}
	return c
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Attach subscribes the collector to bus.
func (c *Collector) Attach(bus *event.Bus) {
	c.subs = append(c.subs,
		bus.Subscribe(event.TypeEntryRecorded, c.handle),
		bus.Subscribe(event.TypeQueueChanged, c.handle),
		bus.Subscribe(event.TypeOfficeClosed, c.handle),
		bus.Subscribe(event.TypeRunFinished, c.handle),
	)
}

// Detach removes the subscriptions made by Attach.
func (c *Collector) Detach(bus *event.Bus) {
	for _, id := range c.subs {
		bus.Unsubscribe(id)
	}
	c.subs = nil
}

func (c *Collector) handle(e event.Event) {
	switch ev := e.(type) {
	case event.EntryRecordedEvent:
		c.lines.Inc()
		c.events.WithLabelValues(actorKind(ev.Tag), ev.Action).Inc()
	case event.QueueChangedEvent:
		for i, n := range ev.Queues {
			c.queueLength.WithLabelValues(strconv.Itoa(i + 1)).Set(float64(n))
		}
		if ev.Open {
			c.open.Set(1)
		} else {
			c.open.Set(0)
		}
	case event.OfficeClosedEvent:
		c.open.Set(0)
		c.closingDelay.Set(ev.After.Seconds())
	case event.RunFinishedEvent:
		c.runDuration.Set(ev.Elapsed.Seconds())
		if ev.Err != nil {
			c.runErrors.Inc()
		}
	}
}

func actorKind(tag string) string {
	switch journal.Tag(tag) {
	case journal.TagClient:
		return "client"
	case journal.TagWorker:
		return "worker"
	default:
		return "office"
	}
}

// EventCounts returns the journal entry counters keyed by action, e.g.
// "client.going_home".
func (c *Collector) EventCounts() (map[string]float64, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != namespace+"_journal_events_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			counts[labelValue(m, "action")] += m.GetCounter().GetValue()
		}
	}
	return counts, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

// WriteText writes every metric in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
