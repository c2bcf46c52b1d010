// Package telemetry records per-run analysis counters in a private Prometheus
// registry. javacheck is a batch tool, so the registry is written out in the
// text exposition format instead of being scraped.
package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for one analyzer.
type Metrics struct {
	registry *prometheus.Registry

	FilesAnalyzed prometheus.Counter
	FilesSkipped  *prometheus.CounterVec
	Issues        *prometheus.CounterVec
	ASTNodes      prometheus.Histogram
	FileDuration  prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "javacheck",
			Name:      "files_analyzed_total",
			Help:      "Java files parsed and analyzed.",
		}),
		FilesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "javacheck",
			Name:      "files_skipped_total",
			Help:      "Java files skipped, by failure stage.",
		}, []string{"reason"}),
		Issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "javacheck",
			Name:      "issues_total",
			Help:      "Pattern occurrences reported, by pattern.",
		}, []string{"pattern"}),
		ASTNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "javacheck",
			Name:      "ast_nodes",
			Help:      "Graph nodes per analyzed file.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 7),
		}),
		FileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "javacheck",
			Name:      "file_duration_seconds",
			Help:      "Wall time spent on one file (parse, build, detect).",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	m.registry.MustRegister(m.FilesAnalyzed, m.FilesSkipped, m.Issues, m.ASTNodes, m.FileDuration)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFile records a successfully analyzed file.
func (m *Metrics) ObserveFile(nodes int, elapsed time.Duration) {
	m.FilesAnalyzed.Inc()
	m.ASTNodes.Observe(float64(nodes))
	m.FileDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveSkip(reason string) {
	m.FilesSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveIssue(pattern string) {
	m.Issues.WithLabelValues(pattern).Inc()
}

// WriteToTextfile writes the registry atomically in the node_exporter
// textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
