package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	models "github.com/Schera-ole/statmerge/internal/model"
)

// PrometheusEncoder writes the snapshot in the Prometheus text exposition
// format, suitable for the node exporter textfile collector.
type PrometheusEncoder struct {
	namespace string
	logger    *zap.SugaredLogger
}

// NewPrometheusEncoder creates an encoder prefixing every metric with namespace.
func NewPrometheusEncoder(namespace string, logger *zap.SugaredLogger) *PrometheusEncoder {
	return &PrometheusEncoder{
		namespace: namespace,
		logger:    logger,
	}
}

// Encode gathers the snapshot through a private registry and writes it in the text format.
func (e *PrometheusEncoder) Encode(w io.Writer, snapshot *models.Snapshot) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(&snapshotCollector{encoder: e, snapshot: snapshot}); err != nil {
		return fmt.Errorf("error registering snapshot collector: %w", err)
	}

	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("error gathering metrics: %w", err)
	}

	var buf bytes.Buffer
	if err := writeFamilies(&buf, families); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("error writing metrics: %w", err)
	}
	return nil
}

func writeFamilies(w io.Writer, families []*dto.MetricFamily) error {
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("error encoding metric family %s: %w", family.GetName(), err)
		}
	}
	return nil
}

// MetricName turns a dotted varnishstat name into a valid Prometheus name.
func (e *PrometheusEncoder) MetricName(name string) string {
	var b strings.Builder
	b.WriteString(e.namespace)
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		if b.Len() == len(e.namespace) {
			b.WriteByte('_')
		}
		b.WriteRune(r)
		lastUnderscore = false
	}
	return strings.TrimRight(b.String(), "_")
}

// snapshotCollector is an unchecked collector exposing one snapshot.
type snapshotCollector struct {
	encoder  *PrometheusEncoder
	snapshot *models.Snapshot
}

func (c *snapshotCollector) Describe(chan<- *prometheus.Desc) {}

func (c *snapshotCollector) Collect(ch chan<- prometheus.Metric) {
	seen := make(map[string]string)
	c.snapshot.Each(func(name string, record models.Record) {
		if record.IsBitmap() {
			c.encoder.logger.Debugw("skipping bitmap metric", "metric", name)
			return
		}
		metricName := c.encoder.MetricName(name)
		if first, ok := seen[metricName]; ok {
			c.encoder.logger.Warnw("skipping metric with a clashing name",
				"metric", name,
				"prometheus_name", metricName,
				"kept", first,
			)
			return
		}
		seen[metricName] = name

		value, err := record.Value.Float64()
		if err != nil {
			c.encoder.logger.Warnw("skipping metric with a non-numeric value",
				"metric", name,
				"value", record.Value.String(),
			)
			return
		}

		help := record.Description
		if help == "" {
			help = name
		}
		valueType := prometheus.GaugeValue
		if record.IsCounter() {
			valueType = prometheus.CounterValue
		}

		desc := prometheus.NewDesc(metricName, help, nil, nil)
		metric, err := prometheus.NewConstMetric(desc, valueType, value)
		if err != nil {
			ch <- prometheus.NewInvalidMetric(desc, err)
			return
		}
		ch <- metric
	})
}
