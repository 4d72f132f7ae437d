package stream

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the bytes moved through stream objects.  A nil *Metrics
// records nothing.
type Metrics struct {
	BytesWritten    *prometheus.CounterVec
	BytesRead       *prometheus.CounterVec
	SegmentsWritten prometheus.Counter
	SegmentsRead    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BytesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zcol",
			Subsystem: "stream",
			Name:      "bytes_written_total",
			Help:      "Uncompressed bytes written per substream path.",
		}, []string{"path"}),
		BytesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zcol",
			Subsystem: "stream",
			Name:      "bytes_read_total",
			Help:      "Uncompressed bytes read per substream path.",
		}, []string{"path"}),
		SegmentsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zcol",
			Subsystem: "stream",
			Name:      "segments_written_total",
			Help:      "Segments written to stream objects.",
		}),
		SegmentsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zcol",
			Subsystem: "stream",
			Name:      "segments_read_total",
			Help:      "Segments loaded from stream objects.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.BytesWritten, m.BytesRead, m.SegmentsWritten, m.SegmentsRead)
	}
	return m
}

func (m *Metrics) wrote(path string, n int) {
	if m != nil {
		m.BytesWritten.WithLabelValues(path).Add(float64(n))
	}
}

func (m *Metrics) read(path string, n int) {
	if m != nil {
		m.BytesRead.WithLabelValues(path).Add(float64(n))
	}
}

func (m *Metrics) segmentWritten() {
	if m != nil {
		m.SegmentsWritten.Inc()
	}
}

func (m *Metrics) segmentRead() {
	if m != nil {
		m.SegmentsRead.Inc()
	}
}
