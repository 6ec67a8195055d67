package world

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks chunk rebuild activity.
type Metrics struct {
	rebuilds        prometheus.Counter
	rebuildDuration prometheus.Histogram
	dirtyChunks     prometheus.Gauge
	vertices        prometheus.Gauge
	columns         prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "chunk_rebuilds_total",
			Help:      "Chunks re-meshed and uploaded.",
		}),
		rebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxel",
			Name:      "rebuild_pass_seconds",
			Help:      "Duration of one dirty chunk rebuild pass.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		dirtyChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "dirty_chunks",
			Help:      "Chunks waiting for a rebuild at the start of the last pass.",
		}),
		vertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "uploaded_vertices",
			Help:      "Vertices held by all loaded chunk buffers.",
		}),
		columns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "loaded_columns",
			Help:      "Chunk columns currently loaded.",
		}),
	}
	reg.MustRegister(m.rebuilds, m.rebuildDuration, m.dirtyChunks, m.vertices, m.columns)
	return m
}

func (m *Metrics) observePass(dirty, rebuilt int, took time.Duration) {
	if m == nil {
		return
	}
	m.dirtyChunks.Set(float64(dirty))
	m.rebuilds.Add(float64(rebuilt))
	m.rebuildDuration.Observe(took.Seconds())
}

func (m *Metrics) addVertices(delta int) {
	if m == nil {
		return
	}
	m.vertices.Add(float64(delta))
}

func (m *Metrics) setColumns(n int) {
	if m == nil {
		return
	}
	m.columns.Set(float64(n))
}
