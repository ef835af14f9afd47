// Package metrics exposes a Table's Stats() as a Prometheus Collector,
// in the same hand-rolled Describe/Collect style used elsewhere in the
// surrounding stack rather than through a generic reflection-based
// wrapper.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kvcore/hashtable"
)

// Collector implements prometheus.Collector for a single Table,
// identified by name.
type Collector struct {
	source hashtable.StatsSource
	name   string

	size            *prometheus.Desc
	capacity        *prometheus.Desc
	loadFactor      *prometheus.Desc
	rehashing       *prometheus.Desc
	everFullBuckets *prometheus.Desc
	pauseRehash     *prometheus.Desc
	pauseAutoShrink *prometheus.Desc
}

// NewCollector builds a Collector for source, labelling every metric
// with name (typically the keyspace or table this instance backs).
func NewCollector(name string, source hashtable.StatsSource) *Collector {
	labels := []string{"table"}
	return &Collector{
		source: source,
		name:   name,
		size: prometheus.NewDesc(
			"hashtable_size", "Number of elements stored.", labels, nil),
		capacity: prometheus.NewDesc(
			"hashtable_capacity", "Number of buckets across all live tables.", labels, nil),
		loadFactor: prometheus.NewDesc(
			"hashtable_load_factor", "Size divided by capacity (elements per bucket).", labels, nil),
		rehashing: prometheus.NewDesc(
			"hashtable_rehashing", "1 if an incremental rehash is in progress.", labels, nil),
		everFullBuckets: prometheus.NewDesc(
			"hashtable_ever_full_buckets", "Buckets that have been full at least once since their last full rehash.", labels, nil),
		pauseRehash: prometheus.NewDesc(
			"hashtable_pause_rehash_count", "Current pause_rehash weight.", labels, nil),
		pauseAutoShrink: prometheus.NewDesc(
			"hashtable_pause_auto_shrink_count", "Current pause_auto_shrink weight.", labels, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
	ch <- c.capacity
	ch <- c.loadFactor
	ch <- c.rehashing
	ch <- c.everFullBuckets
	ch <- c.pauseRehash
	ch <- c.pauseAutoShrink
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	capacity := s.MainBuckets + s.RehashTargetBuckets
	var loadFactor float64
	if capacity > 0 {
		loadFactor = float64(s.Size) / float64(capacity)
	}
	rehashing := 0.0
	if s.Rehashing {
		rehashing = 1.0
	}

	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(s.Size), c.name)
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(capacity), c.name)
	ch <- prometheus.MustNewConstMetric(c.loadFactor, prometheus.GaugeValue, loadFactor, c.name)
	ch <- prometheus.MustNewConstMetric(c.rehashing, prometheus.GaugeValue, rehashing, c.name)
	ch <- prometheus.MustNewConstMetric(c.everFullBuckets, prometheus.GaugeValue, float64(s.EverFullBuckets), c.name)
	ch <- prometheus.MustNewConstMetric(c.pauseRehash, prometheus.GaugeValue, float64(s.PauseRehashCount), c.name)
	ch <- prometheus.MustNewConstMetric(c.pauseAutoShrink, prometheus.GaugeValue, float64(s.PauseAutoShrinkCount), c.name)
}
