// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheStatsFunc reports cumulative hit and miss counts of a cache.
type CacheStatsFunc func() (hit, miss int64)

// CacheCollector exposes the counters of a cache at scrape time.
// It implements prometheus.Collector.
type CacheCollector struct {
	stats    CacheStatsFunc
	hitDesc  *prometheus.Desc
	missDesc *prometheus.Desc
}

// NewCacheCollector creates a collector for the cache identified by name.
func NewCacheCollector(name string, stats CacheStatsFunc) *CacheCollector {
	return &CacheCollector{
		stats: stats,
		hitDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, name, "cache_hits_total"),
			"Total number of lookups served from the cache.",
			nil, nil,
		),
		missDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, name, "cache_misses_total"),
			"Total number of lookups that fell through to the database.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hitDesc
	ch <- c.missDesc
}

// Collect implements prometheus.Collector.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	hit, miss := c.stats()
	ch <- prometheus.MustNewConstMetric(c.hitDesc, prometheus.CounterValue, float64(hit))
	ch <- prometheus.MustNewConstMetric(c.missDesc, prometheus.CounterValue, float64(miss))
}

// RegisterCacheCollector registers a cache collector when prometheus is enabled.
func RegisterCacheCollector(name string, stats CacheStatsFunc) {
	if Enabled() {
		register(NewCacheCollector(name, stats))
	}
}
