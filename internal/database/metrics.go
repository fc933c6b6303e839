package database

import "github.com/prometheus/client_golang/prometheus"

// RegisterPoolMetrics exposes the store's pool occupancy as gauges.
func RegisterPoolMetrics(reg prometheus.Registerer, s Store) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_capacity",
			Help: "Maximum number of concurrent relational store operations.",
		}, func() float64 { return float64(s.Stats().Capacity) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_in_use",
			Help: "Relational store operations currently holding a pool slot.",
		}, func() float64 { return float64(s.Stats().InUse) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "db_pool_waiting",
			Help: "Relational store operations queued for a pool slot.",
		}, func() float64 { return float64(s.Stats().Waiting) }),
	}
	for _, g := range gauges {
		if err := reg.Register(g); err != nil {
			return err
		}
	}
	return nil
}
