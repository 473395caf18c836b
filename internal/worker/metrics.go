package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	refreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eko_deal_refreshes_total",
		Help: "Number of collection refreshes by trigger.",
	}, []string{"trigger"})

	dealsFetched = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "eko_deals_fetched",
		Help: "Size of the last fetched deal collection.",
	})
)
