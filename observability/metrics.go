package observability

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sailboat-scraper/utils"
)

var (
	PageRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boatscan_page_requests_total",
			Help: "Page store lookups by result (hit, miss, error, cancelled)",
		},
		[]string{"result"},
	)

	ListingsScraped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boatscan_listings_scraped_total",
			Help: "Listings extracted per source",
		},
		[]string{"source"},
	)

	FieldFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boatscan_field_failures_total",
			Help: "Field extractions that yielded an absent value",
		},
		[]string{"field"},
	)
)

// Start registers the collectors and serves /metrics on port in the background.
func Start(port string, logger *utils.Logger) {
	prometheus.MustRegister(PageRequests, ListingsScraped, FieldFailures)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.Info("[metrics] Serving /metrics on :%s", port)
		if err := http.ListenAndServe(":"+port, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("[metrics] Server stopped: %v", err)
		}
	}()
}
