package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var resultBuckets = []float64{0, 1, 5, 10, 25, 50, 100}

// StorefrontMetrics records cart and catalog activity.
type StorefrontMetrics struct {
	cartMutations  *prometheus.CounterVec
	catalogQueries *prometheus.CounterVec
	queryResults   *prometheus.HistogramVec
	activeSessions prometheus.Gauge
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
// A nil registerer yields a recorder whose methods are no-ops.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, by operation.",
	}, []string{"op"})
	catalogQueries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_queries_total",
		Help: "Catalog queries served, by sort key.",
	}, []string{"sort"})
	queryResults := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_query_results",
		Help:    "Number of products matched per catalog query.",
		Buckets: resultBuckets,
	}, []string{"sort"})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_cart_sessions",
		Help: "Cart sessions currently held in memory.",
	})
	reg.MustRegister(cartMutations, catalogQueries, queryResults, activeSessions)
	return &StorefrontMetrics{
		cartMutations:  cartMutations,
		catalogQueries: catalogQueries,
		queryResults:   queryResults,
		activeSessions: activeSessions,
	}
}

// IncCartMutation counts one applied cart operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveCatalogQuery counts a query and records how many products it matched.
func (m *StorefrontMetrics) ObserveCatalogQuery(sort string, results int) {
	if m == nil || m.catalogQueries == nil {
		return
	}
	label := normalizeLabel(sort)
	m.catalogQueries.WithLabelValues(label).Inc()
	m.queryResults.WithLabelValues(label).Observe(float64(results))
}

// SetActiveSessions publishes the current session count.
func (m *StorefrontMetrics) SetActiveSessions(n int) {
	if m == nil || m.activeSessions == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
