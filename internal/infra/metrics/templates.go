package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		rendersTotal,
		renderTokens,
		entitlementRefreshTotal,
		entitlementCacheHits,
	)
}

var (
	rendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_renders_total",
			Help: "Rendered prompts per template.",
		},
		[]string{"template"},
	)

	renderTokens = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "template_render_tokens",
			Help:    "Estimated token count of rendered prompts.",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3200},
		},
		[]string{"template"},
	)

	entitlementRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entitlement_refresh_total",
			Help: "Lock-state refreshes by result (ok/stale/failed).",
		},
		[]string{"result"},
	)

	entitlementCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entitlement_cache_hits_total",
			Help: "Entitlement snapshot cache lookups by outcome (hit/miss).",
		},
		[]string{"outcome"},
	)
)

func ObserveRender(template string, tokens int) {
	rendersTotal.WithLabelValues(norm(template)).Inc()
	if tokens > 0 {
		renderTokens.WithLabelValues(norm(template)).Observe(float64(tokens))
	}
}

func IncEntitlementRefresh(result string) {
	entitlementRefreshTotal.WithLabelValues(norm(result)).Inc()
}

func IncEntitlementCache(outcome string) {
	entitlementCacheHits.WithLabelValues(norm(outcome)).Inc()
}
