package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Service holds the faucet's prometheus collectors on an owned registry so
// test servers can be created repeatedly without duplicate registration.
type Service struct {
	Registry *prometheus.Registry

	FundingRequests *prometheus.CounterVec
	RateLimited     prometheus.Counter
}

func New() *Service {
	s := &Service{
		Registry: prometheus.NewRegistry(),
		FundingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faucet",
			Name:      "funding_requests_total",
			Help:      "Funding requests by asset and outcome.",
		}, []string{"asset", "outcome"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "faucet",
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the admission gate.",
		}),
	}

	s.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.FundingRequests,
		s.RateLimited,
	)

	return s
}
