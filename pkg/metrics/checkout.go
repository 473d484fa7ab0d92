package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	CheckoutOutcomeSuccess    = "success"
	CheckoutOutcomeEmptyCart  = "empty_cart"
	CheckoutOutcomeValidation = "validation"
	CheckoutOutcomeFailure    = "failure"
)

// CheckoutMetrics counts checkout attempts by outcome.
type CheckoutMetrics struct {
	attempts *prometheus.CounterVec
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(attempts)
	return &CheckoutMetrics{attempts: attempts}
}

func (c *CheckoutMetrics) IncAttempt(outcome string) {
	if c == nil || c.attempts == nil {
		return
	}
	c.attempts.WithLabelValues(normalizeLabel(outcome)).Inc()
}
