// Package metrics описывает метрики Prometheus сервиса уроков.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы проверки оплаты.
const (
	OutcomeRecorded        = "recorded"
	OutcomeAlreadyRecorded = "already_recorded"
	OutcomeNotPaid         = "not_paid"
	OutcomeRejected        = "rejected"
	OutcomeFailed          = "failed"
)

// Metrics набор счетчиков сервиса на собственном реестре.
type Metrics struct {
	registry      *prometheus.Registry
	verifications *prometheus.CounterVec
	checkouts     *prometheus.CounterVec
	tierRepairs   prometheus.Counter
	published     *prometheus.CounterVec
}

// New регистрирует метрики в новом реестре вместе со стандартными метриками процесса.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		verifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lessonhub",
			Name:      "payment_verifications_total",
			Help:      "Payment verification attempts by outcome.",
		}, []string{"outcome"}),
		checkouts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lessonhub",
			Name:      "checkout_sessions_total",
			Help:      "Checkout sessions requested from the payment provider.",
		}, []string{"result"}),
		tierRepairs: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lessonhub",
			Name:      "tier_repairs_total",
			Help:      "Premium grants re-applied for payments that were already recorded.",
		}),
		published: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lessonhub",
			Name:      "payment_events_published_total",
			Help:      "PaymentRecorded events handed to the broker.",
		}, []string{"result"}),
	}
}

// Verification учитывает исход проверки оплаты.
func (m *Metrics) Verification(outcome string) {
	m.verifications.WithLabelValues(outcome).Inc()
}

// Checkout учитывает попытку создать сессию оплаты.
func (m *Metrics) Checkout(ok bool) {
	m.checkouts.WithLabelValues(result(ok)).Inc()
}

// TierRepaired учитывает повторную выдачу премиум-доступа.
func (m *Metrics) TierRepaired() {
	m.tierRepairs.Inc()
}

// EventPublished учитывает публикацию события PaymentRecorded.
func (m *Metrics) EventPublished(ok bool) {
	m.published.WithLabelValues(result(ok)).Inc()
}

// Handler отдает метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
