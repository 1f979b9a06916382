package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics содержит метрики HTTP API и агрегации заказов.
// Все методы безопасны для nil-получателя: метрики можно не подключать.
type Metrics struct {
	// HTTP
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	// Дополнительные запросы при сборке агрегата заказа
	associationQueries *prometheus.CounterVec

	// События изменения ресурсов
	events *prometheus.CounterVec
}

// New создаёт метрики в DefaultRegisterer.
func New() *Metrics {
	return newWithRegisterer(prometheus.DefaultRegisterer)
}

func newWithRegisterer(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Metrics{
		httpRequests: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bakery_http_requests_total",
			Help: "Total number of HTTP requests by resource, method and status code",
		}, []string{"resource", "method", "code"}),
		httpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "bakery_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"resource", "method"}),
		associationQueries: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bakery_order_association_queries_total",
			Help: "Total number of secondary queries issued while assembling order aggregates",
		}, []string{"kind"}),
		events: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bakery_resource_events_total",
			Help: "Total number of resource change events by type and publish result",
		}, []string{"type", "result"}),
	}
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordHTTPRequest учитывает завершённый HTTP-запрос.
func (m *Metrics) RecordHTTPRequest(resource, method string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(resource, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(resource, method).Observe(duration.Seconds())
}

// RecordAssociationQuery учитывает запрос связей заказа (kind: client|product).
func (m *Metrics) RecordAssociationQuery(kind string) {
	if m == nil {
		return
	}
	m.associationQueries.WithLabelValues(kind).Inc()
}

// RecordEvent учитывает попытку публикации события.
func (m *Metrics) RecordEvent(eventType string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.events.WithLabelValues(eventType, result).Inc()
}
