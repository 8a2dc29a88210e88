package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tourism"

// Источники ответов чат-бота
const (
	SourceLocal  = "local"
	SourceGoogle = "google"
	SourceAI     = "ai"
	SourceNone   = "none"
	SourceError  = "error"
)

var (
	// HTTPRequests - количество HTTP-запросов по маршруту и статусу
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPDuration - длительность обработки запросов
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ChatbotReplies - ответы чат-бота по источнику
	ChatbotReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chatbot_replies_total",
		Help:      "Chatbot replies by source.",
	}, []string{"source"})

	// PlaceEvents - обработанные события стрима объектов
	PlaceEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "place_events_processed_total",
		Help:      "Place stream events processed by worker and result.",
	}, []string{"worker", "result"})
)
