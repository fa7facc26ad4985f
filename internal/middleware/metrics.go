package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warble_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// NotificationsEmitted counts notifications created by type.
var NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warble_notifications_emitted_total",
	Help: "Total notifications created, by type",
}, []string{"type"})

// MediaUploads counts media-host upload attempts by outcome.
var MediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warble_media_uploads_total",
	Help: "Total media host uploads by outcome",
}, []string{"outcome"})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the fiberprometheus request middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
