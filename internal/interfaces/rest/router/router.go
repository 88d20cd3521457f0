package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/interfaces/rest/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New mounts the message routes and /metrics behind recovery, logging and a
// per-request timeout.
func New(
	messages *handlers.MessageHandler,
	gatherer prometheus.Gatherer,
	requestTimeout time.Duration,
	logger *slog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	messages.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(requestTimeout)(handler)
	return handler
}
