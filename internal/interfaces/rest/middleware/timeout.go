package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/interfaces/rest"
)

// Timeout bounds each request. The request context carries the deadline, and a
// handler that overruns it gets a 503 with the usual error envelope.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	body := timeoutBody()
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, body)
	}
}

func timeoutBody() string {
	err := application.NewTimeoutError()
	data, _ := json.Marshal(rest.ErrorResponse{
		Error: rest.ErrorDetail{
			Code:     err.Code,
			Message:  err.Message,
			Category: string(application.CategoryTransient),
		},
	})
	return string(data)
}
