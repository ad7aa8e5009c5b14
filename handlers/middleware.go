package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"TodoWebService/response"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// Metrics holds the Prometheus counters kept per endpoint.
type Metrics struct {
	endPointCounter *prometheus.CounterVec
	errorCounter    *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		endPointCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "todo_endpoint_calls_total",
			Help: "Total number of calls per endpoint.",
		}, []string{"endpoint"}),
		errorCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "todo_errors_total",
			Help: "Total number of errors occurred in the application.",
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.endPointCounter, m.errorCounter)
	return m
}

// requestID is a middleware that makes sure every request carries an id.
// An id sent by the client in X-Request-ID is kept, otherwise a new one is generated.
// The id is echoed in the response header and attached to every log entry of the request.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		res.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(req.Context(), requestIDKey{}, id)
		next.ServeHTTP(res, req.WithContext(ctx))
	})
}

// requestFields returns the log fields describing req.
func requestFields(req *http.Request) logrus.Fields {
	fields := logrus.Fields{
		"request": req.Method + " " + req.URL.Path,
	}
	if id, ok := req.Context().Value(requestIDKey{}).(string); ok {
		fields["request id"] = id
	}
	return fields
}

// rateLimiter is a middleware function that implements rate limiting for HTTP requests.
// If the request is not allowed due to rate limiting, it returns a JSON response with an error message
// and HTTP status code 429 (Too Many Requests).
func rateLimiter(limiter *rate.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if !limiter.Allow() {
			message := response.Message{
				Status: "Request Failed",
				Body:   "The API is at capacity, try again later.",
			}
			res.Header().Set("Content-Type", "application/json")
			res.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(res).Encode(&message)
			return
		}
		next(res, req)
	}
}

// MetricsHandler wraps an AppHandler with metrics collection, rate limiting and error translation.
// Every call increments the endpoint counter; every translated error increments the error counter.
func MetricsHandler(endpoint string, handlerFunc AppHandler, m *Metrics, limiter *rate.Limiter, log logrus.FieldLogger) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		m.endPointCounter.WithLabelValues(endpoint).Inc()
		rateLimiter(limiter, func(res http.ResponseWriter, req *http.Request) {
			if err := handlerFunc(res, req); err != nil {
				m.errorCounter.WithLabelValues(endpoint).Inc()
				ErrorHandler(res, req, err, log)
			}
		})(res, req)
	}
}
