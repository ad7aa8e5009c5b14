package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// methodNotAllowedEndpoint labels the counters of requests rejected with 405.
// The request path is not used as a label since /tasks/{id} is unbounded.
const methodNotAllowedEndpoint = "method not allowed"

// NewRouter returns the router serving the following endpoints:
//
//  1. GET /tasks - Get all tasks
//  2. GET /tasks/{id} - Get a task by ID
//  3. POST /tasks - Create a new task
//  4. PUT /tasks/{id} - Update the title of a task
//  5. PATCH /tasks/{id} - Update the title of a task
//  6. DELETE /tasks/{id} - Delete a task
//  7. GET /metrics - Display Prometheus metrics
//
// Any other method on /tasks or /tasks/{id} is answered with 405 Method Not Allowed.
func NewRouter(h *TaskHandler, m *Metrics, gatherer prometheus.Gatherer, limiter *rate.Limiter, log logrus.FieldLogger) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestID)

	wrap := func(endpoint string, fn AppHandler) http.HandlerFunc {
		return MetricsHandler(endpoint, fn, m, limiter, log)
	}

	router.HandleFunc("/tasks", wrap("GET /tasks", h.GetTasksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/tasks", wrap("POST /tasks", h.CreateTaskHandler)).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{id}", wrap("GET /tasks/{id}", h.GetTaskHandler)).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id}", wrap("PUT /tasks/{id}", h.UpdateTaskHandler)).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{id}", wrap("PATCH /tasks/{id}", h.UpdateTaskHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/tasks/{id}", wrap("DELETE /tasks/{id}", h.DeleteTaskHandler)).Methods(http.MethodDelete)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Middleware registered with Use only runs for matched routes.
	router.MethodNotAllowedHandler = requestID(http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		m.endPointCounter.WithLabelValues(methodNotAllowedEndpoint).Inc()
		m.errorCounter.WithLabelValues(methodNotAllowedEndpoint).Inc()
		log.WithFields(requestFields(req)).Info("method not allowed")
		writeError(res, http.StatusMethodNotAllowed, "Method not allowed")
	}))
	return router
}
