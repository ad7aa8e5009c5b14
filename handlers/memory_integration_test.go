package handlers

import (
	"net/http"
	"testing"

	"TodoWebService/service"
	"TodoWebService/store"

	"golang.org/x/time/rate"
)

// TestTaskLifecycle drives the router against the in-memory store.
func TestTaskLifecycle(t *testing.T) {
	svc := service.NewTaskService(store.NewMemoryStore())
	router, _ := setupTestRouter(svc, rate.NewLimiter(rate.Inf, 0))

	steps := []struct {
		method, target, body string
		status               int
		want                 string
	}{
		{http.MethodGet, "/tasks", "", http.StatusOK, `[]`},
		{http.MethodPost, "/tasks", `{"title":"TEST1"}`, http.StatusCreated, `{"id":1,"title":"TEST1"}`},
		{http.MethodPost, "/tasks", `{"id":7,"title":"TEST2"}`, http.StatusCreated, `{"id":2,"title":"TEST2"}`},
		{http.MethodGet, "/tasks", "", http.StatusOK, `[{"id":1,"title":"TEST1"},{"id":2,"title":"TEST2"}]`},
		{http.MethodPut, "/tasks/1", `{"title":"Update Title"}`, http.StatusOK, `{"id":1,"title":"Update Title"}`},
		{http.MethodPatch, "/tasks/2", `{"id":5,"title":"Patched"}`, http.StatusOK, `{"id":2,"title":"Patched"}`},
		{http.MethodGet, "/tasks/2", "", http.StatusOK, `{"id":2,"title":"Patched"}`},
		{http.MethodDelete, "/tasks/1", "", http.StatusNoContent, ``},
		{http.MethodGet, "/tasks/1", "", http.StatusNotFound, `{"message":"Task not found"}`},
		{http.MethodDelete, "/tasks/1", "", http.StatusNotFound, `{"message":"Task not found"}`},
		{http.MethodGet, "/tasks", "", http.StatusOK, `[{"id":2,"title":"Patched"}]`},
	}
	for i, s := range steps {
		resp := serve(router, s.method, s.target, s.body)
		if resp.Code != s.status {
			t.Fatalf("step %d %s %s: Expected status code %d, got %d", i, s.method, s.target, s.status, resp.Code)
		}
		if got := resp.Body.String(); got != s.want {
			t.Errorf("step %d %s %s: Expected body %s, got %s", i, s.method, s.target, s.want, got)
		}
	}
}
