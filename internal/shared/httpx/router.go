package httpx

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/k1networth/issue-tracker/internal/issue"
)

// NewRouter wires the issue API plus the operational endpoints behind the
// request-id, access-log, and metrics middleware chain.
func NewRouter(log *slog.Logger, reg *prometheus.Registry, issueH *issue.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	mux.Handle("GET /issues", WithRoute("/issues", http.HandlerFunc(issueH.ListIssues)))
	mux.Handle("POST /issues", WithRoute("/issues", http.HandlerFunc(issueH.CreateIssue)))
	mux.Handle("GET /issues/{id}", WithRoute("/issues/{id}", http.HandlerFunc(issueH.GetIssue)))
	mux.Handle("PATCH /issues/{id}", WithRoute("/issues/{id}", http.HandlerFunc(issueH.UpdateIssueStatus)))
	mux.Handle("DELETE /issues/{id}", WithRoute("/issues/{id}", http.HandlerFunc(issueH.DeleteIssue)))

	m := NewMetrics(reg)

	var h http.Handler = mux
	h = m.Middleware(h)
	h = AccessLog(log)(h)
	h = RequestID(h)

	return h
}
