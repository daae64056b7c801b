// Package http exposes the bot's operational endpoints: health and Prometheus metrics.
package http

import (
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"net/http"
)

// SessionCounter reports how many user sessions the bot holds.
type SessionCounter interface {
	Count() int
}

// Handler serves the operational endpoints.
type Handler struct {
	sessions  SessionCounter
	modelName string
}

// NewHandler creates a Handler reporting on the given session store and model.
func NewHandler(sessions SessionCounter, modelName string) *Handler {
	return &Handler{sessions: sessions, modelName: modelName}
}

// Router returns the chi router with /healthz and /metrics mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Model    string `json:"model"`
	Sessions int    `json:"sessions"`
}

// Health reports liveness together with the number of known sessions.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{Status: "ok", Model: h.modelName, Sessions: h.sessions.Count()}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Error("Failed to write health response")
	}
}
