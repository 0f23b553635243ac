// Package http exposes the invocation entry point over HTTP.
package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/initrd/lambda-discord-notifier/internal/service"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Dispatcher *service.Dispatcher
}

// MountRoutes attaches the notifier routes to the router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/healthz", h.handleHealth)
	r.Post("/v1/events", h.handleEvent)
}

type eventResponse struct {
	Message string `json:"message"`
}

// handleEvent accepts one inbound envelope and runs the dispatch
// pipeline. The response status is the pipeline outcome: 200 on success
// or no-op, 500 on configuration/classification failure, 502 on partial
// delivery failure.
func (h *Handlers) handleEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "failed to read request body")
		}
		return
	}

	if !json.Valid(raw) {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	res := h.Dispatcher.Handle(r.Context(), raw)
	writeJSON(w, res.Status, eventResponse{Message: res.Message})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
