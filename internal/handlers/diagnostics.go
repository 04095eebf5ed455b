package handlers

import (
	"log"
	"net/http"

	"github.com/brokerx/engine/internal/broker"
	"github.com/brokerx/engine/pkg/response"
)

type DiagnosticsHandler struct {
	broker *broker.Broker
}

func NewDiagnosticsHandler(b *broker.Broker) *DiagnosticsHandler {
	return &DiagnosticsHandler{broker: b}
}

// Get handles GET /api/v1/diagnostics: queue length, configured worker
// count, and a per-status order count snapshot.
func (h *DiagnosticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	diag, err := h.broker.QueueDiagnostics(r.Context())
	if err != nil {
		log.Printf("queue diagnostics: %v", err)
		response.InternalServerError(w, "Failed to retrieve diagnostics")
		return
	}

	response.Success(w, http.StatusOK, map[string]interface{}{
		"queue_length":  diag.QueueLength,
		"worker_count":  diag.WorkerCount,
		"status_counts": diag.StatusCounts,
	})
}
