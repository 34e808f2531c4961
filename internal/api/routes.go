// internal/api/routes.go
package api

import "net/http"

// RegisterRoutes wires every handler onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Evaluations
	mux.HandleFunc("POST /evaluations", h.createEvaluation)
	mux.HandleFunc("GET /evaluations", h.listEvaluations)
	mux.HandleFunc("GET /evaluations/{evaluationID}", h.getEvaluation)
	mux.HandleFunc("GET /evaluations/{evaluationID}/full", h.getEvaluationFull)

	// Feedback
	mux.HandleFunc("POST /feedback", h.submitFeedback)

	// Analytics
	mux.HandleFunc("GET /analytics", h.getAnalytics)
	mux.HandleFunc("GET /model/performance", h.getModelPerformance)
	mux.HandleFunc("GET /model/validation-log", h.getValidationLog)
}
