package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tenntenn/superast-cpp/backend/lower"
	"github.com/tenntenn/superast-cpp/backend/model"
	"github.com/tenntenn/superast-cpp/backend/parser"
)

// HandleLower handles the /api/lower endpoint
func (h *SuperastServiceHandler) HandleLower(w http.ResponseWriter, r *http.Request) {
	// Only accept POST requests
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse request body
	var req model.LowerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := Lower(r.Context(), &req, h.options()...)
	if err != nil {
		http.Error(w, err.Error(), httpStatus(err))
		return
	}

	// Send response
	w.Header().Set("Content-Type", "application/json")
	if err := model.Encode(w, response, true); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptySource), errors.Is(err, ErrFormat), errors.Is(err, parser.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, ErrSchemaVersion):
		return http.StatusPreconditionFailed
	case errors.Is(err, lower.ErrUnsupported):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
