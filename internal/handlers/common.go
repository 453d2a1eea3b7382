package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/eccentric-easel/easel/internal/models"
	"github.com/eccentric-easel/easel/internal/pipeline"
)

// MaxBodyBytes bounds the JSON request body, base64 image included
const MaxBodyBytes = 15 << 20

// Runner is the part of the pipeline the handlers drive
type Runner interface {
	Run(ctx context.Context, in pipeline.Input) (pipeline.Result, error)
}

type Handler struct {
	runner Runner
}

func New(runner Runner) *Handler {
	return &Handler{runner: runner}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("Unable to encode JSON error", "err", err)
	}
}

// statusFor maps a pipeline error to the HTTP status returned to the caller
func statusFor(err error) int {
	kind, _ := models.KindOf(err)
	switch kind {
	case models.ValidationError, models.ImageDecodeError:
		return http.StatusBadRequest
	case models.GenerationError, models.UploadError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
