package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"loanengine/internal/decision"
	dErrors "loanengine/pkg/domain-errors"
	"loanengine/pkg/platform/httputil"
	"loanengine/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/decision-mocks.go -package=mocks Service

// Service defines the interface for decision operations.
type Service interface {
	Evaluate(ctx context.Context, req decision.Request) (decision.Decision, error)
}

// Handler wires decision endpoints to the decision service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a decision handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts decision endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/loan/decision", h.HandleDecision)
}

// HandleDecision handles POST /loan/decision requests.
func (h *Handler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, err := httputil.DecodeJSON[DecisionRequest](r)
	if err == nil {
		err = req.Validate()
	}
	if err != nil {
		h.logger.InfoContext(ctx, "invalid decision request",
			"request_id", requestID,
			"error", err,
		)
		writeDecisionError(w, err)
		return
	}

	result, err := h.service.Evaluate(ctx, req.ToDomain())
	if err != nil {
		if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "decision evaluation failed",
				"request_id", requestID,
				"error", err,
			)
		}
		writeDecisionError(w, err)
		return
	}

	h.logger.DebugContext(ctx, "decision served",
		"request_id", requestID,
		"outcome", result.Outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromDecision(result))
}

func writeDecisionError(w http.ResponseWriter, err error) {
	status := dErrors.ToHTTPStatus(dErrors.CodeOf(err))
	httputil.WriteJSON(w, status, FromError(err))
}
