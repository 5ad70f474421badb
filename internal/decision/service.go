package decision

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"loanengine/internal/audit"
	"loanengine/internal/decision/metrics"
	"loanengine/internal/decision/ports"
	"loanengine/internal/personalcode"
	"loanengine/pkg/requestcontext"
)

// AuditPort is re-exported so callers can wire a publisher without importing ports.
type AuditPort = ports.AuditPort

// Service wraps the Engine with logging, metrics, tracing and auditing. The
// decision itself comes from the Engine unchanged.
type Service struct {
	engine  *Engine
	auditor AuditPort
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditor(auditor AuditPort) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func NewService(engine *Engine, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	svc := &Service{
		engine: engine,
		logger: slog.Default(),
		tracer: otel.Tracer("loanengine/internal/decision"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Evaluate computes a decision for req. Audit failures are logged and do not
// affect the result.
func (s *Service) Evaluate(ctx context.Context, req Request) (Decision, error) {
	ctx, span := s.tracer.Start(ctx, "decision.Evaluate", trace.WithAttributes(
		attribute.String("loan.country", string(req.Country)),
		attribute.Int("loan.amount", req.LoanAmount),
		attribute.Int("loan.period", req.LoanPeriod),
	))
	defer span.End()

	start := time.Now()
	result, err := s.engine.Decide(ctx, req)
	s.metrics.ObserveEvaluateLatency(time.Since(start))

	requestID := requestcontext.RequestID(ctx)
	masked := personalcode.Mask(req.PersonalCode)

	if err != nil {
		code := ErrorCodeOf(err)
		s.metrics.IncrementError(string(code))
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
		span.SetAttributes(attribute.String("loan.error_code", string(code)))

		s.logger.InfoContext(ctx, "loan request refused",
			"request_id", requestID,
			"personal_code", masked,
			"country", req.Country,
			"error_code", code,
			"error", err,
		)
		s.emit(ctx, audit.Event{
			Action:        audit.ActionLoanRefused,
			RequestID:     requestID,
			SubjectIDHash: audit.HashSubject(req.PersonalCode),
			Country:       string(req.Country),
			ErrorCode:     string(code),
			Timestamp:     requestcontext.Now(ctx),
		})
		return Decision{}, err
	}

	s.metrics.IncrementOutcome(string(result.Outcome), string(req.Country))
	span.SetAttributes(attribute.String("loan.outcome", string(result.Outcome)))

	s.logger.InfoContext(ctx, "loan decision computed",
		"request_id", requestID,
		"personal_code", masked,
		"country", req.Country,
		"outcome", result.Outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	s.emit(ctx, audit.Event{
		Action:        audit.ActionLoanDecided,
		RequestID:     requestID,
		SubjectIDHash: audit.HashSubject(req.PersonalCode),
		Country:       string(req.Country),
		Outcome:       string(result.Outcome),
		Amount:        result.LoanAmount,
		Period:        result.LoanPeriod,
		Timestamp:     requestcontext.Now(ctx),
	})
	return result, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"request_id", event.RequestID,
			"action", event.Action,
			"error", err,
		)
	}
}
