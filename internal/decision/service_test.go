package decision

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"loanengine/internal/audit"
	"loanengine/internal/decision/metrics"
	"loanengine/internal/decision/ports/mocks"
	dErrors "loanengine/pkg/domain-errors"
	"loanengine/pkg/requestcontext"
	"loanengine/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx       context.Context
	logs      *bytes.Buffer
	publisher *audit.MemoryPublisher
	metrics   *metrics.Metrics
	service   *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctx := requestcontext.WithTime(context.Background(), testutil.FixedNow)
	s.ctx = requestcontext.WithRequestID(ctx, "req-123")
	s.logs = &bytes.Buffer{}
	s.publisher = audit.NewMemoryPublisher()
	s.metrics = metrics.NewWithRegistry(prometheus.NewRegistry())

	engine, err := NewEngine(DefaultConfig())
	s.Require().NoError(err)
	s.service, err = NewService(engine,
		WithLogger(slog.New(slog.NewJSONHandler(s.logs, nil))),
		WithAuditor(s.publisher),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestNewServiceRequiresEngine() {
	_, err := NewService(nil)
	s.Error(err)
}

// =============================================================================
// Evaluate
// =============================================================================

func (s *ServiceSuite) TestEvaluateDecision() {
	d, err := s.service.Evaluate(s.ctx, Request{
		PersonalCode: segment2Code,
		LoanAmount:   2000,
		LoanPeriod:   24,
		Country:      CountryEstonia,
	})
	s.Require().NoError(err)
	s.Equal(intPtr(7200), d.LoanAmount)

	s.Run("emits audit event with hashed subject", func() {
		events := s.publisher.Events()
		s.Require().Len(events, 1)
		e := events[0]
		s.Equal(audit.ActionLoanDecided, e.Action)
		s.Equal("req-123", e.RequestID)
		s.Equal(audit.HashSubject(segment2Code), e.SubjectIDHash)
		s.Equal("ESTONIA", e.Country)
		s.Equal(string(OutcomeApproved), e.Outcome)
		s.Equal(intPtr(7200), e.Amount)
		s.Equal(testutil.FixedNow, e.Timestamp)
	})

	s.Run("logs masked personal code", func() {
		out := s.logs.String()
		s.Contains(out, "loan decision computed")
		s.Contains(out, `"request_id":"req-123"`)
		s.Contains(out, "384112*****")
		s.NotContains(out, segment2Code)
	})

	s.Run("records outcome metric", func() {
		s.InDelta(1, promtest.ToFloat64(s.metrics.DecisionOutcome.WithLabelValues("approved", "ESTONIA")), 0)
	})
}

func (s *ServiceSuite) TestEvaluateRefusal() {
	_, err := s.service.Evaluate(s.ctx, Request{
		PersonalCode: segment1Code,
		LoanAmount:   1,
		LoanPeriod:   24,
		Country:      CountryEstonia,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidLoanAmount))

	events := s.publisher.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionLoanRefused, events[0].Action)
	s.Equal(string(ErrCodeInvalidLoanAmount), events[0].ErrorCode)
	s.Nil(events[0].Amount)

	s.InDelta(1, promtest.ToFloat64(s.metrics.DecisionErrors.WithLabelValues("E1002")), 0)
	s.Contains(s.logs.String(), "loan request refused")
}

func (s *ServiceSuite) TestAuditFailureDoesNotChangeDecision() {
	ctrl := gomock.NewController(s.T())
	auditor := mocks.NewMockAuditPort(ctrl)
	auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	engine, err := NewEngine(DefaultConfig())
	s.Require().NoError(err)
	svc, err := NewService(engine,
		WithLogger(slog.New(slog.NewJSONHandler(s.logs, nil))),
		WithAuditor(auditor),
	)
	s.Require().NoError(err)

	d, err := svc.Evaluate(s.ctx, Request{
		PersonalCode: segment1Code,
		LoanAmount:   2000,
		LoanPeriod:   24,
		Country:      CountryLatvia,
	})
	s.Require().NoError(err)
	s.Equal(intPtr(2400), d.LoanAmount)
	s.Contains(s.logs.String(), "failed to emit audit event")
}

func (s *ServiceSuite) TestWithoutOptionalDependencies() {
	engine, err := NewEngine(DefaultConfig())
	s.Require().NoError(err)
	svc, err := NewService(engine)
	s.Require().NoError(err)

	d, err := svc.Evaluate(s.ctx, Request{
		PersonalCode: debtorCode,
		LoanAmount:   2000,
		LoanPeriod:   24,
		Country:      CountryEstonia,
	})
	s.Require().NoError(err)
	s.Equal(OutcomeRejected, d.Outcome)
}
