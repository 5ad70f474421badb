package audit

import (
	"context"
	"errors"
	"log/slog"

	"loanengine/pkg/platform/circuit"
)

// ErrSinkDegraded is returned by FallbackPublisher.Health while events are
// being diverted to the fallback.
var ErrSinkDegraded = errors.New("audit sink degraded")

// FallbackPublisher writes to primary and diverts an event to fallback when
// primary rejects it, so no event is dropped. A breaker tracks consecutive
// primary failures to report health and log state changes once.
type FallbackPublisher struct {
	primary  Publisher
	fallback Publisher
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewFallbackPublisher(primary, fallback Publisher, logger *slog.Logger, opts ...circuit.Option) *FallbackPublisher {
	return &FallbackPublisher{
		primary:  primary,
		fallback: fallback,
		breaker:  circuit.New("audit", opts...),
		logger:   logger,
	}
}

func (p *FallbackPublisher) Emit(ctx context.Context, event Event) error {
	err := p.primary.Emit(ctx, event)
	if err == nil {
		if _, change := p.breaker.RecordSuccess(); change.Closed {
			p.logger.InfoContext(ctx, "audit sink recovered")
		}
		return nil
	}

	if _, change := p.breaker.RecordFailure(); change.Opened {
		p.logger.WarnContext(ctx, "audit sink failing, diverting events to fallback", "error", err)
	}
	if ferr := p.fallback.Emit(ctx, event); ferr != nil {
		return errors.Join(err, ferr)
	}
	return nil
}

// Health reports ErrSinkDegraded while the breaker is open.
func (p *FallbackPublisher) Health(context.Context) error {
	if p.breaker.IsOpen() {
		return ErrSinkDegraded
	}
	return nil
}
