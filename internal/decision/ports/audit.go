package ports

import (
	"context"

	"loanengine/internal/audit"
)

//go:generate mockgen -source=audit.go -destination=mocks/audit-mocks.go -package=mocks AuditPort

// AuditPort defines the interface for emitting decision audit events.
// This matches audit.Publisher but is declared here to keep the decision
// module independent of publisher implementations.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
