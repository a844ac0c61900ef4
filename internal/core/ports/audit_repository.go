package ports

import (
	"context"

	"github.com/taskmanagement/console/internal/core/domain"
)

// AuditRepository stores the trail of mutating console actions.
type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
}
