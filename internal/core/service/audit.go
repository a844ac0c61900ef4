package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

const auditTimeout = 2 * time.Second

// auditor writes audit entries. A failed write is logged and never fails the
// action being audited.
type auditor struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
	now    func() time.Time
}

func newAuditor(repo ports.AuditRepository, logger zerolog.Logger) auditor {
	return auditor{repo: repo, logger: logger, now: time.Now}
}

func (a auditor) record(ctx context.Context, actor *domain.Session, action, resource string, resourceID int64, err error) {
	if a.repo == nil {
		return
	}
	entry := &domain.AuditEntry{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Outcome:    outcome(err),
		At:         a.now().UTC(),
	}
	if actor != nil {
		entry.ActorID = actor.UserID
		entry.Actor = actor.Username
	}
	if err != nil {
		entry.Error = err.Error()
	}

	// the request may already be cancelled; the trail still gets written
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	if werr := a.repo.Record(wctx, entry); werr != nil {
		a.logger.Warn().Err(werr).Str("action", action).Str("outcome", entry.Outcome).Msg("audit write failed")
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return domain.OutcomeSuccess
	case errors.Is(err, domain.ErrForbidden):
		return domain.OutcomeDenied
	default:
		return domain.OutcomeFailure
	}
}
