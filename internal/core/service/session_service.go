package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

var _ ports.SessionService = (*SessionService)(nil)

// SessionService implements login, logout and session lookup.
type SessionService struct {
	gateway ports.AuthGateway
	repo    ports.SessionRepository
	logouts ports.LogoutQueue
	audit   auditor
	ttl     time.Duration
	logger  zerolog.Logger
	newID   func() string
	now     func() time.Time
}

func NewSessionService(gateway ports.AuthGateway, repo ports.SessionRepository, logouts ports.LogoutQueue, audits ports.AuditRepository, ttl time.Duration, logger zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		gateway: gateway,
		repo:    repo,
		logouts: logouts,
		audit:   newAuditor(audits, logger),
		ttl:     ttl,
		logger:  logger,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

func (s *SessionService) Login(ctx context.Context, creds ports.Credentials) (string, *domain.Session, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		return "", nil, &domain.ValidationError{
			Message: "username and password are required",
			Fields:  requiredFields(creds),
		}
	}

	result, err := s.gateway.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound) {
			err = fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
		}
		s.audit.record(ctx, &domain.Session{Username: creds.Username}, "session:login", "session", 0, err)
		return "", nil, err
	}
	if err := ctx.Err(); err != nil {
		// abandoned submit: do not persist anything
		return "", nil, err
	}

	session := &domain.Session{
		UserID:        result.User.ID,
		DisplayName:   result.User.FullName,
		Username:      result.User.Username,
		Roles:         normalizeRoles(result.User.Roles),
		Authenticated: true,
		AccessToken:   result.AccessToken,
		CreatedAt:     s.now().UTC(),
	}
	if session.Username == "" {
		session.Username = creds.Username
	}

	id := s.newID()
	if err := s.repo.Save(ctx, id, session, s.ttl); err != nil {
		s.logger.Error().Err(err).Str("username", session.Username).Msg("session persist failed")
		return "", nil, fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}

	s.logger.Info().Int64("user_id", session.UserID).Strs("roles", session.RoleCodes()).Msg("login")
	s.audit.record(ctx, session, "session:login", "session", session.UserID, nil)
	return id, session, nil
}

func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	session, err := s.repo.Find(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		s.logger.Warn().Err(err).Msg("logout lookup failed")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}
	if session == nil {
		return nil
	}

	if s.logouts != nil && session.AccessToken != "" {
		s.logouts.Enqueue(ports.LogoutConfirmation{
			SessionID:   id,
			UserID:      session.UserID,
			AccessToken: session.AccessToken,
		})
	}
	s.logger.Info().Int64("user_id", session.UserID).Msg("logout")
	s.audit.record(ctx, session, "session:logout", "session", session.UserID, nil)
	return nil
}

func (s *SessionService) Current(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.repo.Find(ctx, id)
}

func (s *SessionService) ReplaceRoles(ctx context.Context, id string, roles []domain.Role) (*domain.Session, error) {
	session, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Roles = normalizeRoles(roles)
	if err := s.repo.Save(ctx, id, session, s.ttl); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}
	s.logger.Info().Int64("user_id", session.UserID).Strs("roles", session.RoleCodes()).Msg("session roles replaced")
	return session, nil
}

func normalizeRoles(roles []domain.Role) []domain.Role {
	out := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		r.Code = domain.NormalizeRoleCode(r.Code)
		if r.Code == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func requiredFields(creds ports.Credentials) map[string]string {
	fields := make(map[string]string)
	if creds.Username == "" {
		fields["username"] = "Username is required"
	}
	if creds.Password == "" {
		fields["password"] = "Password is required"
	}
	return fields
}
