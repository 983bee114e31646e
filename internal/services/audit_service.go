package services

import (
	"context"
	"time"

	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/repository"
	"github.com/sjperalta/propostas-api/pkg/logger"
)

// AuditService writes and reads the proposal audit log
type AuditService struct {
	repo repository.AuditRepository
	now  func() time.Time
}

// NewAuditService creates an audit service
func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo, now: time.Now}
}

// Log appends an entry. Failures are logged and returned so callers can
// surface them as a warning without undoing their own work.
func (s *AuditService) Log(ctx context.Context, proposalID uint, action, login, details string) error {
	entry := &models.ProposalLog{
		Action:    action,
		Login:     login,
		Timestamp: s.now(),
		Details:   details,
	}
	if proposalID != 0 {
		entry.ProposalID = &proposalID
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.WarnContext(ctx, "Failed to write audit log", "action", action, "proposal_id", proposalID, "error", err)
		return err
	}
	return nil
}

// List returns matching entries, newest first. Admin only.
func (s *AuditService) List(ctx context.Context, actor *models.Identity, query repository.AuditQuery) ([]models.ProposalLog, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, query)
}
