package repository

import (
	"context"
	"strings"

	"github.com/sjperalta/propostas-api/internal/models"
	"gorm.io/gorm"
)

// AuditQuery filters the audit log. Empty fields are ignored.
type AuditQuery struct {
	Action     string // exact match
	Login      string // contains, case-insensitive
	ProposalID string // contains, on the string form of the id
}

// AuditRepository defines the interface for the append-only audit log
type AuditRepository interface {
	Create(ctx context.Context, entry *models.ProposalLog) error
	// List returns matching entries, newest first
	List(ctx context.Context, query AuditQuery) ([]models.ProposalLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.ProposalLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, query AuditQuery) ([]models.ProposalLog, error) {
	db := r.db.WithContext(ctx).Model(&models.ProposalLog{})

	if query.Action != "" {
		db = db.Where("acao = ?", query.Action)
	}
	if login := strings.TrimSpace(query.Login); login != "" {
		db = db.Where("LOWER(usuario) LIKE ?", "%"+strings.ToLower(login)+"%")
	}
	if pid := strings.TrimSpace(query.ProposalID); pid != "" {
		db = db.Where("CAST(proposta_id AS TEXT) LIKE ?", "%"+pid+"%")
	}

	var logs []models.ProposalLog
	err := db.Order("id DESC").Find(&logs).Error
	return logs, err
}
