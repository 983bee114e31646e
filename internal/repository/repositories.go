package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sjperalta/propostas-api/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when a write violates a unique constraint
var ErrDuplicateKey = errors.New("registro duplicado")

// Repositories holds all repository instances
type Repositories struct {
	Proposal ProposalRepository
	User     UserRepository
	Audit    AuditRepository
	Partner  CatalogRepository
	Bank     CatalogRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Proposal: NewProposalRepository(db),
		User:     NewUserRepository(db),
		Audit:    NewAuditRepository(db),
		Partner:  NewCatalogRepository(db, models.CatalogPartners),
		Bank:     NewCatalogRepository(db, models.CatalogBanks),
	}
}

// Catalog returns the repository for kind, or nil for an unknown kind
func (r *Repositories) Catalog(kind models.CatalogKind) CatalogRepository {
	switch kind {
	case models.CatalogPartners:
		return r.Partner
	case models.CatalogBanks:
		return r.Bank
	}
	return nil
}

// translateWriteError maps driver unique violations to ErrDuplicateKey
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
