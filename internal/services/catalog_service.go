package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/repository"
	"github.com/sjperalta/propostas-api/pkg/logger"
	"gorm.io/gorm"
)

// CatalogLookup tells proposal validation which catalog values may be chosen
type CatalogLookup interface {
	IsSelectable(ctx context.Context, kind models.CatalogKind, description string) (bool, error)
}

// CatalogService manages the partner and bank reference lists
type CatalogService struct {
	partners repository.CatalogRepository
	banks    repository.CatalogRepository
}

// NewCatalogService creates a catalog service
func NewCatalogService(partners, banks repository.CatalogRepository) *CatalogService {
	return &CatalogService{partners: partners, banks: banks}
}

func (s *CatalogService) repo(kind models.CatalogKind) (repository.CatalogRepository, error) {
	switch kind {
	case models.CatalogPartners:
		return s.partners, nil
	case models.CatalogBanks:
		return s.banks, nil
	}
	return nil, &ValidationError{Problems: []string{fmt.Sprintf("catálogo desconhecido %q", kind)}}
}

// Add inserts a new active entry. Admin only.
func (s *CatalogService) Add(ctx context.Context, actor *models.Identity, kind models.CatalogKind, description string) (*models.CatalogEntry, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	repo, err := s.repo(kind)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, &ValidationError{Problems: []string{"descrição do " + kind.Label() + " é obrigatória"}}
	}

	entry := &models.CatalogEntry{Description: description, Active: true}
	if err := repo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Entity: kind.Label(), Value: description}
		}
		return nil, err
	}
	logger.Info("Catalog entry added", "catalog", kind, "description", description, "by", actor.Login)
	return entry, nil
}

// SetActive toggles whether an entry is offered for new proposals. Admin only.
func (s *CatalogService) SetActive(ctx context.Context, actor *models.Identity, kind models.CatalogKind, id uint, active bool) error {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	repo, err := s.repo(kind)
	if err != nil {
		return err
	}
	if err := repo.SetActive(ctx, id, active); err != nil {
		return notFound(err, kind.Label(), id)
	}
	return nil
}

// Remove deletes an entry. Proposals that reference it keep their value.
// Admin only.
func (s *CatalogService) Remove(ctx context.Context, actor *models.Identity, kind models.CatalogKind, id uint) error {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	repo, err := s.repo(kind)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, id); err != nil {
		return notFound(err, kind.Label(), id)
	}
	logger.Info("Catalog entry removed", "catalog", kind, "id", id, "by", actor.Login)
	return nil
}

// List returns every entry, active or not. Admin only.
func (s *CatalogService) List(ctx context.Context, actor *models.Identity, kind models.CatalogKind) ([]models.CatalogEntry, error) {
	if err := RequireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	repo, err := s.repo(kind)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// ListSelectable returns the descriptions of active entries in ascending order
func (s *CatalogService) ListSelectable(ctx context.Context, kind models.CatalogKind) ([]string, error) {
	repo, err := s.repo(kind)
	if err != nil {
		return nil, err
	}
	entries, err := repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Description)
	}
	return out, nil
}

// IsSelectable reports whether description is an active entry of kind
func (s *CatalogService) IsSelectable(ctx context.Context, kind models.CatalogKind, description string) (bool, error) {
	repo, err := s.repo(kind)
	if err != nil {
		return false, err
	}
	entry, err := repo.FindByDescription(ctx, description)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return entry.Active, nil
}

// SeedIfEmpty fills an empty catalog with descriptions. Duplicates in the
// list are skipped.
func (s *CatalogService) SeedIfEmpty(ctx context.Context, kind models.CatalogKind, descriptions []string) error {
	repo, err := s.repo(kind)
	if err != nil {
		return err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}
	for _, d := range descriptions {
		err := repo.Create(ctx, &models.CatalogEntry{Description: d, Active: true})
		if err != nil && !errors.Is(err, repository.ErrDuplicateKey) {
			return err
		}
	}
	logger.Info("Catalog seeded", "catalog", kind, "entries", len(descriptions))
	return nil
}
