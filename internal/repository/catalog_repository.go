package repository

import (
	"context"

	"github.com/sjperalta/propostas-api/internal/models"
	"gorm.io/gorm"
)

// CatalogRepository defines data access for one reference list (partners or banks)
type CatalogRepository interface {
	Kind() models.CatalogKind
	FindByID(ctx context.Context, id uint) (*models.CatalogEntry, error)
	FindByDescription(ctx context.Context, description string) (*models.CatalogEntry, error)
	Create(ctx context.Context, entry *models.CatalogEntry) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
	// List returns every entry ordered by description
	List(ctx context.Context) ([]models.CatalogEntry, error)
	// ListActive returns active entries ordered by description
	ListActive(ctx context.Context) ([]models.CatalogEntry, error)
	Count(ctx context.Context) (int64, error)
}

type catalogRepository struct {
	db   *gorm.DB
	kind models.CatalogKind
}

// NewCatalogRepository creates a repository over the table backing kind
func NewCatalogRepository(db *gorm.DB, kind models.CatalogKind) CatalogRepository {
	return &catalogRepository{db: db, kind: kind}
}

func (r *catalogRepository) Kind() models.CatalogKind {
	return r.kind
}

func (r *catalogRepository) table(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.kind.Table())
}

func (r *catalogRepository) FindByID(ctx context.Context, id uint) (*models.CatalogEntry, error) {
	var entry models.CatalogEntry
	if err := r.table(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByDescription matches the description exactly (case-sensitive)
func (r *catalogRepository) FindByDescription(ctx context.Context, description string) (*models.CatalogEntry, error) {
	var entry models.CatalogEntry
	if err := r.table(ctx).Where("descricao = ?", description).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *catalogRepository) Create(ctx context.Context, entry *models.CatalogEntry) error {
	return translateWriteError(r.table(ctx).Create(entry).Error)
}

func (r *catalogRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.table(ctx).Where("id = ?", id).Update("ativo", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// both drivers report matched rows, so zero means no such id
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, id uint) error {
	result := r.table(ctx).Where("id = ?", id).Delete(&models.CatalogEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *catalogRepository) List(ctx context.Context) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	err := r.table(ctx).Order("descricao").Find(&entries).Error
	return entries, err
}

func (r *catalogRepository) ListActive(ctx context.Context) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	err := r.table(ctx).Where("ativo = ?", true).Order("descricao").Find(&entries).Error
	return entries, err
}

func (r *catalogRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.table(ctx).Count(&total).Error
	return total, err
}
