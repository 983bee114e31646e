package repository

import (
	"context"

	"github.com/sjperalta/propostas-api/internal/models"
	"gorm.io/gorm"
)

// ProposalRepository defines the interface for proposal data access
type ProposalRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Proposal, error)
	Create(ctx context.Context, proposal *models.Proposal) error
	Update(ctx context.Context, proposal *models.Proposal) error
	Delete(ctx context.Context, id uint) error
	// List returns every proposal, newest first
	List(ctx context.Context) ([]models.Proposal, error)
}

type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) FindByID(ctx context.Context, id uint) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := r.db.WithContext(ctx).First(&proposal, id).Error; err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepository) Create(ctx context.Context, proposal *models.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

// Update overwrites every column of the stored row
func (r *proposalRepository) Update(ctx context.Context, proposal *models.Proposal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Proposal{ID: proposal.ID}).
		Select("*").
		Omit("id").
		Updates(proposal)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *proposalRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Proposal{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *proposalRepository) List(ctx context.Context) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.WithContext(ctx).Order("id DESC").Find(&proposals).Error
	return proposals, err
}
