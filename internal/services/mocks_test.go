package services

import (
	"context"
	"sort"

	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/repository"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByLogin func(ctx context.Context, login string) (*models.User, error)
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
	mockCreate      func(ctx context.Context, user *models.User) error
	mockUpdate      func(ctx context.Context, user *models.User) error
	mockDelete      func(ctx context.Context, id uint) error
	mockCount       func(ctx context.Context) (int64, error)
}

func (m *mockUserRepo) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return m.mockFindByLogin(ctx, login)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.mockCreate(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.mockUpdate(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.mockDelete(ctx, id)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	return m.mockCount(ctx)
}

type mockProposalRepo struct {
	repository.ProposalRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Proposal, error)
	mockCreate   func(ctx context.Context, p *models.Proposal) error
	mockUpdate   func(ctx context.Context, p *models.Proposal) error
	mockDelete   func(ctx context.Context, id uint) error
	mockList     func(ctx context.Context) ([]models.Proposal, error)
}

func (m *mockProposalRepo) FindByID(ctx context.Context, id uint) (*models.Proposal, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockProposalRepo) Create(ctx context.Context, p *models.Proposal) error {
	return m.mockCreate(ctx, p)
}

func (m *mockProposalRepo) Update(ctx context.Context, p *models.Proposal) error {
	return m.mockUpdate(ctx, p)
}

func (m *mockProposalRepo) Delete(ctx context.Context, id uint) error {
	return m.mockDelete(ctx, id)
}

func (m *mockProposalRepo) List(ctx context.Context) ([]models.Proposal, error) {
	return m.mockList(ctx)
}

type mockAuditRepo struct {
	repository.AuditRepository
	entries    []models.ProposalLog
	mockCreate func(ctx context.Context, entry *models.ProposalLog) error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.ProposalLog) error {
	if m.mockCreate != nil {
		if err := m.mockCreate(ctx, entry); err != nil {
			return err
		}
	}
	m.entries = append(m.entries, *entry)
	return nil
}

// fakeCatalogRepo keeps entries in memory with the unique description rule
type fakeCatalogRepo struct {
	kind    models.CatalogKind
	entries []models.CatalogEntry
	nextID  uint
}

func newFakeCatalogRepo(kind models.CatalogKind, descriptions ...string) *fakeCatalogRepo {
	r := &fakeCatalogRepo{kind: kind}
	for _, d := range descriptions {
		_ = r.Create(context.Background(), &models.CatalogEntry{Description: d, Active: true})
	}
	return r
}

func (r *fakeCatalogRepo) Kind() models.CatalogKind { return r.kind }

func (r *fakeCatalogRepo) find(match func(e *models.CatalogEntry) bool) (*models.CatalogEntry, error) {
	for i := range r.entries {
		if match(&r.entries[i]) {
			e := r.entries[i]
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) FindByID(ctx context.Context, id uint) (*models.CatalogEntry, error) {
	return r.find(func(e *models.CatalogEntry) bool { return e.ID == id })
}

func (r *fakeCatalogRepo) FindByDescription(ctx context.Context, description string) (*models.CatalogEntry, error) {
	return r.find(func(e *models.CatalogEntry) bool { return e.Description == description })
}

func (r *fakeCatalogRepo) Create(ctx context.Context, entry *models.CatalogEntry) error {
	if _, err := r.FindByDescription(ctx, entry.Description); err == nil {
		return repository.ErrDuplicateKey
	}
	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeCatalogRepo) SetActive(ctx context.Context, id uint, active bool) error {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries[i].Active = active
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) Delete(ctx context.Context, id uint) error {
	for i := range r.entries {
		if r.entries[i].ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) sorted(activeOnly bool) []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if !activeOnly || e.Active {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out
}

func (r *fakeCatalogRepo) List(ctx context.Context) ([]models.CatalogEntry, error) {
	return r.sorted(false), nil
}

func (r *fakeCatalogRepo) ListActive(ctx context.Context) ([]models.CatalogEntry, error) {
	return r.sorted(true), nil
}

func (r *fakeCatalogRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

var (
	adminIdentity    = &models.Identity{UserID: 1, Login: "admin", DisplayName: "Administrador", Role: models.RoleAdmin}
	operatorIdentity = &models.Identity{UserID: 2, Login: "maria", DisplayName: "Maria Silva", Role: models.RoleOperator}
)
