package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validInput() ProposalInput {
	return ProposalInput{
		ReferenceCode: "ADE-1",
		ClientID:      "123.456.789-00",
		Date:          "2024-05-10",
		Partner:       "Alfa",
		ProductType:   models.ProductFGTS,
		Value:         "1.500,25",
		Bank:          "PAN - DG",
	}
}

type proposalFixture struct {
	service *ProposalService
	repo    *mockProposalRepo
	audit   *mockAuditRepo
	catalog *CatalogService
	stored  map[uint]models.Proposal
	nextID  uint
}

func newProposalFixture() *proposalFixture {
	f := &proposalFixture{stored: make(map[uint]models.Proposal)}
	f.repo = &mockProposalRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Proposal, error) {
			p, ok := f.stored[id]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return &p, nil
		},
		mockCreate: func(ctx context.Context, p *models.Proposal) error {
			f.nextID++
			p.ID = f.nextID
			f.stored[p.ID] = *p
			return nil
		},
		mockUpdate: func(ctx context.Context, p *models.Proposal) error {
			if _, ok := f.stored[p.ID]; !ok {
				return gorm.ErrRecordNotFound
			}
			f.stored[p.ID] = *p
			return nil
		},
		mockDelete: func(ctx context.Context, id uint) error {
			if _, ok := f.stored[id]; !ok {
				return gorm.ErrRecordNotFound
			}
			delete(f.stored, id)
			return nil
		},
	}
	f.audit = &mockAuditRepo{}
	f.catalog = NewCatalogService(
		newFakeCatalogRepo(models.CatalogPartners, "Alfa", "Beta"),
		newFakeCatalogRepo(models.CatalogBanks, "PAN - DG", "PICPAY - DG"),
	)
	f.service = NewProposalService(f.repo, f.catalog, NewAuditService(f.audit))
	return f
}

func TestProposalService_Create(t *testing.T) {
	f := newProposalFixture()

	result, err := f.service.Create(context.Background(), operatorIdentity, validInput())

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.ID)
	assert.Empty(t, result.Warning)

	stored := f.stored[1]
	assert.Equal(t, "Maria Silva", stored.Operator, "operator defaults to the caller")
	assert.Equal(t, "1500.25", stored.Value.Decimal.String())

	require.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, models.ActionCreate, entry.Action)
	assert.Equal(t, "maria", entry.Login)
	require.NotNil(t, entry.ProposalID)
	assert.Equal(t, uint(1), *entry.ProposalID)
	assert.Contains(t, entry.Details, "ade=ADE-1")
	assert.Contains(t, entry.Details, "valor=1500.25")
}

func TestProposalService_Create_ListsEveryProblem(t *testing.T) {
	f := newProposalFixture()
	in := ProposalInput{
		Date:        "10/05/2024",
		Partner:     models.PartnerPlaceholder,
		ProductType: "CONSORCIO",
		Value:       "abc",
		Bank:        "",
	}

	_, err := f.service.Create(context.Background(), &models.Identity{Login: "x", Role: models.RoleOperator}, in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, []string{
		"digitador é obrigatório",
		"ADE é obrigatório",
		"CPF é obrigatório",
		"data deve estar no formato AAAA-MM-DD",
		"selecione um parceiro",
		"tipo de produto inválido",
		"selecione um banco",
		`valor inválido "abc"`,
	}, verr.Problems)
	assert.Empty(t, f.stored)
	assert.Empty(t, f.audit.entries)
}

func TestProposalService_Create_NormalizesProductPlaceholderAndEmptyValue(t *testing.T) {
	f := newProposalFixture()
	in := validInput()
	in.ProductType = models.ProductPlaceholder
	in.Value = ""

	_, err := f.service.Create(context.Background(), operatorIdentity, in)

	require.NoError(t, err)
	assert.Equal(t, "", f.stored[1].ProductType)
	assert.False(t, f.stored[1].Value.Valid)
	assert.Contains(t, f.audit.entries[0].Details, "valor=None")
}

func TestProposalService_Create_RejectsInactiveCatalogValue(t *testing.T) {
	f := newProposalFixture()
	require.NoError(t, f.catalog.SetActive(context.Background(), adminIdentity, models.CatalogPartners, 1, false))

	_, err := f.service.Create(context.Background(), operatorIdentity, validInput())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{`parceiro "Alfa" não está ativo no cadastro`}, verr.Problems)
}

func TestProposalService_Update_KeepsStoredInactiveValue(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	_, err := f.service.Create(ctx, operatorIdentity, validInput())
	require.NoError(t, err)
	require.NoError(t, f.catalog.SetActive(ctx, adminIdentity, models.CatalogPartners, 1, false))

	in := validInput()
	in.Value = "200"
	result, err := f.service.Update(ctx, adminIdentity, 1, in)

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.ID)
	assert.Equal(t, "200", f.stored[1].Value.Decimal.String())
	assert.Equal(t, "Administrador", f.stored[1].Operator)

	require.Len(t, f.audit.entries, 2)
	entry := f.audit.entries[1]
	assert.Equal(t, models.ActionUpdate, entry.Action)
	assert.Equal(t, "admin", entry.Login)
	assert.Contains(t, entry.Details, "antes: digitador=Maria Silva")
	assert.Contains(t, entry.Details, " | depois: digitador=Administrador")
	assert.Contains(t, entry.Details, "valor=1500.25")
	assert.Contains(t, entry.Details, "valor=200")
}

func TestProposalService_Update_NotFound(t *testing.T) {
	f := newProposalFixture()

	_, err := f.service.Update(context.Background(), operatorIdentity, 5, validInput())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.audit.entries)
}

func TestProposalService_Delete(t *testing.T) {
	f := newProposalFixture()
	ctx := context.Background()
	_, err := f.service.Create(ctx, operatorIdentity, validInput())
	require.NoError(t, err)

	result, err := f.service.Delete(ctx, operatorIdentity, 1)

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.ID)
	assert.Empty(t, f.stored)
	require.Len(t, f.audit.entries, 2)
	assert.Equal(t, models.ActionDelete, f.audit.entries[1].Action)
	assert.Contains(t, f.audit.entries[1].Details, "cpf=123.456.789-00")
}

func TestProposalService_Delete_MissingIDWritesNoAudit(t *testing.T) {
	f := newProposalFixture()

	_, err := f.service.Delete(context.Background(), operatorIdentity, 404)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uint(404), nf.ID)
	assert.Empty(t, f.audit.entries)
}

func TestProposalService_AuditFailureIsAWarning(t *testing.T) {
	f := newProposalFixture()
	f.audit.mockCreate = func(ctx context.Context, entry *models.ProposalLog) error {
		return errors.New("disk full")
	}

	result, err := f.service.Create(context.Background(), operatorIdentity, validInput())

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.ID)
	assert.Contains(t, result.Warning, "disk full")
	assert.Len(t, f.stored, 1, "the mutation is kept")
}

func TestProposalService_RequiresIdentity(t *testing.T) {
	f := newProposalFixture()

	_, err := f.service.Create(context.Background(), nil, validInput())

	assert.ErrorIs(t, err, ErrAuthFailure)
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var in struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 10.5, "b": "1.000,00", "c": null}`), &in))

	assert.Equal(t, Amount("10.5"), in.A)
	assert.Equal(t, Amount("1.000,00"), in.B)
	assert.Equal(t, Amount(""), in.C)
}
