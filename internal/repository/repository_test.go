package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/propostas-api/internal/database"
	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepos(t *testing.T) *Repositories {
	t.Helper()
	db, err := database.Connect("file::memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return NewRepositories(db)
}

func proposal(cpf, value string) *models.Proposal {
	p := &models.Proposal{
		Operator:      "maria",
		ReferenceCode: "ADE-" + cpf,
		ClientID:      cpf,
		Date:          "2024-03-01",
		Partner:       "Parceiro A",
		ProductType:   models.ProductRefin,
		Bank:          "PAN - DG",
	}
	if value != "" {
		p.Value = decimal.NewNullDecimal(decimal.RequireFromString(value))
	}
	return p
}

func TestProposalRepository_CRUD(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	first := proposal("111", "100.50")
	second := proposal("222", "")
	require.NoError(t, repos.Proposal.Create(ctx, first))
	require.NoError(t, repos.Proposal.Create(ctx, second))
	assert.NotZero(t, first.ID)

	list, err := repos.Proposal.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest first")
	assert.False(t, list[0].Value.Valid)
	assert.True(t, list[1].Value.Decimal.Equal(decimal.RequireFromString("100.50")))

	first.Bank = "ITAU - DG"
	first.Value = decimal.NullDecimal{}
	require.NoError(t, repos.Proposal.Update(ctx, first))

	stored, err := repos.Proposal.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "ITAU - DG", stored.Bank)
	assert.False(t, stored.Value.Valid, "update clears the value")

	require.NoError(t, repos.Proposal.Delete(ctx, first.ID))
	_, err = repos.Proposal.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProposalRepository_ValueKeepsEveryDigit(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	for _, value := range []string{"1234567890123456.78", "99999999999999999.99", "0.01", "1500.25"} {
		t.Run(value, func(t *testing.T) {
			p := proposal("444", value)
			require.NoError(t, repos.Proposal.Create(ctx, p))

			stored, err := repos.Proposal.FindByID(ctx, p.ID)
			require.NoError(t, err)
			require.True(t, stored.Value.Valid)
			assert.True(t, stored.Value.Decimal.Equal(decimal.RequireFromString(value)), "got %s", stored.Value.Decimal)
		})
	}
}

func TestProposalRepository_MissingID(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	missing := proposal("999", "10")
	missing.ID = 42
	assert.ErrorIs(t, repos.Proposal.Update(ctx, missing), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repos.Proposal.Delete(ctx, 42), gorm.ErrRecordNotFound)
}

func TestUserRepository(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	user := &models.User{Login: "maria", DisplayName: "Maria", PasswordHash: "x", Role: models.RoleOperator}
	require.NoError(t, repos.User.Create(ctx, user))

	dup := &models.User{Login: "maria", DisplayName: "Outra", PasswordHash: "y", Role: models.RoleOperator}
	assert.ErrorIs(t, repos.User.Create(ctx, dup), ErrDuplicateKey)

	found, err := repos.User.FindByLogin(ctx, "maria")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repos.User.FindByLogin(ctx, "MARIA")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "login match is exact")

	total, err := repos.User.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	require.NoError(t, repos.User.Delete(ctx, user.ID))
	assert.ErrorIs(t, repos.User.Delete(ctx, user.ID), gorm.ErrRecordNotFound)
}

func TestCatalogRepository_ActivationLifecycle(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	partners := repos.Catalog(models.CatalogPartners)
	require.NotNil(t, partners)

	entry := &models.CatalogEntry{Description: "Parceiro X", Active: true}
	require.NoError(t, partners.Create(ctx, entry))

	active, err := partners.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, partners.SetActive(ctx, entry.ID, false))
	active, err = partners.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := partners.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	require.NoError(t, partners.SetActive(ctx, entry.ID, true))
	found, err := partners.FindByDescription(ctx, "Parceiro X")
	require.NoError(t, err)
	assert.True(t, found.Active)

	assert.ErrorIs(t, partners.Create(ctx, &models.CatalogEntry{Description: "Parceiro X", Active: true}), ErrDuplicateKey)
	assert.ErrorIs(t, partners.SetActive(ctx, 999, true), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, partners.Delete(ctx, 999), gorm.ErrRecordNotFound)
}

func TestCatalogRepository_TablesAreSeparate(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Bank.Create(ctx, &models.CatalogEntry{Description: "PAN - DG", Active: true}))
	require.NoError(t, repos.Partner.Create(ctx, &models.CatalogEntry{Description: "PAN - DG", Active: true}))

	banks, err := repos.Bank.Count(ctx)
	require.NoError(t, err)
	partners, err := repos.Partner.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, banks)
	assert.EqualValues(t, 1, partners)
	assert.Nil(t, repos.Catalog(models.CatalogKind("products")))
}

func TestAuditRepository_Filters(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	id7, id12, id70 := uint(7), uint(12), uint(70)
	entries := []*models.ProposalLog{
		{ProposalID: &id7, Action: models.ActionCreate, Login: "maria", Timestamp: now, Details: "a"},
		{ProposalID: &id12, Action: models.ActionUpdate, Login: "Maria.Souza", Timestamp: now, Details: "b"},
		{ProposalID: &id70, Action: models.ActionDelete, Login: "admin", Timestamp: now, Details: "c"},
		{ProposalID: nil, Action: models.ActionCreate, Login: "admin", Timestamp: now, Details: "d"},
	}
	for _, e := range entries {
		require.NoError(t, repos.Audit.Create(ctx, e))
	}

	tests := []struct {
		name    string
		query   AuditQuery
		details []string
	}{
		{"no filter newest first", AuditQuery{}, []string{"d", "c", "b", "a"}},
		{"action exact", AuditQuery{Action: models.ActionCreate}, []string{"d", "a"}},
		{"login contains case-insensitive", AuditQuery{Login: "MARIA"}, []string{"b", "a"}},
		{"proposal id contains", AuditQuery{ProposalID: "7"}, []string{"c", "a"}},
		{"combined", AuditQuery{Action: models.ActionUpdate, Login: "souza"}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs, err := repos.Audit.List(ctx, tt.query)
			require.NoError(t, err)
			got := make([]string, len(logs))
			for i, l := range logs {
				got[i] = l.Details
			}
			assert.Equal(t, tt.details, got)
		})
	}
}
