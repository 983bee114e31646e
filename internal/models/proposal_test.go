package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		valid   bool
		wantErr bool
	}{
		{input: "1.500,00", want: "1500", valid: true},
		{input: "1500.50", want: "1500.5", valid: true},
		{input: "R$ 10,5", want: "10.5", valid: true},
		{input: "  250 ", want: "250", valid: true},
		{input: "", valid: false},
		{input: "   ", valid: false},
		{input: "abc", wantErr: true},
		{input: "1,2,3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.True(t, got.Decimal.Equal(decimal.RequireFromString(tt.want)), "got %s", got.Decimal)
			}
		})
	}
}

func TestProposal_Snapshot(t *testing.T) {
	p := &Proposal{
		Operator:      "maria",
		ReferenceCode: "ADE1",
		ClientID:      "123",
		Date:          "2024-03-01",
		Partner:       "P",
		ProductType:   ProductFGTS,
		Bank:          "B",
	}
	assert.Equal(t,
		"digitador=maria, ade=ADE1, cpf=123, data=2024-03-01, parceiro=P, tipo_produto=FGTS, valor=None, banco=B",
		p.Snapshot())

	p.Value = decimal.NewNullDecimal(decimal.RequireFromString("99.9"))
	assert.Contains(t, p.Snapshot(), "valor=99.9,")
	assert.True(t, p.ValueOrZero().Equal(decimal.RequireFromString("99.9")))
}

func TestProductTypesAndRoles(t *testing.T) {
	assert.Len(t, ProductTypes, 11)
	assert.True(t, IsProductType(ProductCLT))
	assert.False(t, IsProductType(ProductPlaceholder))

	assert.Equal(t, RoleOperator, NormalizeRole(" Operator "))
	assert.Equal(t, RoleAdmin, NormalizeRole("ADMIN"))
	assert.Equal(t, "", NormalizeRole("gerente"))

	assert.Equal(t, "parceiros", CatalogPartners.Table())
	assert.False(t, CatalogKind("x").Valid())
	assert.Equal(t, "banco", CatalogBanks.Label())
}
