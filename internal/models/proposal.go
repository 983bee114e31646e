package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage format of Proposal.Date
const DateLayout = "2006-01-02"

// Placeholders shown by choice inputs before a value is picked. A proposal
// carrying one of them is treated as having no selection.
const (
	PartnerPlaceholder = "Selecione o parceiro"
	BankPlaceholder    = "Selecione o banco"
	ProductPlaceholder = "Selecione um Produto"
)

// Product type tags
const (
	ProductNovoINSS             = "NOVO INSS"
	ProductRefin                = "REFIN"
	ProductCartao               = "CARTÃO"
	ProductFGTS                 = "FGTS"
	ProductSaqueComplementar    = "SAQUE COMPLEMENTAR"
	ProductNovoConvenioPublico  = "NOVO - CONVENIO PUBLICO"
	ProductRefinConvenioPublico = "REFIN - CONVENIO PUBLICO"
	ProductNovoAumento          = "NOVO - AUMENTO"
	ProductSeguroDeVida         = "SEGURO DE VIDA"
	ProductCreditoPessoal       = "CREDITO PESSOAL"
	ProductCLT                  = "CLT"
)

// ProductTypes lists the accepted product tags in display order
var ProductTypes = []string{
	ProductNovoINSS,
	ProductRefin,
	ProductCartao,
	ProductFGTS,
	ProductSaqueComplementar,
	ProductNovoConvenioPublico,
	ProductRefinConvenioPublico,
	ProductNovoAumento,
	ProductSeguroDeVida,
	ProductCreditoPessoal,
	ProductCLT,
}

// IsProductType reports whether tag is one of ProductTypes
func IsProductType(tag string) bool {
	for _, p := range ProductTypes {
		if p == tag {
			return true
		}
	}
	return false
}

// Proposal is a credit proposal keyed in by an operator. Value is stored as
// decimal text: a SQLite NUMERIC column would round it through float64.
type Proposal struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	Operator      string              `gorm:"column:digitador;not null" json:"operator"`
	ReferenceCode string              `gorm:"column:ade;not null" json:"reference_code"`
	ClientID      string              `gorm:"column:cpf;not null;index" json:"client_id"`
	Date          string              `gorm:"column:data;not null" json:"date"`
	Partner       string              `gorm:"column:parceiro;not null" json:"partner"`
	ProductType   string              `gorm:"column:tipo_produto" json:"product_type"`
	Value         decimal.NullDecimal `gorm:"column:valor;type:text" json:"value"`
	Bank          string              `gorm:"column:banco;not null" json:"bank"`
}

// TableName specifies the table name for Proposal
func (Proposal) TableName() string {
	return "propostas"
}

// ValueOrZero returns the monetary value, or zero when it is absent
func (p *Proposal) ValueOrZero() decimal.Decimal {
	if !p.Value.Valid {
		return decimal.Zero
	}
	return p.Value.Decimal
}

// ParsedDate parses Date with DateLayout
func (p *Proposal) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, p.Date)
}

// Snapshot renders every field as key=value pairs for the audit log
func (p *Proposal) Snapshot() string {
	value := "None"
	if p.Value.Valid {
		value = p.Value.Decimal.String()
	}
	return fmt.Sprintf(
		"digitador=%s, ade=%s, cpf=%s, data=%s, parceiro=%s, tipo_produto=%s, valor=%s, banco=%s",
		p.Operator, p.ReferenceCode, p.ClientID, p.Date, p.Partner, p.ProductType, value, p.Bank,
	)
}

// ParseAmount parses a user-typed monetary amount. Empty input means no value.
// When the input contains a comma it is read in the Brazilian format
// ("1.500,00"); otherwise the dot is the decimal separator ("1500.00").
func ParseAmount(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("valor inválido %q", s)
	}
	return decimal.NewNullDecimal(d), nil
}
