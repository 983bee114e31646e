package models

// CatalogKind names one of the reference lists
type CatalogKind string

const (
	CatalogPartners CatalogKind = "partners"
	CatalogBanks    CatalogKind = "banks"
)

// Table returns the table backing the catalog, or "" for an unknown kind
func (k CatalogKind) Table() string {
	switch k {
	case CatalogPartners:
		return Partner{}.TableName()
	case CatalogBanks:
		return Bank{}.TableName()
	}
	return ""
}

// Valid reports whether k names a known catalog
func (k CatalogKind) Valid() bool {
	return k.Table() != ""
}

// Label is the user-facing name of the catalog
func (k CatalogKind) Label() string {
	if k == CatalogPartners {
		return "parceiro"
	}
	return "banco"
}

// CatalogEntry is a row of a reference list. Proposals reference entries by
// description, so deactivating or deleting an entry never touches them.
type CatalogEntry struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"column:descricao;uniqueIndex;not null" json:"description"`
	Active      bool   `gorm:"column:ativo;not null;default:true" json:"active"`
}

// Partner is an entry of the partner catalog
type Partner struct {
	CatalogEntry
}

// TableName specifies the table name for Partner
func (Partner) TableName() string {
	return "parceiros"
}

// Bank is an entry of the bank catalog
type Bank struct {
	CatalogEntry
}

// TableName specifies the table name for Bank
func (Bank) TableName() string {
	return "bancos"
}

// DefaultBanks seeds the bank catalog on first initialization
var DefaultBanks = []string{
	"C6 - DG",
	"DIGIO - BEVI",
	"DIGIO - DG (209271)",
	"DIGIO - AD PROM.(100154)",
	"BMG - DG 53991",
	"BMG - BEVI",
	"FACTA FINANCEIRA - DG",
	"OLE(ANTIGO) - DG",
	"OLE(FVE) - DG",
	"SANTANDER - DG",
	"CREFISA - DG",
	"CREFISA BOLSA FAMILIA - DG",
	"CREFISA BOLSA FAMILIA - ALCIF",
	"CIASPREV - INOPERANTE",
	"PAULISTA - INOPERANTE",
	"VEMCARD - INOPERANTE",
	"HAPPY - DG",
	"AMIGOZ - DG",
	"ITAU - DG",
	"BRB - ESTEIRA DIGITAL",
	"BRB - EVOLVE",
	"BRB - DG",
	"CREFAZ - DG",
	"SABEMI - BEVI",
	"QUERO+ - DG",
	"QUERO+ (RL) - DG",
	"MASTER - DG",
	"INCONTA - PORT",
	"INBURSA - PORT",
	"DAYCOVAL - BEVI",
	"BANRISUL - BEVI",
	"BANRISUL - DG",
	"SAFRA - BEVI",
	"SAFRA - DIRETO",
	"MEU CASHCARD",
	"KARDBANK - GFT",
	"ICRED - BEVI",
	"MERCANTIL - DG",
	"FINANTO - DIRETO",
	"PRESENÇA BANK - DG",
	"FUTURO PREVIDENCIA - DIRETO",
	"AKI CAPITAL (ALCIF CONVENIOS) - ALCIF",
	"PAN - DG",
	"PICPAY - DG",
	"PARANA - DG",
	"NBC BANK - DG",
	"PRATA - DG",
}
