package models

import (
	"time"
)

// Audit actions recorded for proposals
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// ProposalLog is an append-only audit entry for a proposal mutation.
// ProposalID is kept after the proposal is deleted, so it carries no foreign key.
type ProposalLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProposalID *uint     `gorm:"column:proposta_id;index" json:"proposal_id"`
	Action     string    `gorm:"column:acao;size:10;not null" json:"action"`
	Login      string    `gorm:"column:usuario;not null" json:"login"`
	Timestamp  time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
	Details    string    `gorm:"column:detalhes;type:text" json:"details"`
}

// TableName specifies the table name for ProposalLog
func (ProposalLog) TableName() string {
	return "log_propostas"
}
