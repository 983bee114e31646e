package handlers

import (
	"github.com/sjperalta/propostas-api/internal/services"
	"github.com/sjperalta/propostas-api/internal/version"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	User     *UserHandler
	Proposal *ProposalHandler
	Catalog  *CatalogHandler
	Audit    *AuditHandler
	Report   *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, info version.Info) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(info),
		Auth:     NewAuthHandler(svcs.Auth),
		User:     NewUserHandler(svcs.User),
		Proposal: NewProposalHandler(svcs.Proposal),
		Catalog:  NewCatalogHandler(svcs.Catalog),
		Audit:    NewAuditHandler(svcs.Audit),
		Report:   NewReportHandler(svcs.Report, svcs.Export),
	}
}
