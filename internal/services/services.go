package services

import (
	"github.com/sjperalta/propostas-api/internal/config"
	"github.com/sjperalta/propostas-api/internal/reporting"
	"github.com/sjperalta/propostas-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth     *AuthService
	User     *UserService
	Proposal *ProposalService
	Catalog  *CatalogService
	Audit    *AuditService
	Report   *ReportService
	Export   *ExportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit)
	catalogSvc := NewCatalogService(repos.Partner, repos.Bank)

	scopes := Scopes{
		Dashboard:    reporting.Scope(cfg.DashboardScope),
		Consultation: reporting.Scope(cfg.ReportsScope),
		Performance:  reporting.Scope(cfg.PerformanceScope),
	}

	return &Services{
		Auth:     NewAuthService(repos.User, cfg),
		User:     NewUserService(repos.User, cfg.AdminLogin),
		Proposal: NewProposalService(repos.Proposal, catalogSvc, auditSvc),
		Catalog:  catalogSvc,
		Audit:    auditSvc,
		Report:   NewReportService(repos.Proposal, scopes),
		Export:   NewExportService(),
	}
}
