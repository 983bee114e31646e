package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/propostas-api/internal/middleware"
)

// RegisterRoutes mounts every endpoint on the v1 group
func (h *Handlers) RegisterRoutes(v1 *gin.RouterGroup, verifier middleware.TokenVerifier) {
	// Public
	v1.GET("/health", h.Health.Index)
	v1.GET("/version", h.Health.Version)
	v1.POST("/auth/login", h.Auth.Login)

	// Protected routes (requires authentication)
	protected := v1.Group("")
	protected.Use(middleware.Auth(verifier))
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/me", h.Auth.Me)
		protected.PATCH("/me/password", h.User.ChangePassword)

		protected.GET("/proposals", h.Proposal.Index)
		protected.POST("/proposals", h.Proposal.Create)
		protected.GET("/proposals/:proposal_id", h.Proposal.Show)
		protected.PUT("/proposals/:proposal_id", h.Proposal.Update)
		protected.DELETE("/proposals/:proposal_id", h.Proposal.Delete)

		protected.GET("/catalogs/:kind/options", h.Catalog.Options)

		protected.GET("/reports/options", h.Report.Options)
		protected.GET("/reports/dashboard", h.Report.Dashboard)
		protected.GET("/reports/consultation", h.Report.Consultation)
		protected.GET("/reports/consultation/export", h.Report.ExportConsultation)
		protected.GET("/reports/performance", h.Report.Performance)
		protected.GET("/reports/performance/export", h.Report.ExportPerformance)

		// Admin-only routes
		admin := protected.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", h.User.Index)
			admin.POST("/users", h.User.Create)
			admin.DELETE("/users/:user_id", h.User.Delete)

			admin.GET("/audits", h.Audit.Index)

			admin.GET("/catalogs/:kind", h.Catalog.Index)
			admin.POST("/catalogs/:kind", h.Catalog.Create)
			admin.PATCH("/catalogs/:kind/:entry_id", h.Catalog.SetActive)
			admin.DELETE("/catalogs/:kind/:entry_id", h.Catalog.Delete)
		}
	}
}
