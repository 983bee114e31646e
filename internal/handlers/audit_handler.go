package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/propostas-api/internal/middleware"
	"github.com/sjperalta/propostas-api/internal/repository"
	"github.com/sjperalta/propostas-api/internal/services"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List audit entries
// @Description Proposal audit log, newest first
// @Tags Audits
// @Produce json
// @Param action query string false "CREATE, UPDATE or DELETE"
// @Param login query string false "Login contains"
// @Param proposal_id query string false "Proposal id contains"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := repository.AuditQuery{
		Action:     strings.ToUpper(c.Query("action")),
		Login:      c.Query("login"),
		ProposalID: c.Query("proposal_id"),
	}
	logs, err := h.auditService.List(c.Request.Context(), middleware.GetIdentity(c), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audits": logs, "total": len(logs)})
}
