package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/propostas-api/internal/middleware"
	"github.com/sjperalta/propostas-api/internal/services"
)

type ProposalHandler struct {
	proposalService *services.ProposalService
}

func NewProposalHandler(proposalService *services.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

func (h *ProposalHandler) bind(c *gin.Context) (services.ProposalInput, bool) {
	var in services.ProposalInput
	if err := BindNestedOrFlat(c, "proposal", &in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido: " + err.Error()})
		return in, false
	}
	return in, true
}

// @Summary List Proposals
// @Description Every proposal, newest first
// @Tags Proposals
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /proposals [get]
func (h *ProposalHandler) Index(c *gin.Context) {
	proposals, err := h.proposalService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposals, "total": len(proposals)})
}

// @Summary Get Proposal
// @Tags Proposals
// @Produce json
// @Param proposal_id path int true "Proposal ID"
// @Success 200 {object} models.Proposal
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /proposals/{proposal_id} [get]
func (h *ProposalHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "proposal_id")
	if !ok {
		return
	}
	proposal, err := h.proposalService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// @Summary Create Proposal
// @Tags Proposals
// @Accept json
// @Produce json
// @Param request body services.ProposalInput true "Proposal Data"
// @Success 201 {object} services.MutationResult
// @Failure 422 {object} map[string]interface{}
// @Security BearerAuth
// @Router /proposals [post]
func (h *ProposalHandler) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.proposalService.Create(c.Request.Context(), middleware.GetIdentity(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// @Summary Update Proposal
// @Description Overwrites every field of the proposal
// @Tags Proposals
// @Accept json
// @Produce json
// @Param proposal_id path int true "Proposal ID"
// @Param request body services.ProposalInput true "Proposal Data"
// @Success 200 {object} services.MutationResult
// @Security BearerAuth
// @Router /proposals/{proposal_id} [put]
func (h *ProposalHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "proposal_id")
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}
	result, err := h.proposalService.Update(c.Request.Context(), middleware.GetIdentity(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Delete Proposal
// @Tags Proposals
// @Produce json
// @Param proposal_id path int true "Proposal ID"
// @Success 200 {object} services.MutationResult
// @Security BearerAuth
// @Router /proposals/{proposal_id} [delete]
func (h *ProposalHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "proposal_id")
	if !ok {
		return
	}
	result, err := h.proposalService.Delete(c.Request.Context(), middleware.GetIdentity(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
