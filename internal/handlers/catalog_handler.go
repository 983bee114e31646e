package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/propostas-api/internal/middleware"
	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/services"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func catalogKind(c *gin.Context) (models.CatalogKind, bool) {
	kind := models.CatalogKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "catálogo não encontrado"})
		return "", false
	}
	return kind, true
}

// @Summary Catalog options
// @Description Active descriptions in ascending order, for choice inputs
// @Tags Catalogs
// @Produce json
// @Param kind path string true "partners or banks"
// @Success 200 {object} map[string][]string
// @Security BearerAuth
// @Router /catalogs/{kind}/options [get]
func (h *CatalogHandler) Options(c *gin.Context) {
	kind, ok := catalogKind(c)
	if !ok {
		return
	}
	options, err := h.catalogService.ListSelectable(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

// @Summary List catalog entries
// @Tags Catalogs
// @Produce json
// @Param kind path string true "partners or banks"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /catalogs/{kind} [get]
func (h *CatalogHandler) Index(c *gin.Context) {
	kind, ok := catalogKind(c)
	if !ok {
		return
	}
	entries, err := h.catalogService.List(c.Request.Context(), middleware.GetIdentity(c), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

type CreateCatalogEntryRequest struct {
	Description string `json:"description"`
}

// @Summary Add catalog entry
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param kind path string true "partners or banks"
// @Param request body CreateCatalogEntryRequest true "Entry"
// @Success 201 {object} models.CatalogEntry
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /catalogs/{kind} [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	kind, ok := catalogKind(c)
	if !ok {
		return
	}
	var req CreateCatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}
	entry, err := h.catalogService.Add(c.Request.Context(), middleware.GetIdentity(c), kind, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// @Summary Activate or deactivate a catalog entry
// @Tags Catalogs
// @Accept json
// @Produce json
// @Param kind path string true "partners or banks"
// @Param entry_id path int true "Entry ID"
// @Param request body SetActiveRequest true "Active flag"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /catalogs/{kind}/{entry_id} [patch]
func (h *CatalogHandler) SetActive(c *gin.Context) {
	kind, ok := catalogKind(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "entry_id")
	if !ok {
		return
	}
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campo active é obrigatório"})
		return
	}
	if err := h.catalogService.SetActive(c.Request.Context(), middleware.GetIdentity(c), kind, id, *req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cadastro atualizado"})
}

// @Summary Delete catalog entry
// @Description Existing proposals keep the description
// @Tags Catalogs
// @Produce json
// @Param kind path string true "partners or banks"
// @Param entry_id path int true "Entry ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /catalogs/{kind}/{entry_id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	kind, ok := catalogKind(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "entry_id")
	if !ok {
		return
	}
	if err := h.catalogService.Remove(c.Request.Context(), middleware.GetIdentity(c), kind, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cadastro excluído"})
}
