package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/propostas-api/internal/models"
	"github.com/sjperalta/propostas-api/internal/reporting"
	"github.com/sjperalta/propostas-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, exportService: exportService}
}

// parseFilters reads the report predicates and the scope override from the
// query string. It answers 400 and returns false on malformed input.
func (h *ReportHandler) parseFilters(c *gin.Context) (reporting.Filter, reporting.Scope, bool) {
	f := reporting.Filter{
		Operator:      c.Query("operator"),
		ClientID:      c.Query("client_id"),
		ReferenceCode: c.Query("reference_code"),
		ID:            c.Query("id"),
		Partner:       c.Query("partner"),
		Bank:          c.Query("bank"),
		ProductType:   c.Query("product_type"),
	}
	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		raw := c.Query(bound.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("parâmetro %s deve estar no formato AAAA-MM-DD", bound.name)})
			return f, "", false
		}
		*bound.dst = &t
	}

	scope, err := reporting.ParseScope(c.Query("scope"), "")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return f, "", false
	}
	return f, scope, true
}

// @Summary Dashboard
// @Description Totals and breakdowns of counted value
// @Tags Reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param operator query string false "Operator contains"
// @Param partner query string false "Partner"
// @Param bank query string false "Bank"
// @Param product_type query string false "Product type"
// @Param scope query string false "global or filtered"
// @Success 200 {object} services.Dashboard
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	f, scope, ok := h.parseFilters(c)
	if !ok {
		return
	}
	dash, err := h.reportService.Dashboard(c.Request.Context(), f, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// @Summary Consultation
// @Description Filtered proposals with their counted value
// @Tags Reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param id query string false "Id contains"
// @Param operator query string false "Operator contains"
// @Param client_id query string false "CPF contains"
// @Param reference_code query string false "ADE contains"
// @Param partner query string false "Partner"
// @Param bank query string false "Bank"
// @Param product_type query string false "Product type"
// @Param scope query string false "global or filtered"
// @Success 200 {object} services.Consultation
// @Security BearerAuth
// @Router /reports/consultation [get]
func (h *ReportHandler) Consultation(c *gin.Context) {
	f, scope, ok := h.parseFilters(c)
	if !ok {
		return
	}
	report, err := h.reportService.Consultation(c.Request.Context(), f, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Operator performance
// @Tags Reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param scope query string false "global or filtered"
// @Success 200 {object} services.Performance
// @Security BearerAuth
// @Router /reports/performance [get]
func (h *ReportHandler) Performance(c *gin.Context) {
	f, scope, ok := h.parseFilters(c)
	if !ok {
		return
	}
	report, err := h.reportService.Performance(c.Request.Context(), f, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Filter options
// @Description Distinct operators, partners and banks present in the table
// @Tags Reports
// @Produce json
// @Success 200 {object} services.FilterOptions
// @Security BearerAuth
// @Router /reports/options [get]
func (h *ReportHandler) Options(c *gin.Context) {
	opts, err := h.reportService.Options(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// @Summary Export consultation
// @Description Downloads the consultation rows as xlsx or csv
// @Tags Reports
// @Produce octet-stream
// @Param format query string false "xlsx (default) or csv"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /reports/consultation/export [get]
func (h *ReportHandler) ExportConsultation(c *gin.Context) {
	f, scope, ok := h.parseFilters(c)
	if !ok {
		return
	}
	report, err := h.reportService.Consultation(c.Request.Context(), f, scope)
	if err != nil {
		respondError(c, err)
		return
	}

	var (
		data        []byte
		filename    string
		contentType string
	)
	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		data, filename, err = h.exportService.ExportXLSX(report.Rows)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		data, filename, err = h.exportService.ExportCSV(report.Rows)
		contentType = "text/csv; charset=utf-8"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "formato deve ser xlsx ou csv"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// @Summary Export performance
// @Description Downloads the operator performance table as pdf
// @Tags Reports
// @Produce application/pdf
// @Success 200 {file} file
// @Security BearerAuth
// @Router /reports/performance/export [get]
func (h *ReportHandler) ExportPerformance(c *gin.Context) {
	f, scope, ok := h.parseFilters(c)
	if !ok {
		return
	}
	report, err := h.reportService.Performance(c.Request.Context(), f, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	data, filename, err := h.exportService.ExportPerformancePDF(report)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
