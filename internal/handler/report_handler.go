package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/report"
	"storefront/internal/service"
	"storefront/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes binds the report endpoints. Both back-office roles can read reports.
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports", middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	{
		reports.GET("", h.GetCatalog)
		reports.GET("/:id", h.GetReport)
		reports.GET("/:id/export", h.ExportReport)
	}
}

// GetCatalog handles GET /api/reports
// @Summary      List available reports
// @Description  Returns the report catalog grouped by category, in registration order
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /api/reports [get]
func (h *ReportHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"data":    h.reportService.Catalog(),
	})
}

// GetReport handles GET /api/reports/:id
// @Summary      Run a report
// @Description  Computes the identified report over the requested date range. Accepts either a days preset or an explicit from/to pair (both inclusive, YYYY-MM-DD). Status and category narrow the dataset where the report supports them.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true   "Report ID, e.g. sales-by-day"
// @Param        days      query     int     false  "Look-back window in days (default 30, max 730)"
// @Param        from      query     string  false  "Start date YYYY-MM-DD (requires to)"
// @Param        to        query     string  false  "End date YYYY-MM-DD, inclusive (requires from)"
// @Param        status    query     string  false  "Order status filter"
// @Param        category  query     string  false  "Product category filter"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	id := c.Param("id")
	q := parseReportQuery(c)

	result, err := h.reportService.Get(c.Request.Context(), id, q)
	if err != nil {
		// An unknown id still renders: the dashboard gets an empty result instead
		// of an error page, and we keep a trace of the bad link.
		if errors.Is(err, report.ErrUnknownReport) {
			log.Printf("unknown report id %q requested", id)
			c.JSON(http.StatusOK, gin.H{"message": "success", "data": result})
			return
		}
		var dsErr *report.DataSourceError
		if errors.As(err, &dsErr) {
			log.Printf("report %s: loading %s failed: %v", id, dsErr.Source, dsErr.Err)
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to generate report"))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": result})
}

// ExportReport handles GET /api/reports/:id/export
// @Summary      Export a report as CSV
// @Description  Streams the report's table as a CSV attachment. The file name carries the report id and the export date.
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id        path      string  true   "Report ID"
// @Param        days      query     int     false  "Look-back window in days (default 30, max 730)"
// @Param        from      query     string  false  "Start date YYYY-MM-DD"
// @Param        to        query     string  false  "End date YYYY-MM-DD, inclusive"
// @Param        status    query     string  false  "Order status filter"
// @Param        category  query     string  false  "Product category filter"
// @Success      200       {string}  string  "CSV content"
// @Failure      404       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Router       /api/reports/{id}/export [get]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	id := c.Param("id")
	q := parseReportQuery(c)

	export, err := h.reportService.ExportCSV(c.Request.Context(), id, q)
	if err != nil {
		if errors.Is(err, report.ErrEmptyReport) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "No data available for this report in the selected date range"))
			return
		}
		if errors.Is(err, report.ErrUnknownReport) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Report not found"))
			return
		}
		var dsErr *report.DataSourceError
		if errors.As(err, &dsErr) {
			log.Printf("report %s export: loading %s failed: %v", id, dsErr.Source, dsErr.Err)
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to generate report"))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, "text/csv", []byte(export.Content))
}

func parseReportQuery(c *gin.Context) service.ReportQuery {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	return service.ReportQuery{
		Days:     days,
		From:     c.Query("from"),
		To:       c.Query("to"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
}
