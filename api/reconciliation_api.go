package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rmachado/concilia"
	apimodel "github.com/rmachado/concilia/api/model"
	"github.com/rmachado/concilia/config"
	"github.com/rmachado/concilia/internal/apierror"
	"github.com/rmachado/concilia/model"
)

// RunReconciliation runs a full reconciliation for one import batch and
// returns the finished report id plus its headline counts.
func (a Api) RunReconciliation(c *gin.Context) {
	var req apimodel.RunReconciliation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.ValidateRunReconciliation(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := a.concilia.Reconcile(c.Request.Context(), req.ToImportBatch(), req.FileNotes, req.BankNotes)
	if err != nil {
		logrus.Error(err)
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"report_id":       report.ReportID,
		"import_batch_id": report.ImportBatchID,
		"is_empty":        report.IsEmpty(),
		"divergent":       len(report.DivergentAssociates),
		"file_only":       len(report.FileOnlyNotes),
		"bank_only":       len(report.BankOnlyNotes),
		"warnings":        len(report.MalformedNotes) + len(report.DuplicateKeys),
	})
}

// GetReconciliation returns the whole frozen report.
func (a Api) GetReconciliation(c *gin.Context) {
	report, ok := a.loadReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCategorySummaries returns the summary table. Small, not paged.
func (a Api) GetCategorySummaries(c *gin.Context) {
	report, ok := a.loadReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report_id":          report.ReportID,
		"category_summaries": report.GetCategorySummaries(),
	})
}

// GetDivergentAssociates returns one page of divergence entries,
// optionally filtered by note number, associate code or name.
func (a Api) GetDivergentAssociates(c *gin.Context) {
	report, ok := a.loadReport(c)
	if !ok {
		return
	}
	page, pageSize, filter := pagingParams(c)
	entries, err := report.GetDivergentAssociates(page, pageSize, filter)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "page_size": pageSize, "entries": entries})
}

// GetFileOnlyNotes returns one page of extract-only notes.
func (a Api) GetFileOnlyNotes(c *gin.Context) {
	report, ok := a.loadReport(c)
	if !ok {
		return
	}
	page, pageSize, _ := pagingParams(c)
	notes, err := report.GetFileOnlyNotes(page, pageSize)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "page_size": pageSize, "notes": notes})
}

// GetBankOnlyNotes returns one page of billing-store-only notes.
func (a Api) GetBankOnlyNotes(c *gin.Context) {
	report, ok := a.loadReport(c)
	if !ok {
		return
	}
	page, pageSize, _ := pagingParams(c)
	notes, err := report.GetBankOnlyNotes(page, pageSize)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "page_size": pageSize, "notes": notes})
}

// ExportCSV streams the full report as CSV.
func (a Api) ExportCSV(c *gin.Context) {
	report, ok := a.loadReport(c)
	if !ok {
		return
	}
	exporter := concilia.NewCSVExporter()
	c.Header("Content-Type", exporter.ContentType())
	c.Header("Content-Disposition", `attachment; filename="`+report.ReportID+`.csv"`)
	if err := exporter.Export(c.Writer, report); err != nil {
		logrus.Error(err)
	}
}

func (a Api) loadReport(c *gin.Context) (*model.ReconciliationReport, bool) {
	reportID, passed := c.Params.Get("id")
	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report id is required. pass id in the route /reconciliations/:id"})
		return nil, false
	}
	report, err := a.concilia.GetReconciliation(c.Request.Context(), reportID)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return report, true
}

func pagingParams(c *gin.Context) (int, int, string) {
	conf, err := config.Fetch()
	defaultSize := config.DefaultPageSize
	if err == nil {
		defaultSize = conf.Reconciliation.DefaultPageSize
	}

	page := 0
	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}
	pageSize := defaultSize
	if raw := c.Query("page_size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			pageSize = parsed
		}
	}
	return page, pageSize, c.Query("filter")
}
