package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billkit/internal/csvexport"
	"billkit/internal/domain"
	"billkit/internal/port"
	"billkit/internal/service"
)

// VerificationHandler handles document verification endpoints.
type VerificationHandler struct {
	verificationService service.VerificationService
}

// NewVerificationHandler creates a new VerificationHandler.
func NewVerificationHandler(verificationService service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// Verify handles POST /api/v1/verifications
// @Summary Verify a document
// @Description Recompute the totals of a submitted invoice, bill or quotation and check them against the client's claims
// @Tags verifications
// @Accept json
// @Produce json
// @Param kind query string false "Document kind (invoice, bill, quotation); overrides the payload's kind"
// @Param request body VerifyDocumentRequest true "Document payload as produced by the billing forms"
// @Success 201 {object} Response{data=service.VerifyResult} "Verification recorded"
// @Failure 400 {object} ErrorResponseBody "Invalid payload or kind"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "Payload too large"
// @Security BearerAuth
// @Router /api/v1/verifications [post]
func (h *VerificationHandler) Verify(c *gin.Context) {
	session, ok := extractSession(c)
	if !ok {
		return
	}

	var kind domain.DocumentKind
	if q := c.Query("kind"); q != "" {
		k, err := domain.ParseDocumentKind(q)
		if err != nil {
			HandleError(c, err)
			return
		}
		kind = k
	}

	body, err := c.GetRawData()
	if err != nil {
		HandleError(c, err)
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body is required")
		return
	}

	result, err := h.verificationService.Verify(c.Request.Context(), service.VerifyInput{
		TenantID: session.TenantID,
		UserID:   session.UserID,
		Kind:     kind,
		Body:     body,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/verifications
// @Summary List verifications
// @Description List verification records, newest first
// @Tags verifications
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Param kind query string false "Filter by document kind"
// @Param status query string false "Filter by status (valid, warning, invalid)"
// @Success 200 {object} Response{data=[]domain.Verification,meta=PagMeta} "Verification records"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /api/v1/verifications [get]
func (h *VerificationHandler) List(c *gin.Context) {
	session, ok := extractSession(c)
	if !ok {
		return
	}

	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.verificationService.List(c.Request.Context(), session.TenantID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/verifications/:id
// @Summary Get verification by ID
// @Tags verifications
// @Produce json
// @Param id path string true "Verification ID (UUID)"
// @Success 200 {object} Response{data=domain.Verification} "Verification record"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Verification not found"
// @Security BearerAuth
// @Router /api/v1/verifications/{id} [get]
func (h *VerificationHandler) GetByID(c *gin.Context) {
	session, ok := extractSession(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid verification ID")
		return
	}

	v, err := h.verificationService.GetByID(c.Request.Context(), session.TenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, VerificationWithSnapshot{Verification: v, HasSnapshot: v.HasSnapshot()})
}

// Snapshot handles GET /api/v1/verifications/:id/snapshot
// @Summary Get snapshot URL
// @Description Get a presigned URL for the archived payload of a verification
// @Tags verifications
// @Produce json
// @Param id path string true "Verification ID (UUID)"
// @Success 200 {object} Response{data=SnapshotURLResponse} "Presigned URL"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Verification or snapshot not found"
// @Security BearerAuth
// @Router /api/v1/verifications/{id}/snapshot [get]
func (h *VerificationHandler) Snapshot(c *gin.Context) {
	session, ok := extractSession(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid verification ID")
		return
	}

	url, err := h.verificationService.GetSnapshotURL(c.Request.Context(), session.TenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, SnapshotURLResponse{URL: url})
}

// Export handles GET /api/v1/verifications/export
// @Summary Export verifications
// @Description Download verification records as CSV or XLSX (admin only)
// @Tags verifications
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Param kind query string false "Filter by document kind"
// @Param status query string false "Filter by status"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Invalid format or filter"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Admin role required"
// @Security BearerAuth
// @Router /api/v1/verifications/export [get]
func (h *VerificationHandler) Export(c *gin.Context) {
	session, ok := extractSession(c)
	if !ok {
		return
	}

	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatCSV)))
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		HandleError(c, domain.ErrUnsupportedExportFormat)
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	records, err := h.verificationService.ListForExport(c.Request.Context(), session.TenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if format == domain.ExportFormatXLSX {
		err = csvexport.WriteXLSX(&buf, records)
	} else {
		err = writeCSV(&buf, records)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("verifications", format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	contentType := format.ContentType()
	if format == domain.ExportFormatCSV {
		contentType += "; charset=utf-8"
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func writeCSV(buf *bytes.Buffer, records []domain.Verification) error {
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(buf)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteVerifications(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// parseFilter reads the kind and status query filters.
// Returns false if one is invalid (error response already written).
func parseFilter(c *gin.Context) (port.VerificationFilter, bool) {
	var filter port.VerificationFilter
	if q := c.Query("kind"); q != "" {
		kind, err := domain.ParseDocumentKind(q)
		if err != nil {
			HandleError(c, err)
			return filter, false
		}
		filter.Kind = kind
	}
	if q := c.Query("status"); q != "" {
		switch s := domain.ValidationStatus(q); s {
		case domain.ValidationStatusValid, domain.ValidationStatusWarning, domain.ValidationStatusInvalid:
			filter.Status = s
		default:
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status must be valid, warning or invalid")
			return filter, false
		}
	}
	return filter, true
}
