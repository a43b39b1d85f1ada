package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billkit/internal/service"
)

// CatalogHandler serves the SAC catalog.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles GET /api/v1/catalog/sac
// @Summary List SAC catalog
// @Description List service categories and their SAC codes
// @Tags catalog
// @Produce json
// @Success 200 {object} Response{data=[]domain.SACCode} "Catalog entries"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /api/v1/catalog/sac [get]
func (h *CatalogHandler) List(c *gin.Context) {
	RespondOK(c, h.catalogService.List(c.Request.Context()))
}

// Import handles PUT /api/v1/catalog/sac
// @Summary Import SAC catalog entries
// @Description Insert or replace catalog entries by category (admin only)
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body ImportSACRequest true "Catalog entries"
// @Success 200 {object} Response{data=ImportSACResponse} "Entries imported"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Admin role required"
// @Security BearerAuth
// @Router /api/v1/catalog/sac [put]
func (h *CatalogHandler) Import(c *gin.Context) {
	var req ImportSACRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "codes are required")
		return
	}

	n, err := h.catalogService.Import(c.Request.Context(), req.Codes)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ImportSACResponse{Imported: n})
}
