package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billkit/internal/service"
)

// TotalsHandler exposes the totals engine.
type TotalsHandler struct {
	totalsService service.TotalsService
}

// NewTotalsHandler creates a new TotalsHandler.
func NewTotalsHandler(totalsService service.TotalsService) *TotalsHandler {
	return &TotalsHandler{totalsService: totalsService}
}

// Compute handles POST /api/v1/totals
// @Summary Compute totals
// @Description Compute line amounts, GST split, grand total and amount in words for line items
// @Tags totals
// @Accept json
// @Produce json
// @Param request body ComputeTotalsRequest true "Line items and jurisdiction"
// @Success 200 {object} Response{data=service.TotalsResult} "Computed totals"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /api/v1/totals [post]
func (h *TotalsHandler) Compute(c *gin.Context) {
	var req service.ComputeTotalsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must be JSON with items, placeOfSupply and optional kind")
		return
	}

	result, err := h.totalsService.Compute(req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Words handles GET /api/v1/totals/words
// @Summary Amount in words
// @Description Render an amount in Indian-numbering words and INR currency format
// @Tags totals
// @Produce json
// @Param amount query string true "Non-negative amount" example(19470)
// @Success 200 {object} Response{data=service.WordsResult} "Rendered amount"
// @Failure 400 {object} ErrorResponseBody "Invalid amount"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /api/v1/totals/words [get]
func (h *TotalsHandler) Words(c *gin.Context) {
	amount, ok := c.GetQuery("amount")
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "amount query parameter is required")
		return
	}

	result, err := h.totalsService.Words(amount)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
