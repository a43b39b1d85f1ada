package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billkit/internal/config"
	"billkit/internal/domain"
	"billkit/internal/handler"
	"billkit/internal/service"
	"billkit/mocks"
)

func TestTotalsHandler_Compute(t *testing.T) {
	h := handler.NewTotalsHandler(service.NewTotalsService(config.TaxConfig{RatePercent: 18, SupplierState: "Uttarakhand"}))

	c, w := newContext(http.MethodPost, "/api/v1/totals", strings.NewReader(`{
		"placeOfSupply": "Delhi",
		"items": [{"id": "1", "description": "Logo", "quantity": 1, "unitRate": 10000, "amount": 5}]
	}`))

	h.Compute(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"success": true,
		"data": {
			"kind": "invoice",
			"intraState": false,
			"ratePercent": 18,
			"items": [{"id": "1", "description": "Logo", "quantity": 1, "unitRate": 10000, "amount": 10000}],
			"totals": {"subtotal": 10000, "cgst": 0, "sgst": 0, "igst": 1800, "grandTotal": 11800},
			"amountInWords": "Eleven Thousand Eight Hundred Rupees Only",
			"formatted": {"subtotal": "₹10,000.00", "cgst": "₹0.00", "sgst": "₹0.00", "igst": "₹1,800.00", "grandTotal": "₹11,800.00"}
		}
	}`, w.Body.String())
}

func TestTotalsHandler_Compute_CoercesInvalidNumbers(t *testing.T) {
	h := handler.NewTotalsHandler(service.NewTotalsService(config.TaxConfig{RatePercent: 18, SupplierState: "Uttarakhand"}))

	c, w := newContext(http.MethodPost, "/api/v1/totals", strings.NewReader(`{
		"placeOfSupply": "Uttarakhand",
		"items": [
			{"id": "a", "quantity": "abc", "unitRate": 100},
			{"id": "b", "quantity": "2", "unitRate": "100"},
			{"id": "c", "quantity": -3, "unitRate": 100},
			{"id": "d", "quantity": true, "unitRate": {"x": 1}}
		]
	}`))

	h.Compute(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, map[string]interface{}{
		"subtotal": float64(200), "cgst": float64(18), "sgst": float64(18), "igst": float64(0), "grandTotal": float64(236),
	}, data["totals"])
	items := data["items"].([]interface{})
	assert.Len(t, items, 4)
	assert.Equal(t, float64(0), items[0].(map[string]interface{})["amount"])
	assert.Equal(t, float64(200), items[1].(map[string]interface{})["amount"])
	assert.Equal(t, float64(0), items[2].(map[string]interface{})["quantity"])
}

func TestTotalsHandler_Compute_HugeQuantity(t *testing.T) {
	h := handler.NewTotalsHandler(service.NewTotalsService(config.TaxConfig{RatePercent: 18, SupplierState: "Uttarakhand"}))

	c, w := newContext(http.MethodPost, "/api/v1/totals", strings.NewReader(`{
		"items": [{"id": "1", "quantity": 9223372036854775808, "unitRate": 1}]
	}`))

	assert.NotPanics(t, func() { h.Compute(c) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rupees Only")
}

func TestTotalsHandler_Compute_BadJSON(t *testing.T) {
	h := handler.NewTotalsHandler(new(mocks.MockTotalsService))

	c, w := newContext(http.MethodPost, "/api/v1/totals", strings.NewReader(`{"items": "nope"`))
	h.Compute(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeResponse(t, w).Error.Code)
}

func TestTotalsHandler_Compute_UnknownKind(t *testing.T) {
	svc := new(mocks.MockTotalsService)
	svc.On("Compute", mock.Anything).Return(nil, domain.ErrUnsupportedKind)
	h := handler.NewTotalsHandler(svc)

	c, w := newContext(http.MethodPost, "/api/v1/totals", strings.NewReader(`{"kind": "receipt"}`))
	h.Compute(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_KIND", decodeResponse(t, w).Error.Code)
}

func TestTotalsHandler_Words(t *testing.T) {
	svc := new(mocks.MockTotalsService)
	svc.On("Words", "19470").Return(&service.WordsResult{
		Amount:        19470,
		AmountInWords: "Nineteen Thousand Four Hundred Seventy Rupees Only",
		Formatted:     "₹19,470.00",
	}, nil)
	h := handler.NewTotalsHandler(svc)

	c, w := newContext(http.MethodGet, "/api/v1/totals/words?amount=19470", nil)
	h.Words(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nineteen Thousand Four Hundred Seventy Rupees Only")
	svc.AssertExpectations(t)
}

func TestTotalsHandler_Words_Errors(t *testing.T) {
	svc := new(mocks.MockTotalsService)
	svc.On("Words", "-1").Return(nil, domain.ErrInvalidAmount)
	h := handler.NewTotalsHandler(svc)

	c, w := newContext(http.MethodGet, "/api/v1/totals/words", nil)
	h.Words(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeResponse(t, w).Error.Code)

	c, w = newContext(http.MethodGet, "/api/v1/totals/words?amount=-1", nil)
	h.Words(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_AMOUNT", decodeResponse(t, w).Error.Code)
}
