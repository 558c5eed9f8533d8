package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicash/pricing-service/internal/dto"
	"github.com/clinicash/pricing-service/internal/pricing"
	"github.com/clinicash/pricing-service/internal/service"
)

// Quotes without a merchant_id never touch the database, so the full
// handler path is testable in-process.
func setupQuoteRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	quoteService := service.NewQuoteService(pricing.NewEngine(), nil)
	quoteHandler := NewQuoteHandler(quoteService)

	router := gin.New()
	router.POST("/api/v1/quotes", quoteHandler.Create)
	return router
}

func postQuote(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/quotes", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestQuoteHandler_Pix(t *testing.T) {
	router := setupQuoteRouter()

	w := postQuote(t, router, gin.H{
		"gross_amount":   "500.00",
		"payment_method": "pix",
		"installments":   1,
		"sale_date":      "2024-01-10",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.QuoteID)
	assert.Equal(t, "pix", resp.PaymentMethod)
	assert.True(t, resp.NetAmount.Equal(decimal.RequireFromString("500.00")), "net %s", resp.NetAmount)
	assert.Zero(t, resp.MDRPercent)
	assert.Equal(t, "2024-01-10", resp.FirstReceivableDate)
	require.Len(t, resp.Installments, 1)
	assert.Equal(t, pricing.SourceNoMDRForMethod, resp.RuleSnapshot.Source)
}

func TestQuoteHandler_ParceladoWithoutConfig(t *testing.T) {
	router := setupQuoteRouter()

	w := postQuote(t, router, gin.H{
		"gross_amount":   "900.00",
		"payment_method": "cartão",
		"installments":   3,
		"sale_date":      "2024-01-10",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "parcelado", resp.PaymentMethod)
	assert.Equal(t, "no_fluxo", resp.SettlementMode)
	assert.Equal(t, pricing.SourceNoMDRConfig, resp.RuleSnapshot.Source)
	require.Len(t, resp.Installments, 3)
	assert.True(t, resp.Installments[0].GrossAmount.Equal(decimal.RequireFromString("300.00")))
	assert.Equal(t, 1, resp.Installments[0].RuleSnapshot.Installment)
	assert.Equal(t, 3, resp.Installments[0].RuleSnapshot.TotalInstallments)
}

func TestQuoteHandler_MalformedDateFallsBackToToday(t *testing.T) {
	router := setupQuoteRouter()

	w := postQuote(t, router, gin.H{
		"gross_amount":   "100.00",
		"payment_method": "pix",
		"sale_date":      "not-a-date",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.FirstReceivableDate, "prices against today instead of failing")
}

func TestQuoteHandler_MissingAmount(t *testing.T) {
	router := setupQuoteRouter()

	w := postQuote(t, router, gin.H{"payment_method": "pix"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
