package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicash/pricing-service/internal/dto"
	"github.com/clinicash/pricing-service/internal/pricing"
	"github.com/clinicash/pricing-service/internal/service"
)

type QuoteHandler struct {
	svc *service.QuoteService
}

func NewQuoteHandler(svc *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{svc: svc}
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	result, err := h.svc.Quote(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(uuid.NewString(), req.MerchantID, result))
}

func toQuoteResponse(quoteID, merchantID string, result pricing.Result) dto.QuoteResponse {
	installments := make([]dto.InstallmentResponse, len(result.Installments))
	for i, inst := range result.Installments {
		installments[i] = dto.InstallmentResponse{
			Number:       inst.Number,
			Total:        inst.Total,
			GrossAmount:  inst.GrossAmount,
			NetAmount:    inst.NetAmount,
			DueDate:      inst.ReceivableDate.Format("2006-01-02"),
			RuleSnapshot: inst.Snapshot,
		}
	}

	return dto.QuoteResponse{
		QuoteID:             quoteID,
		MerchantID:          merchantID,
		PaymentMethod:       result.PaymentMethod,
		GrossAmount:         result.GrossAmount,
		NetAmount:           result.NetAmount,
		MDRPercent:          result.MDRPercent,
		SettlementMode:      string(result.SettlementMode),
		FirstReceivableDate: result.FirstReceivableDate.Format("2006-01-02"),
		RuleSnapshot:        result.Snapshot,
		Installments:        installments,
	}
}
