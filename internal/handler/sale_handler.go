package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicash/pricing-service/internal/dto"
	"github.com/clinicash/pricing-service/internal/service"
)

type SaleHandler struct {
	svc *service.SaleService
}

func NewSaleHandler(svc *service.SaleService) *SaleHandler {
	return &SaleHandler{svc: svc}
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	sale, receivables, result, err := h.svc.CreateSale(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	recs := make([]dto.ReceivableResponse, len(receivables))
	for i, rec := range receivables {
		recs[i] = dto.ReceivableResponse{
			ID:                rec.ID,
			SaleID:            rec.SaleID,
			MerchantID:        rec.MerchantID,
			InstallmentNumber: rec.InstallmentNumber,
			TotalInstallments: rec.TotalInstallments,
			GrossAmount:       rec.GrossAmount,
			NetAmount:         rec.NetAmount,
			DueDate:           rec.DueDate.Format("2006-01-02"),
		}
	}

	c.JSON(http.StatusCreated, dto.SaleResponse{
		ID:             sale.ID,
		MerchantID:     sale.MerchantID,
		PaymentMethod:  sale.PaymentMethod,
		GrossAmount:    sale.GrossAmount,
		NetAmount:      sale.NetAmount,
		MDRPercent:     sale.MDRPercent,
		SettlementMode: sale.SettlementMode,
		SaleDate:       sale.SaleDate.Format("2006-01-02"),
		RuleSnapshot:   result.Snapshot,
		Receivables:    recs,
		CreatedAt:      sale.CreatedAt,
	})
}
