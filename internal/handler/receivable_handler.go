package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicash/pricing-service/internal/dto"
	"github.com/clinicash/pricing-service/internal/service"
)

type ReceivableHandler struct {
	svc *service.ReceivableService
}

func NewReceivableHandler(svc *service.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{svc: svc}
}

func (h *ReceivableHandler) List(c *gin.Context) {
	merchantID := c.Query("merchant_id")
	if merchantID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: "merchant_id is required"})
		return
	}

	from, to := service.ParseWindow(c.Query("from"), c.Query("to"))
	page := dto.ParsePagination(c)

	rows, totalItems, summary, err := h.svc.ListWithSummary(
		c.Request.Context(), merchantID, from, to, page.PageSize, page.Offset)
	if err != nil {
		c.Error(err)
		return
	}

	data := make([]dto.ReceivableResponse, len(rows))
	for i, rec := range rows {
		data[i] = dto.ReceivableResponse{
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

	c.JSON(http.StatusOK, dto.ReceivablesListResponse{
		Data:       data,
		Summary:    summary,
		Pagination: dto.NewPagination(page.Page, page.PageSize, totalItems),
	})
}
