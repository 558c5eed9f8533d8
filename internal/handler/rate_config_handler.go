package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicash/pricing-service/internal/dto"
	"github.com/clinicash/pricing-service/internal/model"
	"github.com/clinicash/pricing-service/internal/service"
)

type RateConfigHandler struct {
	svc *service.RateConfigService
}

func NewRateConfigHandler(svc *service.RateConfigService) *RateConfigHandler {
	return &RateConfigHandler{svc: svc}
}

func (h *RateConfigHandler) Upsert(c *gin.Context) {
	merchantID := c.Param("merchantID")

	var req dto.UpsertRateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	cfg, err := h.svc.Upsert(c.Request.Context(), merchantID, &req)
	if err != nil {
		if service.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, toRateConfigResponse(cfg))
}

func (h *RateConfigHandler) Get(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context(), c.Param("merchantID"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toRateConfigResponse(cfg))
}

func toRateConfigResponse(cfg *model.RateConfiguration) dto.RateConfigResponse {
	return dto.RateConfigResponse{
		ID:             cfg.ID,
		MerchantID:     cfg.MerchantID,
		SettlementMode: cfg.SettlementMode,
		CardBrands:     cfg.CardBrands,
		Rates:          cfg.Rates,
		CreatedAt:      cfg.CreatedAt,
		UpdatedAt:      cfg.UpdatedAt,
	}
}
