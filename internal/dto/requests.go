package dto

import (
	"github.com/shopspring/decimal"

	"github.com/clinicash/pricing-service/internal/pricing"
)

type UpsertRateConfigRequest struct {
	SettlementMode    string                       `json:"settlement_mode" binding:"required,oneof=automatic_d1 automatic_d30 no_fluxo"`
	CardBrands        []string                     `json:"card_brands"`
	SalesTypeRates    *pricing.SalesTypeRates      `json:"sales_type_rates"`
	InstallmentRanges map[string]pricing.RateValue `json:"installment_ranges"`
	InstallmentExact  map[string]pricing.RateValue `json:"installment_exact_rates"`
}

type QuoteRequest struct {
	MerchantID    string          `json:"merchant_id"`
	GrossAmount   decimal.Decimal `json:"gross_amount" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
	Installments  int             `json:"installments"`
	CardBrand     string          `json:"card_brand"`
	SaleDate      string          `json:"sale_date"`
}

type CreateSaleRequest struct {
	MerchantID    string          `json:"merchant_id" binding:"required"`
	GrossAmount   decimal.Decimal `json:"gross_amount" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
	Installments  int             `json:"installments"`
	CardBrand     string          `json:"card_brand"`
	SaleDate      string          `json:"sale_date"`
}
