package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinicash/pricing-service/internal/pricing"
)

type RateConfigResponse struct {
	ID             string            `json:"id"`
	MerchantID     string            `json:"merchant_id"`
	SettlementMode string            `json:"settlement_mode"`
	CardBrands     []string          `json:"card_brands,omitempty"`
	Rates          pricing.RateTable `json:"rates"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type InstallmentResponse struct {
	Number       int                  `json:"number"`
	Total        int                  `json:"total"`
	GrossAmount  decimal.Decimal      `json:"gross_amount"`
	NetAmount    decimal.Decimal      `json:"net_amount"`
	DueDate      string               `json:"due_date"`
	RuleSnapshot pricing.RuleSnapshot `json:"rule_snapshot"`
}

type QuoteResponse struct {
	QuoteID             string                `json:"quote_id"`
	MerchantID          string                `json:"merchant_id,omitempty"`
	PaymentMethod       string                `json:"payment_method"`
	GrossAmount         decimal.Decimal       `json:"gross_amount"`
	NetAmount           decimal.Decimal       `json:"net_amount"`
	MDRPercent          float64               `json:"mdr_percent"`
	SettlementMode      string                `json:"settlement_mode"`
	FirstReceivableDate string                `json:"first_receivable_date"`
	RuleSnapshot        pricing.RuleSnapshot  `json:"rule_snapshot"`
	Installments        []InstallmentResponse `json:"installments"`
}

type ReceivableResponse struct {
	ID                string          `json:"id"`
	SaleID            string          `json:"sale_id"`
	MerchantID        string          `json:"merchant_id"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	GrossAmount       decimal.Decimal `json:"gross_amount"`
	NetAmount         decimal.Decimal `json:"net_amount"`
	DueDate           string          `json:"due_date"`
}

type SaleResponse struct {
	ID             string               `json:"id"`
	MerchantID     string               `json:"merchant_id"`
	PaymentMethod  string               `json:"payment_method"`
	GrossAmount    decimal.Decimal      `json:"gross_amount"`
	NetAmount      decimal.Decimal      `json:"net_amount"`
	MDRPercent     float64              `json:"mdr_percent"`
	SettlementMode string               `json:"settlement_mode"`
	SaleDate       string               `json:"sale_date"`
	RuleSnapshot   pricing.RuleSnapshot `json:"rule_snapshot"`
	Receivables    []ReceivableResponse `json:"receivables"`
	CreatedAt      time.Time            `json:"created_at"`
}

type ReceivablesSummary struct {
	Count      int             `json:"count"`
	GrossTotal decimal.Decimal `json:"gross_total"`
	NetTotal   decimal.Decimal `json:"net_total"`
}

type ReceivablesListResponse struct {
	Data       []ReceivableResponse `json:"data"`
	Summary    ReceivablesSummary   `json:"summary"`
	Pagination Pagination           `json:"pagination"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
