package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinicash/pricing-service/internal/pricing"
)

// RateConfiguration is a merchant's acquirer rate table as persisted.
// The Rates document is the same schema whether it came from the
// manual-entry form or from the OCR pipeline.
type RateConfiguration struct {
	ID             string            `json:"id"`
	MerchantID     string            `json:"merchant_id"`
	SettlementMode string            `json:"settlement_mode"`
	CardBrands     []string          `json:"card_brands,omitempty"`
	Rates          pricing.RateTable `json:"rates"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Sale is one priced sale with its resolved terms.
type Sale struct {
	ID             string          `json:"id"`
	MerchantID     string          `json:"merchant_id"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	MDRPercent     float64         `json:"mdr_percent"`
	PaymentMethod  string          `json:"payment_method"`
	Installments   int             `json:"installments"`
	CardBrand      string          `json:"card_brand,omitempty"`
	SaleDate       time.Time       `json:"sale_date"`
	SettlementMode string          `json:"settlement_mode"`
	RuleSource     string          `json:"rule_source"`
	UsedAverage    bool            `json:"used_average"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Receivable is one installment slice of a sale: the amount the
// merchant receives on one due date.
type Receivable struct {
	ID                string          `json:"id"`
	SaleID            string          `json:"sale_id"`
	MerchantID        string          `json:"merchant_id"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	GrossAmount       decimal.Decimal `json:"gross_amount"`
	NetAmount         decimal.Decimal `json:"net_amount"`
	DueDate           time.Time       `json:"due_date"`
	CreatedAt         time.Time       `json:"created_at"`
}
