package service

import (
	"context"
	"fmt"

	"github.com/clinicash/pricing-service/internal/dto"
	"github.com/clinicash/pricing-service/internal/model"
	"github.com/clinicash/pricing-service/internal/pricing"
	"github.com/clinicash/pricing-service/internal/repository"
)

type SaleService struct {
	quotes   *QuoteService
	saleRepo *repository.SaleRepository
}

func NewSaleService(quotes *QuoteService, saleRepo *repository.SaleRepository) *SaleService {
	return &SaleService{quotes: quotes, saleRepo: saleRepo}
}

// CreateSale prices the sale and persists it together with one
// receivable row per installment.
func (s *SaleService) CreateSale(ctx context.Context, req *dto.CreateSaleRequest) (*model.Sale, []*model.Receivable, pricing.Result, error) {
	result, err := s.quotes.Quote(ctx, &dto.QuoteRequest{
		MerchantID:    req.MerchantID,
		GrossAmount:   req.GrossAmount,
		PaymentMethod: req.PaymentMethod,
		Installments:  req.Installments,
		CardBrand:     req.CardBrand,
		SaleDate:      req.SaleDate,
	})
	if err != nil {
		return nil, nil, pricing.Result{}, fmt.Errorf("price sale: %w", err)
	}

	installments := req.Installments
	if installments < 1 {
		installments = 1
	}

	sale := &model.Sale{
		MerchantID:     req.MerchantID,
		GrossAmount:    result.GrossAmount,
		NetAmount:      result.NetAmount,
		MDRPercent:     result.MDRPercent,
		PaymentMethod:  result.PaymentMethod,
		Installments:   installments,
		CardBrand:      result.Snapshot.Brand,
		SaleDate:       parseSaleDate(req.SaleDate),
		SettlementMode: string(result.SettlementMode),
		RuleSource:     result.Snapshot.Source,
		UsedAverage:    result.Snapshot.UsedAverage,
	}

	receivables := make([]*model.Receivable, len(result.Installments))
	for i, inst := range result.Installments {
		receivables[i] = &model.Receivable{
			MerchantID:        req.MerchantID,
			InstallmentNumber: inst.Number,
			TotalInstallments: inst.Total,
			GrossAmount:       inst.GrossAmount,
			NetAmount:         inst.NetAmount,
			DueDate:           inst.ReceivableDate,
		}
	}

	if err := s.saleRepo.InsertWithReceivables(ctx, sale, receivables); err != nil {
		return nil, nil, pricing.Result{}, err
	}
	return sale, receivables, result, nil
}
