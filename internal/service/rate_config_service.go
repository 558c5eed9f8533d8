package service

import (
	"context"
	"fmt"

	"github.com/clinicash/pricing-service/internal/dto"
	"github.com/clinicash/pricing-service/internal/model"
	"github.com/clinicash/pricing-service/internal/pricing"
	"github.com/clinicash/pricing-service/internal/repository"
)

type RateConfigService struct {
	repo *repository.RateConfigRepository
}

func NewRateConfigService(repo *repository.RateConfigRepository) *RateConfigService {
	return &RateConfigService{repo: repo}
}

type validationErr struct {
	field   string
	message string
}

func (e *validationErr) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

func (s *RateConfigService) Upsert(ctx context.Context, merchantID string, req *dto.UpsertRateConfigRequest) (*model.RateConfiguration, error) {
	table := pricing.RateTable{
		SettlementMode:    pricing.SettlementMode(req.SettlementMode),
		CardBrands:        req.CardBrands,
		SalesTypeRates:    req.SalesTypeRates,
		InstallmentRanges: req.InstallmentRanges,
		InstallmentExact:  req.InstallmentExact,
	}

	if err := validateTable(&table); err != nil {
		return nil, err
	}

	cfg := &model.RateConfiguration{
		MerchantID:     merchantID,
		SettlementMode: req.SettlementMode,
		CardBrands:     req.CardBrands,
		Rates:          table,
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *RateConfigService) Get(ctx context.Context, merchantID string) (*model.RateConfiguration, error) {
	return s.repo.FindByMerchant(ctx, merchantID)
}

func validateTable(table *pricing.RateTable) error {
	if !table.SettlementMode.Valid() {
		return &validationErr{field: "settlement_mode", message: fmt.Sprintf("unknown settlement mode %q", table.SettlementMode)}
	}

	check := func(field string, v *pricing.RateValue) error {
		if v == nil {
			return nil
		}
		if v.Flat != nil && (*v.Flat < 0 || *v.Flat > 100) {
			return &validationErr{field: field, message: fmt.Sprintf("percentage %.4f out of range 0-100", *v.Flat)}
		}
		for brand, pct := range v.ByBrand {
			if pct < 0 || pct > 100 {
				return &validationErr{field: field, message: fmt.Sprintf("percentage %.4f for brand %q out of range 0-100", pct, brand)}
			}
		}
		return nil
	}

	if table.SalesTypeRates != nil {
		if err := check("sales_type_rates.debito", table.SalesTypeRates.Debito); err != nil {
			return err
		}
		if err := check("sales_type_rates.credito_avista", table.SalesTypeRates.CreditoAvista); err != nil {
			return err
		}
	}
	for key := range table.InstallmentRanges {
		v := table.InstallmentRanges[key]
		if err := check("installment_ranges."+key, &v); err != nil {
			return err
		}
	}
	for key := range table.InstallmentExact {
		v := table.InstallmentExact[key]
		if err := check("installment_exact_rates."+key, &v); err != nil {
			return err
		}
	}
	return nil
}

// IsValidationError reports whether err is a request-shape problem as
// opposed to an infrastructure failure.
func IsValidationError(err error) bool {
	_, ok := err.(*validationErr)
	return ok
}
