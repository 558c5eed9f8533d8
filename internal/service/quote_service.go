package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/clinicash/pricing-service/internal/dto"
	"github.com/clinicash/pricing-service/internal/pricing"
	"github.com/clinicash/pricing-service/internal/repository"
)

type QuoteService struct {
	engine   *pricing.Engine
	rateRepo *repository.RateConfigRepository
}

func NewQuoteService(engine *pricing.Engine, rateRepo *repository.RateConfigRepository) *QuoteService {
	return &QuoteService{engine: engine, rateRepo: rateRepo}
}

// Quote prices a sale without persisting anything. A merchant without
// a rate configuration is priced configless; the snapshot records the
// degraded source so the caller can tell the difference.
func (s *QuoteService) Quote(ctx context.Context, req *dto.QuoteRequest) (pricing.Result, error) {
	table, err := s.loadTable(ctx, req.MerchantID)
	if err != nil {
		return pricing.Result{}, err
	}

	result := s.engine.Price(pricing.SaleRequest{
		GrossAmount:      req.GrossAmount,
		PaymentMethodRaw: req.PaymentMethod,
		Installments:     req.Installments,
		CardBrand:        req.CardBrand,
		SaleDate:         parseSaleDate(req.SaleDate),
	}, table)

	return result, nil
}

func (s *QuoteService) loadTable(ctx context.Context, merchantID string) (*pricing.RateTable, error) {
	if merchantID == "" || s.rateRepo == nil {
		return nil, nil
	}
	cfg, err := s.rateRepo.FindByMerchant(ctx, merchantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg.Rates, nil
}

// parseSaleDate accepts ISO dates and full RFC3339 timestamps.
// Anything unparseable falls back to today: availability over
// strictness, a sale must always price.
func parseSaleDate(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d
	}
	log.Warn().Str("sale_date", s).Msg("unparseable sale date, using today")
	return time.Now()
}
