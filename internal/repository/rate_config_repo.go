package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicash/pricing-service/internal/model"
	"github.com/clinicash/pricing-service/internal/pricing"
)

type RateConfigRepository struct {
	pool *pgxpool.Pool
}

func NewRateConfigRepository(pool *pgxpool.Pool) *RateConfigRepository {
	return &RateConfigRepository{pool: pool}
}

// Upsert replaces a merchant's rate table. The full table is stored as
// JSONB; settlement mode and brands are denormalized for reporting.
func (r *RateConfigRepository) Upsert(ctx context.Context, cfg *model.RateConfiguration) error {
	rates, err := json.Marshal(cfg.Rates)
	if err != nil {
		return fmt.Errorf("marshal rate table: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO rate_configurations (merchant_id, settlement_mode, card_brands, rates)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (merchant_id) DO UPDATE
		SET settlement_mode = EXCLUDED.settlement_mode,
			card_brands = EXCLUDED.card_brands,
			rates = EXCLUDED.rates,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		cfg.MerchantID, cfg.SettlementMode, cfg.CardBrands, rates,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
}

func (r *RateConfigRepository) FindByMerchant(ctx context.Context, merchantID string) (*model.RateConfiguration, error) {
	cfg := &model.RateConfiguration{}
	var rates []byte

	err := r.pool.QueryRow(ctx,
		`SELECT id, merchant_id, settlement_mode, COALESCE(card_brands, '{}'), rates, created_at, updated_at
		FROM rate_configurations WHERE merchant_id = $1`, merchantID).
		Scan(&cfg.ID, &cfg.MerchantID, &cfg.SettlementMode, &cfg.CardBrands, &rates, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return nil, err
	}

	var table pricing.RateTable
	if err := json.Unmarshal(rates, &table); err != nil {
		return nil, fmt.Errorf("unmarshal rate table for %s: %w", merchantID, err)
	}
	cfg.Rates = table
	return cfg, nil
}
