package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// SeedData inserts a demo merchant with a typical maquininha rate
// table so a fresh instance can answer quotes immediately.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM rate_configurations`).Scan(&count); err != nil {
		return fmt.Errorf("check existing rate configurations: %w", err)
	}
	if count > 0 {
		log.Info().Msg("rate configurations already present, skipping seed")
		return nil
	}

	rates := `{
		"settlement_mode": "no_fluxo",
		"card_brands": ["visa", "mastercard", "elo"],
		"sales_type_rates": {
			"debito": 1.99,
			"credito_avista": {"visa": 3.19, "mastercard": 3.19, "elo": 3.79}
		},
		"installment_ranges": {
			"2-6": 4.59,
			"7-12": 5.59
		},
		"installment_exact_rates": {
			"3": 4.39
		}
	}`

	_, err := pool.Exec(ctx,
		`INSERT INTO rate_configurations (merchant_id, settlement_mode, card_brands, rates)
		VALUES ($1, $2, $3, $4::jsonb)
		ON CONFLICT (merchant_id) DO NOTHING`,
		"demo-clinic", "no_fluxo", []string{"visa", "mastercard", "elo"}, rates)
	if err != nil {
		return fmt.Errorf("insert demo rate configuration: %w", err)
	}

	log.Info().Str("merchant_id", "demo-clinic").Msg("seeded demo rate configuration")
	return nil
}
