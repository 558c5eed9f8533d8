package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicash/pricing-service/internal/model"
)

type SaleRepository struct {
	pool *pgxpool.Pool
}

func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

// InsertWithReceivables persists a sale and its per-installment
// receivable rows in one transaction, so a priced sale never lands
// without its schedule.
func (r *SaleRepository) InsertWithReceivables(ctx context.Context, sale *model.Sale, receivables []*model.Receivable) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin sale transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO sales (merchant_id, gross_amount, net_amount, mdr_percent, payment_method, installments, card_brand, sale_date, settlement_mode, rule_source, used_average)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		sale.MerchantID, sale.GrossAmount, sale.NetAmount, sale.MDRPercent,
		sale.PaymentMethod, sale.Installments, sale.CardBrand, sale.SaleDate,
		sale.SettlementMode, sale.RuleSource, sale.UsedAverage,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	batch := &pgx.Batch{}
	for _, rec := range receivables {
		rec.SaleID = sale.ID
		batch.Queue(
			`INSERT INTO receivables (sale_id, merchant_id, installment_number, total_installments, gross_amount, net_amount, due_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`,
			rec.SaleID, rec.MerchantID, rec.InstallmentNumber, rec.TotalInstallments,
			rec.GrossAmount, rec.NetAmount, rec.DueDate,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range receivables {
		if err := br.QueryRow().Scan(&receivables[i].ID, &receivables[i].CreatedAt); err != nil {
			br.Close()
			return fmt.Errorf("insert receivable %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close receivable batch: %w", err)
	}

	return tx.Commit(ctx)
}
