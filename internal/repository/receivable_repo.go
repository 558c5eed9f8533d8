package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/clinicash/pricing-service/internal/model"
)

type ReceivableRepository struct {
	pool *pgxpool.Pool
}

func NewReceivableRepository(pool *pgxpool.Pool) *ReceivableRepository {
	return &ReceivableRepository{pool: pool}
}

func (r *ReceivableRepository) List(ctx context.Context, merchantID string, from, to time.Time, limit, offset int) ([]model.Receivable, int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, sale_id, merchant_id, installment_number, total_installments, gross_amount, net_amount, due_date, created_at,
			COUNT(*) OVER() AS total_items
		FROM receivables
		WHERE merchant_id = $1 AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date, installment_number
		LIMIT $4 OFFSET $5`,
		merchantID, from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.Receivable
	totalItems := 0
	for rows.Next() {
		var rec model.Receivable
		if err := rows.Scan(&rec.ID, &rec.SaleID, &rec.MerchantID, &rec.InstallmentNumber,
			&rec.TotalInstallments, &rec.GrossAmount, &rec.NetAmount, &rec.DueDate,
			&rec.CreatedAt, &totalItems); err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	return out, totalItems, rows.Err()
}

type ReceivableSummaryRow struct {
	Count      int
	GrossTotal decimal.Decimal
	NetTotal   decimal.Decimal
}

func (r *ReceivableRepository) Summary(ctx context.Context, merchantID string, from, to time.Time) (ReceivableSummaryRow, error) {
	var row ReceivableSummaryRow
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(gross_amount), 0), COALESCE(SUM(net_amount), 0)
		FROM receivables
		WHERE merchant_id = $1 AND due_date >= $2 AND due_date <= $3`,
		merchantID, from, to).
		Scan(&row.Count, &row.GrossTotal, &row.NetTotal)
	return row, err
}
