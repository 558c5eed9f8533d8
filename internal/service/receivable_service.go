package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clinicash/pricing-service/internal/dto"
	"github.com/clinicash/pricing-service/internal/model"
	"github.com/clinicash/pricing-service/internal/repository"
)

type ReceivableService struct {
	repo *repository.ReceivableRepository
}

func NewReceivableService(repo *repository.ReceivableRepository) *ReceivableService {
	return &ReceivableService{repo: repo}
}

// ListWithSummary fetches a page of receivables and the aggregate
// totals for the window concurrently.
func (s *ReceivableService) ListWithSummary(ctx context.Context, merchantID string, from, to time.Time, limit, offset int) ([]model.Receivable, int, dto.ReceivablesSummary, error) {
	g, gctx := errgroup.WithContext(ctx)

	var rows []model.Receivable
	var totalItems int
	var summary repository.ReceivableSummaryRow

	g.Go(func() error {
		var err error
		rows, totalItems, err = s.repo.List(gctx, merchantID, from, to, limit, offset)
		return err
	})

	g.Go(func() error {
		var err error
		summary, err = s.repo.Summary(gctx, merchantID, from, to)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, dto.ReceivablesSummary{}, err
	}

	return rows, totalItems, dto.ReceivablesSummary{
		Count:      summary.Count,
		GrossTotal: summary.GrossTotal,
		NetTotal:   summary.NetTotal,
	}, nil
}

// ParseWindow interprets optional from/to query strings, defaulting to
// the ninety days ahead of today.
func ParseWindow(fromStr, toStr string) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 3, 0)

	if fromStr != "" {
		if d, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = d
		}
	}
	if toStr != "" {
		if d, err := time.Parse("2006-01-02", toStr); err == nil {
			to = d
		}
	}
	return from, to
}
