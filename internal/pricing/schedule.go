package pricing

import "time"

// Schedule computes the receivable dates for a sale. The result has
// one date per installment only for parcelado sales settled no_fluxo;
// every other combination settles as a single lump.
func (e *Engine) Schedule(method string, installments int, saleDate time.Time, mode SettlementMode) []time.Time {
	saleDate = dateOnly(saleDate)

	// Pix and cash land immediately, whatever the settlement mode says.
	if method == MethodPix || method == MethodDinheiro {
		return []time.Time{saleDate}
	}

	switch mode {
	case SettlementAutomaticD30:
		return []time.Time{e.cal.NextBusinessDay(saleDate.AddDate(0, 0, 30))}
	case SettlementNoFluxo:
		n := saleDate.Day()
		if method == MethodParcelado {
			dates := make([]time.Time, 0, installments)
			for i := 1; i <= installments; i++ {
				target := saleDate.AddDate(0, i, 0)
				dates = append(dates, e.cal.NthBusinessDay(target.Year(), target.Month(), n))
			}
			return dates
		}
		target := saleDate.AddDate(0, 1, 0)
		return []time.Time{e.cal.NthBusinessDay(target.Year(), target.Month(), n)}
	default: // automatic_d1
		return []time.Time{e.cal.NextBusinessDay(saleDate.AddDate(0, 0, 1))}
	}
}
