package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Price_ParceladoNoFluxo(t *testing.T) {
	e := NewEngine()
	table := &RateTable{
		SettlementMode:   SettlementNoFluxo,
		InstallmentExact: map[string]RateValue{"3": FlatRate(4.5)},
	}

	res := e.Price(SaleRequest{
		GrossAmount:      decimal.RequireFromString("1000.00"),
		PaymentMethodRaw: "cartão",
		Installments:     3,
		SaleDate:         date(2024, time.January, 10),
	}, table)

	assert.Equal(t, MethodParcelado, res.PaymentMethod)
	assert.Equal(t, "955.00", res.NetAmount.StringFixed(2))
	assert.Equal(t, 4.5, res.MDRPercent)
	assert.Equal(t, SettlementNoFluxo, res.SettlementMode)
	assert.Equal(t, "parcelas_3x_exact", res.Snapshot.Source)
	assert.False(t, res.Snapshot.UsedAverage)

	require.Len(t, res.Installments, 3)

	grossSum, netSum := decimal.Zero, decimal.Zero
	for i, inst := range res.Installments {
		grossSum = grossSum.Add(inst.GrossAmount)
		netSum = netSum.Add(inst.NetAmount)
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, 3, inst.Total)
		assert.Equal(t, i+1, inst.Snapshot.Installment)
		assert.Equal(t, 3, inst.Snapshot.TotalInstallments)
		assert.Equal(t, "parcelas_3x_exact", inst.Snapshot.Source)
	}
	assert.True(t, grossSum.Equal(decimal.RequireFromString("1000.00")), "gross parts sum: %s", grossSum)
	assert.True(t, netSum.Equal(decimal.RequireFromString("955.00")), "net parts sum: %s", netSum)

	// Sale on the 10th: the money lands on the 10th business-day slot
	// of each following month.
	assert.Equal(t, date(2024, time.February, 14), res.Installments[0].ReceivableDate)
	assert.Equal(t, date(2024, time.March, 14), res.Installments[1].ReceivableDate)
	assert.Equal(t, date(2024, time.April, 12), res.Installments[2].ReceivableDate)
	assert.Equal(t, res.Installments[0].ReceivableDate, res.FirstReceivableDate)
}

func TestEngine_Price_Pix(t *testing.T) {
	e := NewEngine()
	sale := date(2024, time.January, 10)

	res := e.Price(SaleRequest{
		GrossAmount:      decimal.RequireFromString("500.00"),
		PaymentMethodRaw: "pix",
		Installments:     1,
		SaleDate:         sale,
	}, &RateTable{SettlementMode: SettlementNoFluxo})

	assert.Equal(t, "500.00", res.NetAmount.StringFixed(2))
	assert.Zero(t, res.MDRPercent)
	assert.Equal(t, SourceNoMDRForMethod, res.Snapshot.Source)
	require.Len(t, res.Installments, 1)
	assert.Equal(t, sale, res.FirstReceivableDate)
}

func TestEngine_Price_DefaultSettlementModes(t *testing.T) {
	e := NewEngine()

	t.Run("parcelado without config defaults to no_fluxo", func(t *testing.T) {
		res := e.Price(SaleRequest{
			GrossAmount:      decimal.RequireFromString("300.00"),
			PaymentMethodRaw: "cartão",
			Installments:     2,
			SaleDate:         date(2024, time.May, 10),
		}, nil)

		assert.Equal(t, SettlementNoFluxo, res.SettlementMode)
		assert.Equal(t, SourceNoMDRConfig, res.Snapshot.Source)
		assert.Equal(t, "300.00", res.NetAmount.StringFixed(2))
		assert.Len(t, res.Installments, 2)
	})

	t.Run("single credit without config defaults to d1", func(t *testing.T) {
		res := e.Price(SaleRequest{
			GrossAmount:      decimal.RequireFromString("300.00"),
			PaymentMethodRaw: "crédito",
			Installments:     1,
			SaleDate:         date(2024, time.June, 7), // Friday
		}, nil)

		assert.Equal(t, SettlementAutomaticD1, res.SettlementMode)
		require.Len(t, res.Installments, 1)
		assert.Equal(t, date(2024, time.June, 10), res.FirstReceivableDate)
	})
}

func TestEngine_Price_InstallmentClamp(t *testing.T) {
	e := NewEngine()

	res := e.Price(SaleRequest{
		GrossAmount:      decimal.RequireFromString("100.00"),
		PaymentMethodRaw: "débito",
		Installments:     0,
		SaleDate:         date(2024, time.June, 11),
	}, &RateTable{
		SettlementMode: SettlementAutomaticD1,
		SalesTypeRates: &SalesTypeRates{Debito: flatPtr(1.99)},
	})

	require.Len(t, res.Installments, 1)
	assert.Equal(t, 1, res.Installments[0].Total)
	assert.Equal(t, 1.99, res.MDRPercent)
	assert.Equal(t, "98.01", res.NetAmount.StringFixed(2))
}

func TestEngine_Price_RoundsGrossAndPercent(t *testing.T) {
	e := NewEngine()
	table := &RateTable{
		SettlementMode: SettlementAutomaticD1,
		SalesTypeRates: &SalesTypeRates{
			CreditoAvista: &RateValue{ByBrand: map[string]float64{"visa": 3.0, "master": 4.0, "elo": 3.5}},
		},
	}

	// Brand miss: the slot averages to 3.5 exactly.
	res := e.Price(SaleRequest{
		GrossAmount:      decimal.RequireFromString("99.999"),
		PaymentMethodRaw: "cartão",
		Installments:     1,
		CardBrand:        "amex",
		SaleDate:         date(2024, time.June, 11),
	}, table)

	assert.Equal(t, "100.00", res.GrossAmount.StringFixed(2))
	assert.Equal(t, 3.5, res.MDRPercent)
	assert.True(t, res.Snapshot.UsedAverage)
	assert.Equal(t, "96.50", res.NetAmount.StringFixed(2))
}

func TestEngine_Price_ZeroSaleDateFallsBackToToday(t *testing.T) {
	e := NewEngine()

	res := e.Price(SaleRequest{
		GrossAmount:      decimal.RequireFromString("10.00"),
		PaymentMethodRaw: "pix",
		Installments:     1,
	}, nil)

	today := dateOnly(time.Now())
	assert.Equal(t, today, res.FirstReceivableDate)
}
