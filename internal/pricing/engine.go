package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Engine prices card sales against a merchant's rate table. It is pure
// apart from the holiday cache it owns, so a single instance can be
// shared by any number of goroutines.
type Engine struct {
	cal *Calendar
}

func NewEngine() *Engine {
	return &Engine{cal: NewCalendar()}
}

func (e *Engine) Calendar() *Calendar {
	return e.cal
}

// SaleRequest is one pricing query.
type SaleRequest struct {
	GrossAmount      decimal.Decimal
	PaymentMethodRaw string
	Installments     int
	CardBrand        string
	SaleDate         time.Time
}

// RuleSnapshot records which rule produced a number, for the audit
// trail persisted alongside each receivable.
type RuleSnapshot struct {
	PaymentMethod     string         `json:"payment_method"`
	SettlementMode    SettlementMode `json:"settlement_mode"`
	Brand             string         `json:"brand,omitempty"`
	Source            string         `json:"source"`
	UsedAverage       bool           `json:"used_average"`
	ConsideredRates   []float64      `json:"considered_rates,omitempty"`
	Installment       int            `json:"parcela,omitempty"`
	TotalInstallments int            `json:"total_parcelas,omitempty"`
}

// Installment is one receivable slice of a priced sale.
type Installment struct {
	Number         int
	Total          int
	GrossAmount    decimal.Decimal
	NetAmount      decimal.Decimal
	ReceivableDate time.Time
	Snapshot       RuleSnapshot
}

// Result is the outcome of one pricing call. The per-installment gross
// and net amounts sum exactly to the top-level amounts.
type Result struct {
	PaymentMethod       string
	GrossAmount         decimal.Decimal
	NetAmount           decimal.Decimal
	MDRPercent          float64
	SettlementMode      SettlementMode
	FirstReceivableDate time.Time
	Snapshot            RuleSnapshot
	Installments        []Installment
}

var oneHundred = decimal.NewFromInt(100)

// Price computes the net proceeds, receivable schedule and audit
// snapshot for a sale. A nil table is an expected degraded input and
// prices at zero MDR with a diagnostic source, never an error.
func (e *Engine) Price(req SaleRequest, table *RateTable) Result {
	gross := req.GrossAmount.Round(2)

	installments := req.Installments
	if installments < 1 {
		installments = 1
	}

	method := NormalizeMethod(req.PaymentMethodRaw, installments)

	mode := SettlementAutomaticD1
	if table != nil && table.SettlementMode.Valid() {
		mode = table.SettlementMode
	} else if method == MethodParcelado {
		mode = SettlementNoFluxo
	}

	res := ResolveRate(method, installments, req.CardBrand, table)
	percent := round4(res.Percent)

	fee := gross.Mul(decimal.NewFromFloat(percent)).Div(oneHundred)
	net := gross.Sub(fee).Round(2)

	saleDate := req.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}
	saleDate = dateOnly(saleDate)

	schedule := e.Schedule(method, installments, saleDate, mode)

	snapshot := RuleSnapshot{
		PaymentMethod:   method,
		SettlementMode:  mode,
		Brand:           res.Brand,
		Source:          res.Source,
		UsedAverage:     res.UsedAverage,
		ConsideredRates: res.CompatibleRates,
	}

	var plan []Installment
	if method == MethodParcelado && mode == SettlementNoFluxo {
		grossParts := Split(gross, installments)
		netParts := Split(net, installments)
		plan = make([]Installment, installments)
		for i := 0; i < installments; i++ {
			snap := snapshot
			snap.Installment = i + 1
			snap.TotalInstallments = installments
			plan[i] = Installment{
				Number:         i + 1,
				Total:          installments,
				GrossAmount:    grossParts[i],
				NetAmount:      netParts[i],
				ReceivableDate: schedule[i],
				Snapshot:       snap,
			}
		}
	} else {
		snap := snapshot
		snap.Installment = 1
		snap.TotalInstallments = 1
		plan = []Installment{{
			Number:         1,
			Total:          1,
			GrossAmount:    gross,
			NetAmount:      net,
			ReceivableDate: schedule[0],
			Snapshot:       snap,
		}}
	}

	return Result{
		PaymentMethod:       method,
		GrossAmount:         gross,
		NetAmount:           net,
		MDRPercent:          percent,
		SettlementMode:      mode,
		FirstReceivableDate: plan[0].ReceivableDate,
		Snapshot:            snapshot,
		Installments:        plan,
	}
}
