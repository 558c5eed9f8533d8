package pricing

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SettlementMode is the acquirer's payout policy.
type SettlementMode string

const (
	SettlementAutomaticD1  SettlementMode = "automatic_d1"
	SettlementAutomaticD30 SettlementMode = "automatic_d30"
	SettlementNoFluxo      SettlementMode = "no_fluxo"
)

func (m SettlementMode) Valid() bool {
	switch m {
	case SettlementAutomaticD1, SettlementAutomaticD30, SettlementNoFluxo:
		return true
	}
	return false
}

// Resolution source tags. These end up in the audit snapshot so a
// consumer can tell "correctly free" apart from "rate table incomplete".
const (
	SourceNoMDRForMethod = "no_mdr_for_payment_method"
	SourceNoMDRConfig    = "no_mdr_config"
	SourceAverage        = "average_fallback"
	SourceNoRateFound    = "no_rate_found"
)

// RateValue is one slot of a rate table: either a flat percentage or a
// mapping of percentages keyed by card brand, never both.
type RateValue struct {
	Flat    *float64
	ByBrand map[string]float64
}

func FlatRate(pct float64) RateValue {
	return RateValue{Flat: &pct}
}

func BrandRates(m map[string]float64) RateValue {
	return RateValue{ByBrand: m}
}

// UnmarshalJSON accepts a number, a numeric string ("3,19", "4.5%") or
// an object of brand-keyed numbers/strings. Values that fail tolerant
// parsing are treated as absent, not as zero.
func (v *RateValue) UnmarshalJSON(b []byte) error {
	var num float64
	if err := json.Unmarshal(b, &num); err == nil {
		v.Flat = &num
		v.ByBrand = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if pct, ok := parsePercent(s); ok {
			v.Flat = &pct
		}
		v.ByBrand = nil
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("rate value: unsupported JSON shape: %s", string(b))
	}
	byBrand := make(map[string]float64, len(raw))
	for brand, rv := range raw {
		var n float64
		if err := json.Unmarshal(rv, &n); err == nil {
			byBrand[brand] = n
			continue
		}
		var bs string
		if err := json.Unmarshal(rv, &bs); err == nil {
			if pct, ok := parsePercent(bs); ok {
				byBrand[brand] = pct
			}
		}
	}
	v.Flat = nil
	v.ByBrand = byBrand
	return nil
}

func (v RateValue) MarshalJSON() ([]byte, error) {
	if v.Flat != nil {
		return json.Marshal(*v.Flat)
	}
	return json.Marshal(v.ByBrand)
}

// forBrand resolves the slot for a normalized brand. A flat slot
// matches any brand, including none.
func (v RateValue) forBrand(brand string) (float64, bool) {
	if v.Flat != nil {
		return *v.Flat, true
	}
	for _, key := range sortedKeys(v.ByBrand) {
		if brandsMatch(NormalizeBrand(key), brand) {
			return v.ByBrand[key], true
		}
	}
	return 0, false
}

// rates returns every numeric percentage held by the slot.
func (v RateValue) rates() []float64 {
	if v.Flat != nil {
		return []float64{*v.Flat}
	}
	out := make([]float64, 0, len(v.ByBrand))
	for _, key := range sortedKeys(v.ByBrand) {
		out = append(out, v.ByBrand[key])
	}
	return out
}

// SalesTypeRates holds the non-installment card slots.
type SalesTypeRates struct {
	Debito        *RateValue `json:"debito,omitempty"`
	CreditoAvista *RateValue `json:"credito_avista,omitempty"`
}

// RateTable is one merchant's acquirer rate configuration. The engine
// treats it as read-only input.
type RateTable struct {
	SettlementMode    SettlementMode       `json:"settlement_mode"`
	CardBrands        []string             `json:"card_brands,omitempty"`
	SalesTypeRates    *SalesTypeRates      `json:"sales_type_rates,omitempty"`
	InstallmentRanges map[string]RateValue `json:"installment_ranges,omitempty"`
	InstallmentExact  map[string]RateValue `json:"installment_exact_rates,omitempty"`
}

// parsePercent parses a percentage string tolerantly: "%" suffix
// stripped, Brazilian comma decimals accepted ("3,19", "1.234,56").
func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Range keys come in exactly two notations: "2-6" and "2x a 6x".
var rangeKeyRegex = regexp.MustCompile(`(?i)^\s*(\d+)\s*x?\s*(?:-|a)\s*(\d+)\s*x?\s*$`)

func parseRangeKey(key string) (min, max int, ok bool) {
	m := rangeKeyRegex.FindStringSubmatch(key)
	if m == nil {
		return 0, 0, false
	}
	min, _ = strconv.Atoi(m[1])
	max, _ = strconv.Atoi(m[2])
	return min, max, true
}

// RateResolution is the outcome of one MDR lookup.
type RateResolution struct {
	Percent         float64
	Source          string
	UsedAverage     bool
	Brand           string
	CompatibleRates []float64
}

// ResolveRate finds the MDR percentage for a payment method against a
// rate table: exact installment count first, then installment range,
// then an averaging fallback over every compatible rate. Pix, cash and
// an absent table resolve to zero with a diagnostic source.
func ResolveRate(method string, installments int, brand string, table *RateTable) RateResolution {
	switch method {
	case "", MethodPix, MethodDinheiro:
		return RateResolution{Source: SourceNoMDRForMethod}
	}
	if table == nil {
		return RateResolution{Source: SourceNoMDRConfig}
	}

	normBrand := NormalizeBrand(brand)
	var compatible []float64

	switch method {
	case MethodDebito, MethodCreditoAvista:
		slot, src := salesTypeSlot(table, method)
		if slot != nil {
			if pct, ok := slot.forBrand(normBrand); ok {
				return RateResolution{
					Percent:         pct,
					Source:          src,
					Brand:           normBrand,
					CompatibleRates: slot.rates(),
				}
			}
			compatible = append(compatible, slot.rates()...)
		}

	case MethodParcelado:
		exact, hasExact := table.InstallmentExact[strconv.Itoa(installments)]
		if hasExact {
			if pct, ok := exact.forBrand(normBrand); ok {
				return RateResolution{
					Percent:         pct,
					Source:          fmt.Sprintf("parcelas_%dx_exact", installments),
					Brand:           normBrand,
					CompatibleRates: installmentRates(table),
				}
			}
		} else {
			for _, key := range sortedKeys(table.InstallmentRanges) {
				min, max, ok := parseRangeKey(key)
				if !ok || installments < min || installments > max {
					continue
				}
				slot := table.InstallmentRanges[key]
				if pct, ok := slot.forBrand(normBrand); ok {
					return RateResolution{
						Percent:         pct,
						Source:          "range_" + key,
						Brand:           normBrand,
						CompatibleRates: installmentRates(table),
					}
				}
				break
			}
		}
		compatible = installmentRates(table)
	}

	pool := compatible
	if len(pool) == 0 {
		pool = allRates(table)
	}
	if len(pool) > 0 {
		return RateResolution{
			Percent:         round4(mean(pool)),
			Source:          SourceAverage,
			UsedAverage:     true,
			Brand:           normBrand,
			CompatibleRates: pool,
		}
	}
	return RateResolution{Source: SourceNoRateFound, Brand: normBrand}
}

func salesTypeSlot(table *RateTable, method string) (*RateValue, string) {
	if table.SalesTypeRates == nil {
		return nil, ""
	}
	if method == MethodDebito {
		return table.SalesTypeRates.Debito, "debito_exact"
	}
	return table.SalesTypeRates.CreditoAvista, "credito_avista_exact"
}

// installmentRates gathers every numeric rate relevant to installment
// queries: the full range table and every exact-count slot.
func installmentRates(table *RateTable) []float64 {
	var out []float64
	for _, key := range sortedKeys(table.InstallmentRanges) {
		out = append(out, table.InstallmentRanges[key].rates()...)
	}
	for _, key := range sortedKeys(table.InstallmentExact) {
		out = append(out, table.InstallmentExact[key].rates()...)
	}
	return out
}

// allRates scans the entire table for numeric rates. Last-resort
// averaging pool: it may blend debit rates into a credit query, which
// is preserved behavior, and the snapshot's considered-rate list makes
// the blend visible to consumers.
func allRates(table *RateTable) []float64 {
	var out []float64
	if table.SalesTypeRates != nil {
		if table.SalesTypeRates.Debito != nil {
			out = append(out, table.SalesTypeRates.Debito.rates()...)
		}
		if table.SalesTypeRates.CreditoAvista != nil {
			out = append(out, table.SalesTypeRates.CreditoAvista.rates()...)
		}
	}
	out = append(out, installmentRates(table)...)
	return out
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
