package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ExactSum(t *testing.T) {
	totals := []string{"1000.00", "955.00", "100.00", "0.01", "0.10", "33.33", "999.99", "123.456"}
	counts := []int{1, 2, 3, 4, 5, 7, 10, 12, 13}

	for _, ts := range totals {
		total := decimal.RequireFromString(ts)
		for _, n := range counts {
			parts := Split(total, n)
			require.Len(t, parts, n, "split(%s, %d)", ts, n)

			sum := decimal.Zero
			min, max := parts[0], parts[0]
			for _, p := range parts {
				sum = sum.Add(p)
				if p.LessThan(min) {
					min = p
				}
				if p.GreaterThan(max) {
					max = p
				}
			}

			assert.True(t, sum.Equal(total.Round(2)),
				"split(%s, %d) sums to %s", ts, n, sum)
			assert.True(t, max.Sub(min).LessThanOrEqual(decimal.New(1, -2)),
				"split(%s, %d) spread %s exceeds one cent", ts, n, max.Sub(min))
		}
	}
}

func TestSplit_LeftLoadedRemainder(t *testing.T) {
	parts := Split(decimal.RequireFromString("100.00"), 3)
	assert.Equal(t, "33.34", parts[0].StringFixed(2))
	assert.Equal(t, "33.33", parts[1].StringFixed(2))
	assert.Equal(t, "33.33", parts[2].StringFixed(2))
}

func TestSplit_SingleCount(t *testing.T) {
	parts := Split(decimal.RequireFromString("42.505"), 1)
	require.Len(t, parts, 1)
	assert.Equal(t, "42.51", parts[0].StringFixed(2))
}

func TestSplit_TotalSmallerThanCount(t *testing.T) {
	parts := Split(decimal.RequireFromString("0.02"), 3)
	assert.Equal(t, "0.01", parts[0].StringFixed(2))
	assert.Equal(t, "0.01", parts[1].StringFixed(2))
	assert.Equal(t, "0.00", parts[2].StringFixed(2))
}
