package pricing

import "github.com/shopspring/decimal"

// Split partitions a monetary total into count parts that sum exactly
// to the total rounded to cents. The remainder cents are distributed
// left-first, so earlier parts are at most one cent larger.
func Split(total decimal.Decimal, count int) []decimal.Decimal {
	total = total.Round(2)
	if count <= 1 {
		return []decimal.Decimal{total}
	}

	cents := total.Shift(2).IntPart()
	base := cents / int64(count)
	rem := cents - base*int64(count)
	if rem < 0 {
		base--
		rem += int64(count)
	}

	parts := make([]decimal.Decimal, count)
	for i := range parts {
		c := base
		if int64(i) < rem {
			c++
		}
		parts[i] = decimal.New(c, -2)
	}
	return parts
}
