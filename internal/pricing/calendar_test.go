package pricing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEaster(t *testing.T) {
	cases := []struct {
		year int
		want time.Time
	}{
		{2016, date(2016, time.March, 27)},
		{2024, date(2024, time.March, 31)},
		{2025, date(2025, time.April, 20)},
		{2026, date(2026, time.April, 5)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, easter(tc.year), "easter %d", tc.year)
	}
}

func TestCalendar_Holidays(t *testing.T) {
	cal := NewCalendar()

	t.Run("fixed national holidays", func(t *testing.T) {
		assert.True(t, cal.IsHoliday(date(2024, time.January, 1)))
		assert.True(t, cal.IsHoliday(date(2024, time.April, 21)))
		assert.True(t, cal.IsHoliday(date(2024, time.September, 7)))
		assert.True(t, cal.IsHoliday(date(2024, time.December, 25)))
		assert.False(t, cal.IsHoliday(date(2024, time.March, 5)))
	})

	t.Run("good friday 2024", func(t *testing.T) {
		assert.True(t, cal.IsHoliday(date(2024, time.March, 29)))
		assert.False(t, cal.IsHoliday(date(2024, time.March, 28)))
	})

	t.Run("good friday moves per year", func(t *testing.T) {
		assert.True(t, cal.IsHoliday(date(2025, time.April, 18)))
		assert.False(t, cal.IsHoliday(date(2025, time.March, 29)))
	})
}

func TestCalendar_IsBusinessDay(t *testing.T) {
	cal := NewCalendar()

	assert.True(t, cal.IsBusinessDay(date(2024, time.June, 10)), "Monday")
	assert.False(t, cal.IsBusinessDay(date(2024, time.June, 8)), "Saturday")
	assert.False(t, cal.IsBusinessDay(date(2024, time.June, 9)), "Sunday")
	assert.False(t, cal.IsBusinessDay(date(2024, time.May, 1)), "Labor Day")
	assert.False(t, cal.IsBusinessDay(date(2024, time.March, 29)), "Good Friday")
}

func TestCalendar_NextBusinessDay(t *testing.T) {
	cal := NewCalendar()

	t.Run("business day returns itself", func(t *testing.T) {
		assert.Equal(t, date(2024, time.June, 11), cal.NextBusinessDay(date(2024, time.June, 11)))
	})

	t.Run("weekend rolls to Monday", func(t *testing.T) {
		monday := date(2024, time.June, 10)
		assert.Equal(t, monday, cal.NextBusinessDay(date(2024, time.June, 8)))
		assert.Equal(t, monday, cal.NextBusinessDay(date(2024, time.June, 9)))
	})

	t.Run("holiday skips to next weekday", func(t *testing.T) {
		// May 1st 2024 is a Wednesday.
		assert.Equal(t, date(2024, time.May, 2), cal.NextBusinessDay(date(2024, time.May, 1)))
	})

	t.Run("good friday plus weekend", func(t *testing.T) {
		assert.Equal(t, date(2024, time.April, 1), cal.NextBusinessDay(date(2024, time.March, 29)))
	})
}

func TestCalendar_NthBusinessDay(t *testing.T) {
	cal := NewCalendar()

	t.Run("counts from day one", func(t *testing.T) {
		// Feb 2024 starts on a Thursday.
		assert.Equal(t, date(2024, time.February, 1), cal.NthBusinessDay(2024, time.February, 1))
		assert.Equal(t, date(2024, time.February, 5), cal.NthBusinessDay(2024, time.February, 3))
		assert.Equal(t, date(2024, time.February, 14), cal.NthBusinessDay(2024, time.February, 10))
	})

	t.Run("skips holidays", func(t *testing.T) {
		// March 2024: the 29th is Good Friday, so the 20th business day is March 28.
		assert.Equal(t, date(2024, time.March, 28), cal.NthBusinessDay(2024, time.March, 20))
	})

	t.Run("clamps to last business day of short months", func(t *testing.T) {
		// Feb 2024 has 21 business days; asking for the 31st slot
		// returns the last one.
		assert.Equal(t, date(2024, time.February, 29), cal.NthBusinessDay(2024, time.February, 31))
	})
}

func TestCalendar_ConcurrentAccess(t *testing.T) {
	cal := NewCalendar()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			year := 2020 + i%10
			cal.IsBusinessDay(date(year, time.March, 15))
			cal.NextBusinessDay(date(year, time.December, 24))
		}(i)
	}
	wg.Wait()

	assert.True(t, cal.IsHoliday(date(2024, time.March, 29)))
}
