package pricing

import (
	"sync"
	"time"
)

// Brazilian national holidays with a fixed month/day.
var fixedHolidays = [][2]int{
	{1, 1},   // Confraternização Universal
	{4, 21},  // Tiradentes
	{5, 1},   // Dia do Trabalho
	{9, 7},   // Independência
	{10, 12}, // Nossa Senhora Aparecida
	{11, 2},  // Finados
	{11, 15}, // Proclamação da República
	{11, 20}, // Consciência Negra
	{12, 25}, // Natal
}

// Calendar answers business-day questions for the Brazilian national
// calendar. Holiday sets are computed once per year and cached; the
// cache is safe for concurrent use.
type Calendar struct {
	mu    sync.Mutex
	years map[int]map[[2]int]struct{}
}

func NewCalendar() *Calendar {
	return &Calendar{years: make(map[int]map[[2]int]struct{})}
}

// easter computes the Gregorian Easter Sunday for a year using the
// anonymous Gaussian algorithm (integer arithmetic only).
func easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func (c *Calendar) holidaySet(year int) map[[2]int]struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if set, ok := c.years[year]; ok {
		return set
	}

	set := make(map[[2]int]struct{}, len(fixedHolidays)+1)
	for _, h := range fixedHolidays {
		set[h] = struct{}{}
	}
	goodFriday := easter(year).AddDate(0, 0, -2)
	set[[2]int{int(goodFriday.Month()), goodFriday.Day()}] = struct{}{}

	c.years[year] = set
	return set
}

func (c *Calendar) IsHoliday(d time.Time) bool {
	set := c.holidaySet(d.Year())
	_, ok := set[[2]int{int(d.Month()), d.Day()}]
	return ok
}

// IsBusinessDay reports whether d is a Monday-Friday that is not a
// national holiday.
func (c *Calendar) IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !c.IsHoliday(d)
}

// NextBusinessDay returns the first business day at or after d.
func (c *Calendar) NextBusinessDay(d time.Time) time.Time {
	d = dateOnly(d)
	for !c.IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// NthBusinessDay returns the nth business day of the given month. When
// the month has fewer than n business days it returns the month's last
// business day.
func (c *Calendar) NthBusinessDay(year int, month time.Month, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	var last time.Time
	count := 0
	for day := 1; day <= lastDay; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if c.IsBusinessDay(d) {
			count++
			last = d
			if count == n {
				return d
			}
		}
	}
	return last
}

func dateOnly(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
