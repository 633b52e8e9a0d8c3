package temporal

import "time"

// IsUSFederalHoliday reports whether the date is a recognized US federal
// holiday. Fixed-date holidays falling on a weekend also mark their observed
// weekday (Saturday -> Friday, Sunday -> Monday).
func IsUSFederalHoliday(d time.Time) bool {
	year, month, day := d.Date()

	// Fixed-date holidays, actual and observed
	for _, h := range fixedHolidays {
		actual := time.Date(year, h.month, h.day, 0, 0, 0, 0, time.UTC)
		if month == h.month && day == h.day {
			return true
		}
		if sameDate(d, observedDate(actual)) {
			return true
		}
	}
	// New Year's Day observed on Dec 31 when Jan 1 of next year is a Saturday
	nextNewYear := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	if sameDate(d, observedDate(nextNewYear)) {
		return true
	}

	switch {
	case sameDate(d, nthWeekdayOfMonth(year, time.January, time.Monday, 3)): // MLK Day
		return true
	case sameDate(d, nthWeekdayOfMonth(year, time.February, time.Monday, 3)): // Presidents Day
		return true
	case sameDate(d, lastWeekdayOfMonth(year, time.May, time.Monday)): // Memorial Day
		return true
	case sameDate(d, nthWeekdayOfMonth(year, time.September, time.Monday, 1)): // Labor Day
		return true
	case sameDate(d, nthWeekdayOfMonth(year, time.October, time.Monday, 2)): // Columbus Day
		return true
	case sameDate(d, Thanksgiving(year)):
		return true
	}
	return false
}

// IsHolidayWindow reports whether the date or either adjacent calendar day is
// a US federal holiday.
func IsHolidayWindow(d time.Time) bool {
	return IsUSFederalHoliday(d.AddDate(0, 0, -1)) ||
		IsUSFederalHoliday(d) ||
		IsUSFederalHoliday(d.AddDate(0, 0, 1))
}

// Thanksgiving returns the fourth Thursday of November for the given year.
func Thanksgiving(year int) time.Time {
	return nthWeekdayOfMonth(year, time.November, time.Thursday, 4)
}

// IsThanksgivingWeek reports whether the date falls within three days either
// side of Thanksgiving.
func IsThanksgivingWeek(d time.Time) bool {
	tg := Thanksgiving(d.Year())
	diff := midnight(d).Sub(tg).Hours() / 24
	return diff >= -3 && diff <= 3
}

// IsXmasNYEWindow reports whether the date is in the Dec 20-31 or Jan 1-5
// travel window.
func IsXmasNYEWindow(d time.Time) bool {
	switch d.Month() {
	case time.December:
		return d.Day() >= 20
	case time.January:
		return d.Day() <= 5
	}
	return false
}

// IsChristmasEve reports Dec 24.
func IsChristmasEve(d time.Time) bool {
	return d.Month() == time.December && d.Day() == 24
}

// IsThanksgivingDay reports the exact fourth Thursday of November.
func IsThanksgivingDay(d time.Time) bool {
	return sameDate(d, Thanksgiving(d.Year()))
}

var fixedHolidays = []struct {
	month time.Month
	day   int
}{
	{time.January, 1},   // New Year's Day
	{time.June, 19},     // Juneteenth
	{time.July, 4},      // Independence Day
	{time.November, 11}, // Veterans Day
	{time.December, 25}, // Christmas Day
}

// observedDate shifts a weekend holiday to its observed weekday.
func observedDate(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

func nthWeekdayOfMonth(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

func lastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) time.Time {
	last := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func midnight(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
