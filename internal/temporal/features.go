package temporal

import (
	"math"
	"strings"
	"time"

	"github.com/delaywise/flights-backend-go/internal/spatial"
)

// ReferenceCruiseSpeedMPH is the baseline cruise speed used for the schedule
// buffer. A positive buffer means the schedule is padded relative to flying
// the route at this speed.
const ReferenceCruiseSpeedMPH = 450.0

// MinutesPerDay is the period of the time-of-day encoding.
const MinutesPerDay = 1440

// Time-of-day buckets (6-hour bins)
const (
	BucketNight     = "night"     // 0-5
	BucketMorning   = "morning"   // 6-11
	BucketAfternoon = "afternoon" // 12-17
	BucketEvening   = "evening"   // 18-23
)

// Meteorological seasons keyed by month
const (
	SeasonDJF = "DJF"
	SeasonMAM = "MAM"
	SeasonJJA = "JJA"
	SeasonSON = "SON"
)

// Features is the full calendar/clock/schedule decomposition for one flight.
// AvgSpeedMPH is nil when the scheduled elapsed time is non-positive; the
// value is an explicit missing, never a NaN.
type Features struct {
	// Calendar decomposition
	Year       int
	Month      int
	DayOfMonth int
	DayOfWeek  int // ISO, 1=Monday .. 7=Sunday
	Quarter    int
	ISOWeek    int
	DayOfYear  int

	IsMonthStart bool
	IsMonthEnd   bool
	IsWeekend    bool
	Season       string

	// Holiday and peak-season flags
	IsUSHoliday         bool
	IsHolidayWindow     bool
	IsThanksgivingWeek  bool
	IsXmasNYEWindow     bool
	IsPeakSummer        bool
	IsSpringBreakSeason bool

	// Cyclical encodings
	MonthSin     float64
	MonthCos     float64
	DayOfWeekSin float64
	DayOfWeekCos float64
	DepHourSin   float64
	DepHourCos   float64
	DepMinuteSin float64
	DepMinuteCos float64
	ArrHourSin   float64
	ArrHourCos   float64
	ArrMinuteSin float64
	ArrMinuteCos float64

	// Time-of-day buckets
	DepTimeBucket string
	ArrTimeBucket string

	// Rush-hour flags on departure hour. Non-exclusive boundary checks;
	// hour 20 is deliberately flagged by none of them.
	IsFirstWave     bool
	IsMorningRush   bool
	IsMidday        bool
	IsAfternoonRush bool
	IsLateNight     bool

	// Quarter-hour alignment
	DepOnQuarterHour       bool
	DepQuarterHourDistance int
	ArrOnQuarterHour       bool
	ArrQuarterHourDistance int

	ArrivesNextDayLocal bool

	// Flight-number decomposition
	FlightNumberValue  int
	FlightNumberMod100 int
	FlightNumberSeries int
	FlightNumberIsEven bool

	// Schedule-derived features
	AvgSpeedMPH           *float64
	Log1pDistance         float64
	Log1pElapsed          float64
	ScheduleBufferMinutes float64
}

// Compute derives all temporal features for a flight. dep and arr are naive
// local wall times; distance is great-circle miles, elapsed the scheduled
// duration in minutes.
func Compute(date, dep, arr time.Time, flightNumber string, distance, elapsed float64) Features {
	var f Features

	f.Year = date.Year()
	f.Month = int(date.Month())
	f.DayOfMonth = date.Day()
	f.DayOfWeek = isoWeekday(date)
	f.Quarter = (f.Month-1)/3 + 1
	_, f.ISOWeek = date.ISOWeek()
	f.DayOfYear = date.YearDay()

	f.IsMonthStart = f.DayOfMonth == 1
	f.IsMonthEnd = f.DayOfMonth == DaysInMonth(f.Year, f.Month)
	f.IsWeekend = f.DayOfWeek >= 6
	f.Season = season(f.Month)

	f.IsUSHoliday = IsUSFederalHoliday(date)
	f.IsHolidayWindow = IsHolidayWindow(date)
	f.IsThanksgivingWeek = IsThanksgivingWeek(date)
	f.IsXmasNYEWindow = IsXmasNYEWindow(date)
	f.IsPeakSummer = f.Month >= 6 && f.Month <= 8
	f.IsSpringBreakSeason = f.Month == 3 || f.Month == 4

	f.MonthSin, f.MonthCos = spatial.SinCos(float64(f.Month-1) / 12.0)
	f.DayOfWeekSin, f.DayOfWeekCos = spatial.SinCos(float64(f.DayOfWeek-1) / 7.0)

	depMin := MinutesOfDay(dep)
	arrMin := MinutesOfDay(arr)
	depHour, depMinute := depMin/60, depMin%60
	arrHour, arrMinute := arrMin/60, arrMin%60

	f.DepHourSin, f.DepHourCos = spatial.SinCos(float64(depHour) / 24.0)
	f.DepMinuteSin, f.DepMinuteCos = spatial.SinCos(float64(depMinute) / 60.0)
	f.ArrHourSin, f.ArrHourCos = spatial.SinCos(float64(arrHour) / 24.0)
	f.ArrMinuteSin, f.ArrMinuteCos = spatial.SinCos(float64(arrMinute) / 60.0)

	f.DepTimeBucket = timeOfDayBucket(depHour)
	f.ArrTimeBucket = timeOfDayBucket(arrHour)

	f.IsFirstWave = depHour < 7
	f.IsMorningRush = depHour >= 7 && depHour <= 9
	f.IsMidday = depHour >= 10 && depHour <= 15
	f.IsAfternoonRush = depHour >= 16 && depHour <= 19
	f.IsLateNight = depHour >= 21 && depHour <= 23

	f.DepOnQuarterHour = depMinute%15 == 0
	f.DepQuarterHourDistance = quarterHourDistance(depMinute)
	f.ArrOnQuarterHour = arrMinute%15 == 0
	f.ArrQuarterHourDistance = quarterHourDistance(arrMinute)

	// Clock-order heuristic, independent of the timezone-aware duration
	f.ArrivesNextDayLocal = arrMin < depMin

	num := ExtractFlightNumber(flightNumber)
	f.FlightNumberValue = num
	f.FlightNumberMod100 = num % 100
	f.FlightNumberSeries = num / 100
	f.FlightNumberIsEven = num%2 == 0

	if elapsed > 0 {
		speed := distance / (elapsed / 60.0)
		f.AvgSpeedMPH = &speed
		f.Log1pElapsed = math.Log1p(elapsed)
	}
	f.Log1pDistance = math.Log1p(distance)
	f.ScheduleBufferMinutes = elapsed - distance*60.0/ReferenceCruiseSpeedMPH

	return f
}

// MinutesOfDay normalizes a wall time to minutes since midnight mod 1440.
func MinutesOfDay(t time.Time) int {
	return (t.Hour()*60 + t.Minute()) % MinutesPerDay
}

// ExtractFlightNumber pulls the integer value from the digit characters of a
// flight number, ignoring any letters ("DL423" -> 423).
func ExtractFlightNumber(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseNaiveLocal parses an ISO-like local naive timestamp ("2006-01-02T15:04",
// optionally with seconds or a space separator). The returned time carries
// wall-clock components only.
func ParseNaiveLocal(value string) (time.Time, error) {
	v := strings.TrimSpace(strings.Replace(value, " ", "T", 1))
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func season(month int) string {
	switch {
	case month == 12 || month <= 2:
		return SeasonDJF
	case month <= 5:
		return SeasonMAM
	case month <= 8:
		return SeasonJJA
	default:
		return SeasonSON
	}
}

func timeOfDayBucket(hour int) string {
	switch {
	case hour < 6:
		return BucketNight
	case hour < 12:
		return BucketMorning
	case hour < 18:
		return BucketAfternoon
	default:
		return BucketEvening
	}
}

// quarterHourDistance is the minimal distance in minutes to the nearest
// quarter-hour mark, wrapping within the hour (minute 58 is 2 from :00).
func quarterHourDistance(minute int) int {
	best := 60
	for _, mark := range []int{0, 15, 30, 45} {
		d := minute - mark
		if d < 0 {
			d = -d
		}
		if 60-d < d {
			d = 60 - d
		}
		if d < best {
			best = d
		}
	}
	return best
}
