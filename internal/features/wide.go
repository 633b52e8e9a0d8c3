package features

import (
	"fmt"

	"github.com/delaywise/flights-backend-go/internal/models"
	"github.com/delaywise/flights-backend-go/internal/temporal"
)

// WideRow is the named feature row consumed by the tabular classifier.
// Categorical columns stay strings at this stage; the inference encoder
// ordinal-encodes them just before scoring. AvgSpeedMPH is nil for a
// degenerate schedule, surfaced as an explicit missing value.
type WideRow struct {
	// Raw identifiers
	Airline         string `json:"airline"`
	Origin          string `json:"origin"`
	Dest            string `json:"dest"`
	Route           string `json:"route"`
	CarrierRoute    string `json:"carrier_route"`
	CarrierCategory string `json:"carrier_category"`

	// Calendar decomposition
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	DayOfMonth   int    `json:"day_of_month"`
	DayOfWeek    int    `json:"day_of_week"`
	Quarter      int    `json:"quarter"`
	ISOWeek      int    `json:"iso_week"`
	DayOfYear    int    `json:"day_of_year"`
	IsMonthStart bool   `json:"is_month_start"`
	IsMonthEnd   bool   `json:"is_month_end"`
	IsWeekend    bool   `json:"is_weekend"`
	Season       string `json:"season"`

	// Holiday and peak-season flags
	IsUSHoliday         bool `json:"is_us_holiday"`
	IsHolidayWindow     bool `json:"is_holiday_window"`
	IsThanksgivingWeek  bool `json:"is_thanksgiving_week"`
	IsXmasNYEWindow     bool `json:"is_xmas_nye_window"`
	IsPeakSummer        bool `json:"is_peak_summer"`
	IsSpringBreakSeason bool `json:"is_spring_break_season"`

	// Cyclical encodings
	MonthSin     float64 `json:"month_sin"`
	MonthCos     float64 `json:"month_cos"`
	DayOfWeekSin float64 `json:"day_of_week_sin"`
	DayOfWeekCos float64 `json:"day_of_week_cos"`
	DepHourSin   float64 `json:"dep_hour_sin"`
	DepHourCos   float64 `json:"dep_hour_cos"`
	DepMinuteSin float64 `json:"dep_minute_sin"`
	DepMinuteCos float64 `json:"dep_minute_cos"`
	ArrHourSin   float64 `json:"arr_hour_sin"`
	ArrHourCos   float64 `json:"arr_hour_cos"`
	ArrMinuteSin float64 `json:"arr_minute_sin"`
	ArrMinuteCos float64 `json:"arr_minute_cos"`

	// Time-of-day buckets
	DepTimeBucket string `json:"dep_time_bucket"`
	ArrTimeBucket string `json:"arr_time_bucket"`

	// Rush-hour flags
	IsFirstWave     bool `json:"is_first_wave"`
	IsMorningRush   bool `json:"is_morning_rush"`
	IsMidday        bool `json:"is_midday"`
	IsAfternoonRush bool `json:"is_afternoon_rush"`
	IsLateNight     bool `json:"is_late_night"`

	// Quarter-hour alignment
	DepOnQuarterHour       bool `json:"dep_on_quarter_hour"`
	DepQuarterHourDistance int  `json:"dep_quarter_hour_distance"`
	ArrOnQuarterHour       bool `json:"arr_on_quarter_hour"`
	ArrQuarterHourDistance int  `json:"arr_quarter_hour_distance"`

	ArrivesNextDayLocal bool `json:"arrives_next_day_local"`

	// Flight-number decomposition
	FlightNumberValue  int  `json:"flight_number_value"`
	FlightNumberMod100 int  `json:"flight_number_mod100"`
	FlightNumberSeries int  `json:"flight_number_series"`
	FlightNumberIsEven bool `json:"flight_number_is_even"`

	// Schedule-derived features
	Distance              float64  `json:"distance"`
	ElapsedMinutes        float64  `json:"elapsed_minutes"`
	AvgSpeedMPH           *float64 `json:"avg_speed_mph"`
	Log1pDistance         float64  `json:"log1p_distance"`
	Log1pElapsed          float64  `json:"log1p_elapsed"`
	ScheduleBufferMinutes float64  `json:"schedule_buffer_minutes"`

	// Slot-controlled airport flags
	OriginSlotControlled bool `json:"origin_slot_controlled"`
	DestSlotControlled   bool `json:"dest_slot_controlled"`
}

// CategoricalColumns lists the wide-row columns the inference encoder must
// ordinal-encode before scoring.
var CategoricalColumns = []string{
	"airline", "origin", "dest", "route", "carrier_route",
	"carrier_category", "season", "dep_time_bucket", "arr_time_bucket",
}

// BuildWideRow merges the temporal decomposition with raw identifiers and
// geospatial-derived schedule values into the classifier row.
func BuildWideRow(rec models.FlightRecord, tf temporal.Features) WideRow {
	return WideRow{
		Airline:         rec.Airline,
		Origin:          rec.Origin,
		Dest:            rec.Dest,
		Route:           fmt.Sprintf("%s-%s", rec.Origin, rec.Dest),
		CarrierRoute:    fmt.Sprintf("%s:%s-%s", rec.Airline, rec.Origin, rec.Dest),
		CarrierCategory: temporal.CarrierCategory(rec.Airline),

		Year:         tf.Year,
		Month:        tf.Month,
		DayOfMonth:   tf.DayOfMonth,
		DayOfWeek:    tf.DayOfWeek,
		Quarter:      tf.Quarter,
		ISOWeek:      tf.ISOWeek,
		DayOfYear:    tf.DayOfYear,
		IsMonthStart: tf.IsMonthStart,
		IsMonthEnd:   tf.IsMonthEnd,
		IsWeekend:    tf.IsWeekend,
		Season:       tf.Season,

		IsUSHoliday:         tf.IsUSHoliday,
		IsHolidayWindow:     tf.IsHolidayWindow,
		IsThanksgivingWeek:  tf.IsThanksgivingWeek,
		IsXmasNYEWindow:     tf.IsXmasNYEWindow,
		IsPeakSummer:        tf.IsPeakSummer,
		IsSpringBreakSeason: tf.IsSpringBreakSeason,

		MonthSin:     tf.MonthSin,
		MonthCos:     tf.MonthCos,
		DayOfWeekSin: tf.DayOfWeekSin,
		DayOfWeekCos: tf.DayOfWeekCos,
		DepHourSin:   tf.DepHourSin,
		DepHourCos:   tf.DepHourCos,
		DepMinuteSin: tf.DepMinuteSin,
		DepMinuteCos: tf.DepMinuteCos,
		ArrHourSin:   tf.ArrHourSin,
		ArrHourCos:   tf.ArrHourCos,
		ArrMinuteSin: tf.ArrMinuteSin,
		ArrMinuteCos: tf.ArrMinuteCos,

		DepTimeBucket: tf.DepTimeBucket,
		ArrTimeBucket: tf.ArrTimeBucket,

		IsFirstWave:     tf.IsFirstWave,
		IsMorningRush:   tf.IsMorningRush,
		IsMidday:        tf.IsMidday,
		IsAfternoonRush: tf.IsAfternoonRush,
		IsLateNight:     tf.IsLateNight,

		DepOnQuarterHour:       tf.DepOnQuarterHour,
		DepQuarterHourDistance: tf.DepQuarterHourDistance,
		ArrOnQuarterHour:       tf.ArrOnQuarterHour,
		ArrQuarterHourDistance: tf.ArrQuarterHourDistance,

		ArrivesNextDayLocal: tf.ArrivesNextDayLocal,

		FlightNumberValue:  tf.FlightNumberValue,
		FlightNumberMod100: tf.FlightNumberMod100,
		FlightNumberSeries: tf.FlightNumberSeries,
		FlightNumberIsEven: tf.FlightNumberIsEven,

		Distance:              rec.Distance,
		ElapsedMinutes:        rec.ElapsedMinutes,
		AvgSpeedMPH:           tf.AvgSpeedMPH,
		Log1pDistance:         tf.Log1pDistance,
		Log1pElapsed:          tf.Log1pElapsed,
		ScheduleBufferMinutes: tf.ScheduleBufferMinutes,

		OriginSlotControlled: temporal.IsSlotControlled(rec.Origin),
		DestSlotControlled:   temporal.IsSlotControlled(rec.Dest),
	}
}

// AsMap flattens the row into column name -> value for the inference
// encoder. Booleans become 0/1 so only the listed categorical columns remain
// string-typed; a nil AvgSpeedMPH stays nil (explicit missing).
func (r *WideRow) AsMap() map[string]interface{} {
	m := map[string]interface{}{
		"airline":          r.Airline,
		"origin":           r.Origin,
		"dest":             r.Dest,
		"route":            r.Route,
		"carrier_route":    r.CarrierRoute,
		"carrier_category": r.CarrierCategory,
		"season":           r.Season,
		"dep_time_bucket":  r.DepTimeBucket,
		"arr_time_bucket":  r.ArrTimeBucket,

		"year":         float64(r.Year),
		"month":        float64(r.Month),
		"day_of_month": float64(r.DayOfMonth),
		"day_of_week":  float64(r.DayOfWeek),
		"quarter":      float64(r.Quarter),
		"iso_week":     float64(r.ISOWeek),
		"day_of_year":  float64(r.DayOfYear),

		"is_month_start": boolToFloat(r.IsMonthStart),
		"is_month_end":   boolToFloat(r.IsMonthEnd),
		"is_weekend":     boolToFloat(r.IsWeekend),

		"is_us_holiday":          boolToFloat(r.IsUSHoliday),
		"is_holiday_window":      boolToFloat(r.IsHolidayWindow),
		"is_thanksgiving_week":   boolToFloat(r.IsThanksgivingWeek),
		"is_xmas_nye_window":     boolToFloat(r.IsXmasNYEWindow),
		"is_peak_summer":         boolToFloat(r.IsPeakSummer),
		"is_spring_break_season": boolToFloat(r.IsSpringBreakSeason),

		"month_sin":       r.MonthSin,
		"month_cos":       r.MonthCos,
		"day_of_week_sin": r.DayOfWeekSin,
		"day_of_week_cos": r.DayOfWeekCos,
		"dep_hour_sin":    r.DepHourSin,
		"dep_hour_cos":    r.DepHourCos,
		"dep_minute_sin":  r.DepMinuteSin,
		"dep_minute_cos":  r.DepMinuteCos,
		"arr_hour_sin":    r.ArrHourSin,
		"arr_hour_cos":    r.ArrHourCos,
		"arr_minute_sin":  r.ArrMinuteSin,
		"arr_minute_cos":  r.ArrMinuteCos,

		"is_first_wave":     boolToFloat(r.IsFirstWave),
		"is_morning_rush":   boolToFloat(r.IsMorningRush),
		"is_midday":         boolToFloat(r.IsMidday),
		"is_afternoon_rush": boolToFloat(r.IsAfternoonRush),
		"is_late_night":     boolToFloat(r.IsLateNight),

		"dep_on_quarter_hour":       boolToFloat(r.DepOnQuarterHour),
		"dep_quarter_hour_distance": float64(r.DepQuarterHourDistance),
		"arr_on_quarter_hour":       boolToFloat(r.ArrOnQuarterHour),
		"arr_quarter_hour_distance": float64(r.ArrQuarterHourDistance),

		"arrives_next_day_local": boolToFloat(r.ArrivesNextDayLocal),

		"flight_number_value":   float64(r.FlightNumberValue),
		"flight_number_mod100":  float64(r.FlightNumberMod100),
		"flight_number_series":  float64(r.FlightNumberSeries),
		"flight_number_is_even": boolToFloat(r.FlightNumberIsEven),

		"distance":                r.Distance,
		"elapsed_minutes":         r.ElapsedMinutes,
		"log1p_distance":          r.Log1pDistance,
		"log1p_elapsed":           r.Log1pElapsed,
		"schedule_buffer_minutes": r.ScheduleBufferMinutes,

		"origin_slot_controlled": boolToFloat(r.OriginSlotControlled),
		"dest_slot_controlled":   boolToFloat(r.DestSlotControlled),
	}

	if r.AvgSpeedMPH != nil {
		m["avg_speed_mph"] = *r.AvgSpeedMPH
	} else {
		m["avg_speed_mph"] = nil
	}
	return m
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
