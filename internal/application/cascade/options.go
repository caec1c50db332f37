// Package cascade implements the cascading year/month/day pickers for the
// solar and lunar calendars, plus the countdown and next-occurrence
// arithmetic built on them.
package cascade

import (
	"fmt"

	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

var solarMonthNames = [12]string{
	"一月", "二月", "三月", "四月", "五月", "六月",
	"七月", "八月", "九月", "十月", "十一月", "十二月",
}

// LunarYears lists lunar years start..end inclusive.
func LunarYears(cal ports.Calendar, start, end int) []domain.Option {
	var years []domain.Option
	for year := start; year <= end; year++ {
		years = append(years, domain.Option{Label: cal.LunarYearLabel(year), Value: year})
	}
	return years
}

// LunarMonths lists the months of a lunar year. A leap month follows its
// regular month and carries the negated ordinal.
func LunarMonths(cal ports.Calendar, year int) []domain.Option {
	leap := cal.LeapMonth(year)

	months := make([]domain.Option, 0, 13)
	for month := 1; month <= 12; month++ {
		label := cal.LunarMonthLabel(year, month)
		months = append(months, domain.Option{Label: label, Value: month})
		if leap == month {
			months = append(months, domain.Option{Label: "闰" + label, Value: -month})
		}
	}
	return months
}

// LunarDayCount returns 30 when day 30 exists in the lunar month, else 29.
// A month that cannot be constructed at all also counts as 29 days.
func LunarDayCount(cal ports.Calendar, year, month int) int {
	if cal.Validate(domain.Lunar(year, month, 30)) == nil {
		return 30
	}
	return 29
}

// LunarDays lists the days of a lunar month.
func LunarDays(cal ports.Calendar, year, month int) []domain.Option {
	n := LunarDayCount(cal, year, month)
	days := make([]domain.Option, 0, n)
	for day := 1; day <= n; day++ {
		days = append(days, domain.Option{Label: cal.LunarDayLabel(year, month, day), Value: day})
	}
	return days
}

// SolarYears lists solar years start..end inclusive.
func SolarYears(start, end int) []domain.Option {
	var years []domain.Option
	for year := start; year <= end; year++ {
		years = append(years, domain.Option{Label: fmt.Sprintf("%d年", year), Value: year})
	}
	return years
}

// SolarMonths lists January..December.
func SolarMonths() []domain.Option {
	months := make([]domain.Option, 0, 12)
	for month := 1; month <= 12; month++ {
		months = append(months, domain.Option{
			Label: fmt.Sprintf("%d月（%s）", month, solarMonthNames[month-1]),
			Value: month,
		})
	}
	return months
}

// SolarDays lists the days of a Gregorian month.
func SolarDays(year, month int) []domain.Option {
	n := domain.DaysInSolarMonth(year, month)
	days := make([]domain.Option, 0, n)
	for day := 1; day <= n; day++ {
		days = append(days, domain.Option{Label: fmt.Sprintf("%d日", day), Value: day})
	}
	return days
}
