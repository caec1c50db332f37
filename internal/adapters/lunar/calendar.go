// Package lunar adapts github.com/6tail/lunar-go to ports.Calendar.
package lunar

import (
	"container/list"
	"fmt"
	"strconv"

	"github.com/6tail/lunar-go/calendar"

	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// Calendar implements ports.Calendar on top of lunar-go.
type Calendar struct{}

// Ensure Calendar implements ports.Calendar
var _ ports.Calendar = (*Calendar)(nil)

// New returns a lunar-go backed calendar.
func New() *Calendar {
	return &Calendar{}
}

// Validate checks that d exists in its calendar system.
func (c *Calendar) Validate(d domain.CalendarDate) error {
	if err := domain.CheckRange(d); err != nil {
		return err
	}

	switch d.Kind {
	case domain.KindSolar:
		if days := domain.DaysInSolarMonth(d.Year, d.Month); d.Day > days {
			return fmt.Errorf("%w: %d-%02d has only %d days", domain.ErrInvalidDate, d.Year, d.Month, days)
		}
	case domain.KindLunar:
		month := calendar.NewLunarYear(d.Year).GetMonth(d.Month)
		if month == nil {
			if d.Month < 0 {
				return fmt.Errorf("%w: lunar year %d has no leap month %d", domain.ErrInvalidDate, d.Year, -d.Month)
			}
			return fmt.Errorf("%w: lunar year %d has no month %d", domain.ErrInvalidDate, d.Year, d.Month)
		}
		if days := month.GetDayCount(); d.Day > days {
			return fmt.Errorf("%w: lunar %d month %d has only %d days", domain.ErrInvalidDate, d.Year, d.Month, days)
		}
	default:
		return fmt.Errorf("%w: unknown calendar kind %d", domain.ErrInvalidDate, d.Kind)
	}
	return nil
}

// ToSolar converts d to the solar calendar.
func (c *Calendar) ToSolar(d domain.CalendarDate) (domain.CalendarDate, error) {
	if d.Kind == domain.KindSolar {
		if err := c.Validate(d); err != nil {
			return domain.CalendarDate{}, err
		}
		return d, nil
	}

	l, err := c.lunar(d)
	if err != nil {
		return domain.CalendarDate{}, err
	}
	s := l.GetSolar()
	return domain.Solar(s.GetYear(), s.GetMonth(), s.GetDay()), nil
}

// ToLunar converts d to the lunar calendar.
func (c *Calendar) ToLunar(d domain.CalendarDate) (domain.CalendarDate, error) {
	if d.Kind == domain.KindLunar {
		if err := c.Validate(d); err != nil {
			return domain.CalendarDate{}, err
		}
		return d, nil
	}

	s, err := c.solar(d)
	if err != nil {
		return domain.CalendarDate{}, err
	}
	l := s.GetLunar()
	return domain.Lunar(l.GetYear(), l.GetMonth(), l.GetDay()), nil
}

// LeapMonth returns the leap month of lunarYear, 0 if none.
func (c *Calendar) LeapMonth(lunarYear int) int {
	y := calendar.NewLunarYear(lunarYear)
	for m := 1; m <= 12; m++ {
		if y.GetMonth(-m) != nil {
			return m
		}
	}
	return 0
}

// LunarYearLabel renders e.g. "二〇二四年（2024）".
func (c *Calendar) LunarYearLabel(lunarYear int) string {
	l, err := c.lunar(domain.Lunar(lunarYear, 1, 1))
	if err != nil {
		return strconv.Itoa(lunarYear) + "年"
	}
	return fmt.Sprintf("%s年（%d）", l.GetYearInChinese(), lunarYear)
}

// LunarMonthLabel renders the Chinese month name; leap months get a "闰"
// prefix on the regular month's label.
func (c *Calendar) LunarMonthLabel(lunarYear, month int) string {
	if month < 0 {
		return "闰" + c.LunarMonthLabel(lunarYear, -month)
	}
	l, err := c.lunar(domain.Lunar(lunarYear, month, 1))
	if err != nil {
		return strconv.Itoa(month) + "月"
	}
	return l.GetMonthInChinese()
}

// LunarDayLabel renders the Chinese day name ("初一" ... "三十").
func (c *Calendar) LunarDayLabel(lunarYear, month, day int) string {
	l, err := c.lunar(domain.Lunar(lunarYear, month, day))
	if err != nil {
		return strconv.Itoa(day)
	}
	return l.GetDayInChinese()
}

// Format renders d using the library's short or full form.
func (c *Calendar) Format(d domain.CalendarDate, full bool) (string, error) {
	if d.Kind == domain.KindLunar {
		l, err := c.lunar(d)
		if err != nil {
			return "", err
		}
		if full {
			return l.ToFullString(), nil
		}
		return l.String(), nil
	}

	s, err := c.solar(d)
	if err != nil {
		return "", err
	}
	if full {
		return s.ToFullString(), nil
	}
	return s.String(), nil
}

// Almanac collects week day, zodiac sign, festivals and solar term of the
// solar day d falls on.
func (c *Calendar) Almanac(d domain.CalendarDate) (domain.Almanac, error) {
	solarDate, err := c.ToSolar(d)
	if err != nil {
		return domain.Almanac{}, err
	}
	s, err := c.solar(solarDate)
	if err != nil {
		return domain.Almanac{}, err
	}
	l := s.GetLunar()

	festivals := listStrings(s.GetFestivals())
	festivals = append(festivals, listStrings(l.GetFestivals())...)

	return domain.Almanac{
		Solar:      solarDate,
		Lunar:      domain.Lunar(l.GetYear(), l.GetMonth(), l.GetDay()),
		LunarText:  l.String(),
		Week:       "星期" + s.GetWeekInChinese(),
		Zodiac:     s.GetXingZuo() + "座",
		Festivals:  festivals,
		SolarTerm:  l.GetJieQi(),
		IsLeapYear: domain.IsLeapYear(solarDate.Year),
	}, nil
}

// lunar constructs a lunar-go Lunar. The library panics on invalid input,
// so the date is validated first and any remaining panic is recovered.
func (c *Calendar) lunar(d domain.CalendarDate) (l *calendar.Lunar, err error) {
	if err := c.Validate(d); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			l, err = nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, r)
		}
	}()
	return calendar.NewLunarFromYmd(d.Year, d.Month, d.Day), nil
}

func (c *Calendar) solar(d domain.CalendarDate) (s *calendar.Solar, err error) {
	if err := c.Validate(d); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", domain.ErrInvalidDate, r)
		}
	}()
	return calendar.NewSolarFromYmd(d.Year, d.Month, d.Day), nil
}

func listStrings(l *list.List) []string {
	var out []string
	if l == nil {
		return out
	}
	for e := l.Front(); e != nil; e = e.Next() {
		if s, ok := e.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
