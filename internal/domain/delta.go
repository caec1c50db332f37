package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour

	daysPerYear  = 365
	daysPerMonth = 30
)

// Breakdown is the display decomposition of a delta. Years and months are
// fixed-width approximations (365 and 30 days).
type Breakdown struct {
	Years   int64 `json:"years"`
	Months  int64 `json:"months"`
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// TimeDelta is an immutable snapshot of the distance between a target
// instant and now.
type TimeDelta struct {
	IsPast       bool      `json:"isPast"`
	Milliseconds int64     `json:"milliseconds"`
	TotalDays    int64     `json:"totalDays"`
	TotalHours   int64     `json:"totalHours"`
	TotalMinutes int64     `json:"totalMinutes"`
	Breakdown    Breakdown `json:"breakdown"`
	Formatted    string    `json:"formatted"`
}

// Locale holds the tokens used to render a TimeDelta.
type Locale struct {
	Name      string
	Years     string
	Months    string
	Days      string
	Hours     string
	Minutes   string
	Seconds   string
	Separator string
	Zero      string
	Future    string
	Past      string
}

var (
	LocaleZH = Locale{
		Name:    "zh",
		Years:   "%d年",
		Months:  "%d个月",
		Days:    "%d天",
		Hours:   "%d小时",
		Minutes: "%d分钟",
		Seconds: "%d秒",
		Zero:    "0秒",
		Future:  "还有%s",
		Past:    "%s前",
	}

	LocaleEN = Locale{
		Name:      "en",
		Years:     "%d years",
		Months:    "%d months",
		Days:      "%d days",
		Hours:     "%d hours",
		Minutes:   "%d minutes",
		Seconds:   "%d seconds",
		Separator: " ",
		Zero:      "0 seconds",
		Future:    "still %s",
		Past:      "%s ago",
	}
)

// LocaleByName returns the locale for "zh" or "en"; anything else is zh.
func LocaleByName(name string) Locale {
	if strings.HasPrefix(strings.ToLower(name), "en") {
		return LocaleEN
	}
	return LocaleZH
}

// NewTimeDelta measures target against now.
func NewTimeDelta(target, now time.Time, locale Locale) TimeDelta {
	diff := target.Sub(now).Milliseconds()
	isPast := diff < 0
	abs := diff
	if isPast {
		abs = -diff
	}

	days := abs / msPerDay
	b := Breakdown{
		Years:   days / daysPerYear,
		Months:  (days % daysPerYear) / daysPerMonth,
		Days:    days % daysPerMonth,
		Hours:   (abs % msPerDay) / msPerHour,
		Minutes: (abs % msPerHour) / msPerMinute,
		Seconds: (abs % msPerMinute) / msPerSecond,
	}

	return TimeDelta{
		IsPast:       isPast,
		Milliseconds: abs,
		TotalDays:    days,
		TotalHours:   abs / msPerHour,
		TotalMinutes: abs / msPerMinute,
		Breakdown:    b,
		Formatted:    FormatDelta(isPast, b, locale),
	}
}

// FormatDelta renders a breakdown. Smaller units are dropped once a large
// unit is present: hours need years == 0, minutes need years and months
// == 0, seconds need years, months and days == 0.
func FormatDelta(isPast bool, b Breakdown, locale Locale) string {
	var parts []string
	if b.Years > 0 {
		parts = append(parts, fmt.Sprintf(locale.Years, b.Years))
	}
	if b.Months > 0 {
		parts = append(parts, fmt.Sprintf(locale.Months, b.Months))
	}
	if b.Days > 0 {
		parts = append(parts, fmt.Sprintf(locale.Days, b.Days))
	}
	if b.Hours > 0 && b.Years == 0 {
		parts = append(parts, fmt.Sprintf(locale.Hours, b.Hours))
	}
	if b.Minutes > 0 && b.Years == 0 && b.Months == 0 {
		parts = append(parts, fmt.Sprintf(locale.Minutes, b.Minutes))
	}
	if b.Seconds > 0 && b.Years == 0 && b.Months == 0 && b.Days == 0 {
		parts = append(parts, fmt.Sprintf(locale.Seconds, b.Seconds))
	}

	text := locale.Zero
	if len(parts) > 0 {
		text = strings.Join(parts, locale.Separator)
	}

	if isPast {
		return fmt.Sprintf(locale.Past, text)
	}
	return fmt.Sprintf(locale.Future, text)
}

// Occurrence is the nearest non-past instance of a recurring month/day.
type Occurrence struct {
	TimeDelta
	Year int          `json:"nextYear"`
	Date CalendarDate `json:"nextDate"`
	Text string       `json:"nextDateText"`
}
