package cascade

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiguang/internal/adapters/lunar"
	"shiguang/internal/domain"
)

func TestLunarMonths_LeapPlacement(t *testing.T) {
	cal := lunar.New()

	for year := 1950; year <= 2050; year++ {
		months := LunarMonths(cal, year)
		leap := cal.LeapMonth(year)

		want := 12
		if leap > 0 {
			want = 13
		}
		require.Len(t, months, want, "months of %d", year)

		seen := map[int]bool{}
		for i, m := range months {
			require.False(t, seen[m.Value], "duplicate value %d in %d", m.Value, year)
			seen[m.Value] = true

			if m.Value < 0 {
				require.Equal(t, -leap, m.Value, "leap value in %d", year)
				require.Greater(t, i, 0)
				require.Equal(t, leap, months[i-1].Value, "leap month follows its base in %d", year)
				require.Equal(t, "闰"+months[i-1].Label, m.Label)
			}
		}
	}
}

func TestLunarMonths_KnownYears(t *testing.T) {
	cal := lunar.New()

	m2023 := LunarMonths(cal, 2023)
	require.Len(t, m2023, 13)
	assert.Equal(t, []int{1, 2, -2, 3}, values(m2023[:4]))

	m2024 := LunarMonths(cal, 2024)
	require.Len(t, m2024, 12)
	for i, m := range m2024 {
		assert.Equal(t, i+1, m.Value)
	}
}

func TestLunarDays_LengthMatchesDay30(t *testing.T) {
	cal := lunar.New()

	for year := 2000; year <= 2030; year++ {
		for _, month := range LunarMonths(cal, year) {
			days := LunarDays(cal, year, month.Value)
			n := len(days)
			require.True(t, n == 29 || n == 30, "lunar %d/%d has %d days", year, month.Value, n)

			err := cal.Validate(domain.Lunar(year, month.Value, 30))
			assert.Equal(t, n == 30, err == nil, "lunar %d/%d day 30", year, month.Value)

			assert.Equal(t, "初一", days[0].Label)
			assert.Equal(t, n, days[n-1].Value)
		}
	}
}

func TestLunarDays_MissingMonthIsNotAnError(t *testing.T) {
	cal := lunar.New()

	days := LunarDays(cal, 2024, -2)
	assert.Len(t, days, 29)
}

func TestLunarYears(t *testing.T) {
	cal := lunar.New()

	years := LunarYears(cal, 2020, 2030)
	require.Len(t, years, 11)
	assert.Equal(t, 2020, years[0].Value)
	assert.Equal(t, 2030, years[10].Value)
	assert.True(t, strings.HasSuffix(years[4].Label, "年（2024）"), years[4].Label)

	assert.Empty(t, LunarYears(cal, 2030, 2020))
}

func TestSolarOptions(t *testing.T) {
	years := SolarYears(1900, 2100)
	require.Len(t, years, 201)
	assert.Equal(t, domain.Option{Label: "1900年", Value: 1900}, years[0])

	months := SolarMonths()
	require.Len(t, months, 12)
	assert.Equal(t, "1月（一月）", months[0].Label)
	assert.Equal(t, "12月（十二月）", months[11].Label)

	tests := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 1, 31},
	}
	for _, tt := range tests {
		days := SolarDays(tt.year, tt.month)
		require.Len(t, days, tt.want, "%d-%d", tt.year, tt.month)
		assert.Equal(t, "1日", days[0].Label)
		assert.Equal(t, tt.want, days[len(days)-1].Value)
	}
}

func values(opts []domain.Option) []int {
	out := make([]int, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}
