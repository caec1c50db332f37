package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shiguang/internal/application"
	"shiguang/internal/application/cascade"
	"shiguang/internal/domain"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Convert dates and browse the lunar calendar",
}

var calendarConvertCmd = &cobra.Command{
	Use:   "convert <date>",
	Short: "Convert a date to the other calendar",
	Long: `Convert a solar date to lunar or a lunar date to solar.

Examples:
  shiguang-cli calendar convert 2024-02-10
  shiguang-cli calendar convert L2023-闰02-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := application.ParseDate(args[0])
		if err != nil {
			return err
		}
		var other domain.CalendarDate
		if d.Kind == domain.KindLunar {
			other, err = rt.Cal.ToSolar(d)
		} else {
			other, err = rt.Cal.ToLunar(d)
		}
		if err != nil {
			return err
		}
		text, err := rt.Cal.Format(other, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "%s  %s\n", other, text)
		return nil
	},
}

var calendarMonthsCmd = &cobra.Command{
	Use:   "months <lunar-year>",
	Short: "List the months of a lunar year, leap month included",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		if err := domain.CheckRange(domain.Lunar(year, 1, 1)); err != nil {
			return err
		}
		printOptions(cmd, cascade.LunarMonths(rt.Cal, year))
		return nil
	},
}

var calendarDaysCmd = &cobra.Command{
	Use:   "days <lunar-year> <month>",
	Short: "List the days of a lunar month",
	Long: `List the days of a lunar month. A negative month is the leap month;
put -- before it so it is not read as a flag.

Examples:
  shiguang-cli calendar days 2024 8
  shiguang-cli calendar days 2023 -- -2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid month %q", args[1])
		}
		if err := rt.Cal.Validate(domain.Lunar(year, month, 1)); err != nil {
			return err
		}
		printOptions(cmd, cascade.LunarDays(rt.Cal, year, month))
		return nil
	},
}

var calendarNextCmd = &cobra.Command{
	Use:   "next <month> <day>",
	Short: "Find the next occurrence of a month and day",
	Long: `Find the next occurrence of a month and day from today.

On the lunar calendar a month/day missing from this year (a 30th in a
29-day month, a leap month) is looked up in the next year.

Examples:
  shiguang-cli calendar next 5 20
  shiguang-cli calendar next 8 15 --lunar`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		month, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid month %q", args[0])
		}
		day, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid day %q", args[1])
		}
		kind := domain.KindSolar
		if eventLunar {
			kind = domain.KindLunar
		}
		occ, ok := cascade.NextOccurrence(rt.Cal, rt.Env, kind, month, day)
		if !ok {
			fmt.Fprintln(out(cmd), "No upcoming occurrence")
			return nil
		}
		fmt.Fprintf(out(cmd), "%s  %s (%d days)\n", occ.Text, occ.Formatted, occ.TotalDays)
		return nil
	},
}

var calendarAlmanacCmd = &cobra.Command{
	Use:   "almanac [date]",
	Short: "Describe a day: week day, zodiac, festivals and solar term",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := domain.SolarFromTime(rt.Env.Clock.Now().In(rt.Env.Loc()))
		if len(args) == 1 {
			var err error
			if d, err = application.ParseDate(args[0]); err != nil {
				return err
			}
		}
		a, err := rt.Cal.Almanac(d)
		if err != nil {
			return err
		}

		w := out(cmd)
		fmt.Fprintf(w, "%s  %s\n", a.Solar, a.Week)
		fmt.Fprintf(w, "%s  %s\n", a.LunarText, a.Zodiac)
		if a.SolarTerm != "" {
			fmt.Fprintf(w, "solar term: %s\n", a.SolarTerm)
		}
		if len(a.Festivals) > 0 {
			fmt.Fprintf(w, "festivals: %s\n", strings.Join(a.Festivals, ", "))
		}
		if a.IsLeapYear {
			fmt.Fprintln(w, "leap year")
		}
		return nil
	},
}

var countdownCmd = &cobra.Command{
	Use:   "countdown <date>",
	Short: "Show the time from now to a date",
	Long: `Show the time from now to the midnight starting a date.

Examples:
  shiguang-cli countdown 2025-01-29
  shiguang-cli countdown L2025-01-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := parseDateFlag(args[0])
		if err != nil {
			return err
		}
		delta, err := cascade.TimeFromNow(rt.Cal, rt.Env, d)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "%s (%d days)\n", delta.Formatted, delta.TotalDays)
		return nil
	},
}

func printOptions(cmd *cobra.Command, opts []domain.Option) {
	for _, o := range opts {
		fmt.Fprintf(out(cmd), "%3d  %s\n", o.Value, o.Label)
	}
}

func init() {
	rootCmd.AddCommand(calendarCmd, countdownCmd)
	calendarCmd.AddCommand(calendarConvertCmd, calendarMonthsCmd, calendarDaysCmd, calendarNextCmd, calendarAlmanacCmd)

	calendarNextCmd.Flags().BoolVarP(&eventLunar, "lunar", "l", false, "month and day are lunar")
	countdownCmd.Flags().BoolVarP(&eventLunar, "lunar", "l", false, "interpret the date on the lunar calendar")
}
