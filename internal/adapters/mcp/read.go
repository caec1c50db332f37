package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shiguang/internal/application/cascade"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// Deps are the collaborators the tools run against. Env.Clock must be set.
type Deps struct {
	Store ports.Store
	Cal   ports.Calendar
	Env   cascade.Env
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, d Deps) {
	s.AddTool(listEventsTool(), listEventsHandler(d))
	s.AddTool(eventStatusTool(), eventStatusHandler(d))
	s.AddTool(listMessagesTool(), listMessagesHandler(d))
	s.AddTool(lunarMonthsTool(), lunarMonthsHandler(d))
	s.AddTool(lunarDaysTool(), lunarDaysHandler(d))
	s.AddTool(convertDateTool(), convertDateHandler(d))
	s.AddTool(nextOccurrenceTool(), nextOccurrenceHandler(d))
	s.AddTool(timeFromNowTool(), timeFromNowHandler(d))
	s.AddTool(almanacTool(), almanacHandler(d))
}

const dateFormatHelp = "2024-08-15 for solar, L2024-08-15 for lunar, L2023-闰02-10 for a lunar leap month"

// --- list_events ---

func listEventsTool() mcp.Tool {
	return mcp.NewTool("list_events",
		mcp.WithDescription("List events with their live countdown, soonest first."),
		mcp.WithString("category",
			mcp.Description("Only events of this category: "+strings.Join(domain.Categories, ", ")),
		),
		mcp.WithString("type",
			mcp.Description("Only events of this type: countdown or anniversary"),
		),
	)
}

func listEventsHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := domain.EventFilter{Category: req.GetString("category", "")}
		if t := req.GetString("type", ""); t != "" {
			kind, err := domain.ParseEventType(t)
			if err != nil {
				return toolError(err)
			}
			filter.Type = kind
		}

		statuses, err := commands.NewListEventsCommand(d.Store, d.Cal, d.Env, filter).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(statuses, formatStatus)
	}
}

// --- event_status ---

func eventStatusTool() mcp.Tool {
	return mcp.NewTool("event_status",
		mcp.WithDescription("Show one event with the time from now and its next occurrence."),
		mcp.WithString("id",
			mcp.Description("Event ID"),
			mcp.Required(),
		),
	)
}

func eventStatusHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		st, err := commands.NewEventStatusCommand(d.Store, d.Cal, d.Env, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		e := st.Event
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %s\n", e.ID, e.Title)
		fmt.Fprintf(&sb, "date: %s (solar %s)\n", e.Date, st.SolarDate)
		fmt.Fprintf(&sb, "type: %s  category: %s  reminder: %s\n", e.Type, e.Category, e.Reminder.Label())
		fmt.Fprintf(&sb, "time from now: %s\n", st.Delta.Formatted)
		if st.Next != nil {
			fmt.Fprintf(&sb, "next: %s (%s)\n", st.Next.Text, st.Next.Formatted)
		}
		if e.Description != "" {
			fmt.Fprintf(&sb, "\n%s\n", e.Description)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_messages ---

func listMessagesTool() mcp.Tool {
	return mcp.NewTool("list_messages",
		mcp.WithDescription("List the message feed, newest first, with the unread count."),
	)
}

func listMessagesHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		feed, err := commands.NewListMessagesCommand(d.Store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d unread\n", feed.Unread)
		for _, m := range feed.Messages {
			mark := " "
			if !m.IsRead {
				mark = "*"
			}
			fmt.Fprintf(&sb, "%s %s  %s  %s  %s\n", mark, m.ID, m.Timestamp.Format("2006-01-02 15:04"), m.Title, m.Content)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- lunar_months ---

func lunarMonthsTool() mcp.Tool {
	return mcp.NewTool("lunar_months",
		mcp.WithDescription("List the months of a lunar year, leap month included. Leap months have negative values."),
		mcp.WithNumber("year",
			mcp.Description("Lunar year (1900-2100)"),
			mcp.Required(),
		),
	)
}

func lunarMonthsHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		year := req.GetInt("year", 0)
		if err := domain.CheckRange(domain.Lunar(year, 1, 1)); err != nil {
			return toolError(err)
		}
		return formatEntities(cascade.LunarMonths(d.Cal, year), formatOption)
	}
}

// --- lunar_days ---

func lunarDaysTool() mcp.Tool {
	return mcp.NewTool("lunar_days",
		mcp.WithDescription("List the days of a lunar month (29 or 30)."),
		mcp.WithNumber("year",
			mcp.Description("Lunar year"),
			mcp.Required(),
		),
		mcp.WithNumber("month",
			mcp.Description("Lunar month, negative for the leap month"),
			mcp.Required(),
		),
	)
}

func lunarDaysHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		year := req.GetInt("year", 0)
		month := req.GetInt("month", 0)
		if err := d.Cal.Validate(domain.Lunar(year, month, 1)); err != nil {
			return toolError(err)
		}
		return formatEntities(cascade.LunarDays(d.Cal, year, month), formatOption)
	}
}

// --- convert_date ---

func convertDateTool() mcp.Tool {
	return mcp.NewTool("convert_date",
		mcp.WithDescription("Convert a date between the solar and lunar calendars."),
		mcp.WithString("date",
			mcp.Description("Date to convert: "+dateFormatHelp),
			mcp.Required(),
		),
	)
}

func convertDateHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := parseDateArg(req, "date")
		if err != nil {
			return toolError(err)
		}

		var other domain.CalendarDate
		if date.Kind == domain.KindLunar {
			other, err = d.Cal.ToSolar(date)
		} else {
			other, err = d.Cal.ToLunar(date)
		}
		if err != nil {
			return toolError(err)
		}

		text, err := d.Cal.Format(other, true)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s\n%s", other, text)), nil
	}
}

// --- next_occurrence ---

func nextOccurrenceTool() mcp.Tool {
	return mcp.NewTool("next_occurrence",
		mcp.WithDescription("Find the next time a month/day comes around, e.g. a lunar birthday."),
		mcp.WithString("calendar",
			mcp.Description("solar or lunar"),
			mcp.DefaultString("solar"),
		),
		mcp.WithNumber("month",
			mcp.Description("Month; negative for a lunar leap month"),
			mcp.Required(),
		),
		mcp.WithNumber("day",
			mcp.Description("Day of month"),
			mcp.Required(),
		),
	)
}

func nextOccurrenceHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := domain.ParseCalendarKind(req.GetString("calendar", "solar"))
		if err != nil {
			return toolError(err)
		}

		occ, ok := cascade.NextOccurrence(d.Cal, d.Env, kind, req.GetInt("month", 0), req.GetInt("day", 0))
		if !ok {
			return mcp.NewToolResultText("No upcoming occurrence."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s  %s  %s", occ.Date, occ.Text, occ.Formatted)), nil
	}
}

// --- time_from_now ---

func timeFromNowTool() mcp.Tool {
	return mcp.NewTool("time_from_now",
		mcp.WithDescription("Measure the distance between a date and now."),
		mcp.WithString("date",
			mcp.Description("Target date: "+dateFormatHelp),
			mcp.Required(),
		),
	)
}

func timeFromNowHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := parseDateArg(req, "date")
		if err != nil {
			return toolError(err)
		}

		delta, err := cascade.TimeFromNow(d.Cal, d.Env, date)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s (%d days)", delta.Formatted, delta.TotalDays)), nil
	}
}

// --- almanac ---

func almanacTool() mcp.Tool {
	return mcp.NewTool("almanac",
		mcp.WithDescription("Describe a day: lunar date, week day, zodiac sign, festivals and solar term."),
		mcp.WithString("date",
			mcp.Description("Date: "+dateFormatHelp),
			mcp.Required(),
		),
	)
}

func almanacHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := parseDateArg(req, "date")
		if err != nil {
			return toolError(err)
		}

		a, err := d.Cal.Almanac(date)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %s\n", a.Solar, a.Week)
		fmt.Fprintf(&sb, "农历 %s\n", a.LunarText)
		fmt.Fprintf(&sb, "星座 %s\n", a.Zodiac)
		if len(a.Festivals) > 0 {
			fmt.Fprintf(&sb, "节日 %s\n", strings.Join(a.Festivals, "、"))
		}
		if a.SolarTerm != "" {
			fmt.Fprintf(&sb, "节气 %s\n", a.SolarTerm)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func parseDateArg(req mcp.CallToolRequest, name string) (domain.CalendarDate, error) {
	s := req.GetString(name, "")
	if s == "" {
		return domain.CalendarDate{}, fmt.Errorf("%s is required", name)
	}
	return domain.ParseCalendarDate(s)
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatStatus(st domain.EventStatus) string {
	return fmt.Sprintf("%s  %s  %s  %s", st.Event.ID, st.Event.Title, st.Event.Date, st.Summary)
}

func formatOption(o domain.Option) string {
	return fmt.Sprintf("%d  %s", o.Value, o.Label)
}
