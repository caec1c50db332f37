package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shiguang/internal/adapters/editor"
	"shiguang/internal/application"
	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

var (
	eventLunar        bool
	eventType         string
	eventCategory     string
	eventReminder     string
	eventDescription  string
	eventParticipants []string

	editTitle string
	editDate  string
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage countdowns and anniversaries",
}

var eventAddCmd = &cobra.Command{
	Use:   "add <title> <date>",
	Short: "Record a new event",
	Long: `Record a new countdown or anniversary.

Examples:
  shiguang-cli event add 高考 2025-06-07 --category 学习 --reminder 1w
  shiguang-cli event add 妈妈生日 2024-08-15 --lunar --type anniversary --category 生日
  shiguang-cli event add 结婚纪念日 2019-05-20 -t anniversary --with 小明 --with 小红`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := eventFromFlags(args[0], args[1])
		if err != nil {
			return err
		}

		ctx := context.Background()
		if u, err := commands.NewCurrentUserCommand(rt.Store, rt.Store).Execute(ctx); err == nil {
			e.OwnerID = u.ID
		}

		result, err := commands.NewAddEventCommand(rt.Store, rt.Cal, rt.Env.Clock, e).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), result.Message)
		fmt.Fprintln(out(cmd), result.Event.ID)
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List events, soonest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := domain.EventFilter{Category: eventCategory}
		if eventType != "" {
			t, err := domain.ParseEventType(eventType)
			if err != nil {
				return err
			}
			filter.Type = t
		}

		statuses, err := commands.NewListEventsCommand(rt.Store, rt.Cal, rt.Env, filter).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(statuses) == 0 {
			fmt.Fprintln(out(cmd), "No events")
			return nil
		}
		for _, st := range statuses {
			fmt.Fprintf(out(cmd), "%s  %-12s %s  %s\n", shortID(st.Event.ID), st.Event.Date, st.Event.Title, st.Summary)
		}
		return nil
	},
}

var eventShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an event with its live countdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := resolveEventID(ctx, args[0])
		if err != nil {
			return err
		}
		st, err := commands.NewEventStatusCommand(rt.Store, rt.Cal, rt.Env, id).Execute(ctx)
		if err != nil {
			return err
		}

		e := st.Event
		w := out(cmd)
		fmt.Fprintf(w, "%s\n", e.Title)
		fmt.Fprintf(w, "  id:        %s\n", e.ID)
		fmt.Fprintf(w, "  date:      %s (solar %s)\n", e.Date, st.SolarDate)
		fmt.Fprintf(w, "  type:      %s\n", e.Type)
		fmt.Fprintf(w, "  category:  %s\n", e.Category)
		fmt.Fprintf(w, "  reminder:  %s\n", e.Reminder.Label())
		if len(e.Participants) > 0 {
			fmt.Fprintf(w, "  with:      %s\n", strings.Join(e.Participants, ", "))
		}
		if e.Description != "" {
			fmt.Fprintf(w, "  note:      %s\n", e.Description)
		}
		fmt.Fprintf(w, "  countdown: %s\n", st.Summary)
		if st.Next != nil {
			fmt.Fprintf(w, "  next:      %s (%s)\n", st.Next.Text, st.Next.Formatted)
		}
		return nil
	},
}

var eventRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete an event",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := resolveEventID(ctx, args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteEventCommand(rt.Store, id).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), result.Message)
		return nil
	},
}

var eventEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of an event",
	Long: `Change fields of an event. Only the flags given are applied.

Examples:
  shiguang-cli event edit 3f2a --title 期末考试 --reminder 3d
  shiguang-cli event edit 3f2a --date 2024-08-15 --lunar`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := resolveEventID(ctx, args[0])
		if err != nil {
			return err
		}
		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}
		result, err := commands.NewUpdateEventCommand(rt.Store, rt.Cal, id, patch).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), result.Message)
		return nil
	},
}

var eventNoteCmd = &cobra.Command{
	Use:   "note <id>",
	Short: "Edit the description of an event in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, err := resolveEventID(ctx, args[0])
		if err != nil {
			return err
		}
		e, err := rt.Store.GetEvent(ctx, id)
		if err != nil {
			return err
		}

		text, err := editor.New(rt.Config.Editor).Edit(e.Description)
		if err != nil {
			return err
		}
		if text == e.Description {
			fmt.Fprintln(out(cmd), "Note unchanged")
			return nil
		}

		result, err := commands.NewUpdateEventCommand(rt.Store, rt.Cal, id, commands.EventPatch{Description: &text}).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), result.Message)
		return nil
	},
}

func eventFromFlags(title, date string) (domain.Event, error) {
	d, err := parseDateFlag(date)
	if err != nil {
		return domain.Event{}, err
	}
	t, err := domain.ParseEventType(eventType)
	if err != nil {
		return domain.Event{}, err
	}
	r, err := domain.ParseReminder(eventReminder)
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		Title:        title,
		Date:         d,
		Type:         t,
		Category:     eventCategory,
		Reminder:     r,
		Description:  eventDescription,
		Participants: eventParticipants,
	}, nil
}

func patchFromFlags(cmd *cobra.Command) (commands.EventPatch, error) {
	var patch commands.EventPatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		patch.Title = &editTitle
	}
	if flags.Changed("date") {
		d, err := parseDateFlag(editDate)
		if err != nil {
			return patch, err
		}
		patch.Date = &d
	}
	if flags.Changed("type") {
		t, err := domain.ParseEventType(eventType)
		if err != nil {
			return patch, err
		}
		patch.Type = &t
	}
	if flags.Changed("category") {
		patch.Category = &eventCategory
	}
	if flags.Changed("reminder") {
		r, err := domain.ParseReminder(eventReminder)
		if err != nil {
			return patch, err
		}
		patch.Reminder = &r
	}
	if flags.Changed("desc") {
		patch.Description = &eventDescription
	}
	if flags.Changed("with") {
		patch.Participants = &eventParticipants
	}
	return patch, nil
}

func parseDateFlag(s string) (domain.CalendarDate, error) {
	kind := domain.KindSolar
	if eventLunar {
		kind = domain.KindLunar
	}
	return application.ParseDateAs(s, kind)
}

// resolveEventID accepts a full ID or a unique prefix of one.
func resolveEventID(ctx context.Context, prefix string) (string, error) {
	events, err := rt.Store.ListEvents(ctx, domain.EventFilter{})
	if err != nil {
		return "", err
	}
	var match string
	for _, e := range events {
		if e.ID == prefix {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("ambiguous event id %q", prefix)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("event %s: %w", prefix, application.ErrNotFound)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventAddCmd, eventListCmd, eventShowCmd, eventRemoveCmd, eventEditCmd, eventNoteCmd)

	for _, c := range []*cobra.Command{eventAddCmd, eventEditCmd} {
		c.Flags().BoolVarP(&eventLunar, "lunar", "l", false, "interpret the date on the lunar calendar")
		c.Flags().StringVarP(&eventType, "type", "t", "", "countdown or anniversary")
		c.Flags().StringVar(&eventCategory, "category", "", "category: "+strings.Join(domain.Categories, ", "))
		c.Flags().StringVarP(&eventReminder, "reminder", "r", "", "none, same_day, 1d, 3d, 1w or 1m")
		c.Flags().StringVarP(&eventDescription, "desc", "d", "", "description")
		c.Flags().StringSliceVar(&eventParticipants, "with", nil, "participants")
	}
	eventEditCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	eventEditCmd.Flags().StringVar(&editDate, "date", "", "new date")

	eventListCmd.Flags().StringVar(&eventCategory, "category", "", "only this category")
	eventListCmd.Flags().StringVarP(&eventType, "type", "t", "", "only this type")
}
