package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shiguang/internal/application/commands"
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Show activity, streak and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := commands.NewRewardsCommand(rt.Store, rt.Store, rt.Store, rt.Env.Clock).Execute(context.Background())
		if err != nil {
			return err
		}

		w := out(cmd)
		if p.User != nil {
			fmt.Fprintf(w, "%s, %d days with 时光刻\n", p.User.Name, p.TotalDays)
		}
		fmt.Fprintf(w, "activity: %s%s\n", strings.Repeat("★", p.ActivityLevel), strings.Repeat("☆", 10-p.ActivityLevel))
		fmt.Fprintf(w, "streak:   %d days\n", p.Streak)
		if len(p.Badges) > 0 {
			fmt.Fprintf(w, "badges:   %s\n", strings.Join(p.Badges, ", "))
		}
		for _, a := range p.Achievements {
			mark := " "
			if a.Unlocked {
				mark = "✓"
			}
			fmt.Fprintf(w, "[%s] %-8s %3d%%  %s\n", mark, a.Name, a.Progress, a.Description)
		}
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Post reminder messages for events that are due",
	RunE: func(cmd *cobra.Command, args []string) error {
		due, err := commands.NewDueRemindersCommand(rt.Store, rt.Cal, rt.Env).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Fprintln(out(cmd), "Nothing due")
			return nil
		}
		for _, r := range due {
			fmt.Fprintf(out(cmd), "%s  %s  in %d days\n", r.Due, r.Event.Title, r.DaysTo)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rewardsCmd, remindCmd)
}
