package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shiguang/internal/application/commands"
	"shiguang/internal/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change theme, accent color and locale",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := commands.NewGetSettingsCommand(rt.Store).Execute(context.Background())
		if err != nil {
			return err
		}
		printSettings(cmd, s)
		return nil
	},
}

var settingsThemeCmd = &cobra.Command{
	Use:       "theme <light|dark>",
	Short:     "Set the theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd, args[0], "", "")
	},
}

var settingsColorCmd = &cobra.Command{
	Use:   "color <name>",
	Short: "Set the accent color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd, "", args[0], "")
	},
}

var settingsLocaleCmd = &cobra.Command{
	Use:       "locale <zh|en>",
	Short:     "Set the countdown text language",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"zh", "en"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd, "", "", args[0])
	},
}

func updateSettings(cmd *cobra.Command, theme, color, locale string) error {
	s, err := commands.NewUpdateSettingsCommand(rt.Store, theme, color, locale).Execute(context.Background())
	if err != nil {
		return err
	}
	printSettings(cmd, s)
	return nil
}

func printSettings(cmd *cobra.Command, s domain.Settings) {
	w := out(cmd)
	fmt.Fprintf(w, "theme:  %s\n", s.Theme)
	fmt.Fprintf(w, "color:  %s\n", s.PrimaryColor)
	fmt.Fprintf(w, "locale: %s\n", s.Locale)
}

func init() {
	var names string
	for i, c := range domain.PrimaryColors {
		if i > 0 {
			names += ", "
		}
		names += c.ID + " (" + c.Name + ")"
	}
	settingsColorCmd.Long = "Set the accent color. Available: " + names

	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsThemeCmd, settingsColorCmd, settingsLocaleCmd)
}
