package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shiguang/internal/adapters/clipboard"
	"shiguang/internal/adapters/tui"
	"shiguang/internal/adapters/tui/views"
	"shiguang/internal/bootstrap"
	"shiguang/internal/config"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "path to the config file")
	dbFlag := flag.String("db", "", "path to the database (overrides the config)")
	flag.Parse()

	rt, err := bootstrap.Open(*configFlag, *dbFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	app := tui.NewApp(views.Deps{
		Store:     rt.Store,
		Cal:       rt.Cal,
		Env:       rt.Env,
		Clipboard: clipboard.New(),
		YearStart: rt.Config.YearRange.Start,
		YearEnd:   rt.Config.YearRange.End,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		rt.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
