package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"shiguang/internal/adapters/httpapi"
	"shiguang/internal/adapters/password"
	"shiguang/internal/bootstrap"
	"shiguang/internal/config"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "path to the config file")
	dbFlag := flag.String("db", "", "path to the database (overrides the config)")
	addrFlag := flag.String("addr", "", "listen address (overrides the config)")
	flag.Parse()

	if err := run(*configFlag, *dbFlag, *addrFlag); err != nil {
		fmt.Fprintf(os.Stderr, "shiguang-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dbPath, addr string) error {
	rt, err := bootstrap.Open(configPath, dbPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	if addr == "" {
		addr = rt.Config.Server.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpapi.New(httpapi.Deps{
		Store:     rt.Store,
		Cal:       rt.Cal,
		Env:       rt.Env,
		Hasher:    password.NewBcrypt(0),
		DBPath:    rt.Store.Path(),
		YearStart: rt.Config.YearRange.Start,
		YearEnd:   rt.Config.YearRange.End,
	}, rt.Logger)

	rt.Logger.Info("listening", zap.String("addr", addr))
	return srv.ListenAndServe(ctx, addr)
}
