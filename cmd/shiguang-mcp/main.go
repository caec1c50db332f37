package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "shiguang/internal/adapters/mcp"
	"shiguang/internal/bootstrap"
	"shiguang/internal/config"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "path to the config file")
	dbFlag := flag.String("db", "", "path to the database (overrides the config)")
	flag.Parse()

	rt, err := bootstrap.Open(*configFlag, *dbFlag)
	if err != nil {
		log.Fatalf("shiguang-mcp: %v", err)
	}
	defer rt.Close()

	mcpServer := server.NewMCPServer(
		"shiguang-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	deps := mcpadapter.Deps{Store: rt.Store, Cal: rt.Cal, Env: rt.Env}
	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	rt.Logger.Info("serving MCP over stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		rt.Close()
		log.Fatalf("shiguang-mcp: %v", err)
	}
}
