package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "sportspack/internal/adapters/mcp"
	"sportspack/internal/config"
	"sportspack/internal/di"
	"sportspack/internal/logging"
)

func main() {
	dbFlag := flag.String("db", config.DBPath(), "path to the SQLite database")
	configFlag := flag.String("config", "", "config file")
	fixturesFlag := flag.String("fixtures", "", "read provider events from a YAML fixture file")
	verboseFlag := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if err := run(*dbFlag, *configFlag, *fixturesFlag, *verboseFlag); err != nil {
		fmt.Fprintf(os.Stderr, "sportspack-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath, configPath, fixturesPath string, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}

	c, err := di.NewContainer(cfg, logger, di.Options{
		DBPath:               dbPath,
		FixturesPath:         fixturesPath,
		CacheCleanupInterval: cfg.CacheTTL,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	mcpServer := server.NewMCPServer(
		"sportspack-mcp",
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

	svc := mcpadapter.Services{
		Store:       c.Store,
		Lister:      c.Store,
		Resolver:    c.Resolver,
		Engine:      c.Engine,
		Providers:   c.Providers,
		DefaultDays: cfg.DefaultDays,
	}
	mcpadapter.RegisterReadTools(mcpServer, svc)
	mcpadapter.RegisterWriteTools(mcpServer, svc)

	logger.Info("serving MCP over stdio", zap.String("db", c.Store.Path()))
	return server.ServeStdio(mcpServer)
}
