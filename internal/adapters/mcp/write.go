package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/multierr"

	"sportspack/internal/application/commands"
)

// RegisterWriteTools adds all tools that modify the hierarchy to the MCP server.
func RegisterWriteTools(s *server.MCPServer, svc Services) {
	s.AddTool(syncEventsTool(), syncEventsHandler(svc))
	s.AddTool(setAttributeTool(), setAttributeHandler(svc))
	s.AddTool(createTool(), createHandler(svc))
}

// --- sync_events ---

func syncEventsTool() mcp.Tool {
	return mcp.NewTool("sync_events",
		mcp.WithDescription("Fetch upcoming events for a container from its inherited provider and create or update one child container per event."),
		mcp.WithString("container_id",
			mcp.Description("Container node ID"),
			mcp.Required(),
		),
		mcp.WithNumber("days",
			mcp.Description("Days ahead to fetch. Omit for the configured default."),
		),
		mcp.WithString("provider",
			mcp.Description("Provider to use instead of the inherited one"),
		),
	)
}

func syncEventsHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		days := req.GetInt("days", 0)
		if days == 0 {
			days = svc.DefaultDays
		}

		cmd := commands.NewSyncEventsCommand(svc.Engine,
			req.GetString("container_id", ""),
			days,
			req.GetString("provider", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		for _, e := range multierr.Errors(result.Errors) {
			fmt.Fprintf(&sb, "\n%s", e)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- set_attribute ---

func setAttributeTool() mcp.Tool {
	return mcp.NewTool("set_attribute",
		mcp.WithDescription("Set an attribute on a node. An empty value clears it so it is inherited again."),
		mcp.WithString("node_id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
		mcp.WithString("attribute",
			mcp.Description("logo, remote_provider or remote_id"),
			mcp.Required(),
		),
		mcp.WithString("value",
			mcp.Description("New value; omit to clear"),
		),
	)
}

func setAttributeHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetAttributeCommand(svc.Store, svc.Resolver,
			req.GetString("node_id", ""),
			req.GetString("attribute", ""),
			req.GetString("value", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- create ---

func createTool() mcp.Tool {
	return mcp.NewTool("create",
		mcp.WithDescription("Create a node. Without a parent a root category is created."),
		mcp.WithString("parent_id",
			mcp.Description("Parent container ID. Omit to create a root."),
		),
		mcp.WithString("type",
			mcp.Description("Node type"),
			mcp.Enum("unit", "team", "person", "venue"),
		),
		mcp.WithString("title",
			mcp.Description("Title of the new node"),
			mcp.Required(),
		),
	)
}

func createHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateNodeCommand(svc.Store, svc.Resolver,
			req.GetString("parent_id", ""),
			req.GetString("type", ""),
			req.GetString("title", ""),
			nil,
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
