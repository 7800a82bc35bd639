package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"sportspack/internal/application/commands"
	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// Services are the collaborators the tools run against
type Services struct {
	Store     ports.TreeStore
	Lister    ports.TreeLister
	Resolver  ports.AttributeResolver
	Engine    *commands.SyncEngine
	Providers commands.ProviderCatalog
	// DefaultDays is the sync window used when a call gives none
	DefaultDays int
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, svc Services) {
	s.AddTool(resolveTool(), resolveHandler(svc))
	s.AddTool(levelTool(), levelHandler(svc))
	s.AddTool(showTool(), showHandler(svc))
	s.AddTool(treeTool(), treeHandler(svc))
	s.AddTool(providersTool(), providersHandler(svc))
}

// --- resolve ---

func resolveTool() mcp.Tool {
	return mcp.NewTool("resolve",
		mcp.WithDescription("Resolve the effective value of an attribute on a node. Unset attributes are inherited from the nearest ancestor container that sets them."),
		mcp.WithString("node_id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
		mcp.WithString("attribute",
			mcp.Description("Attribute to resolve"),
			mcp.Required(),
			mcp.Enum(domain.AttrLogo.Key(), domain.AttrRemoteProvider.Key(), domain.AttrRemoteID.Key()),
		),
	)
}

func resolveHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewResolveAttributeCommand(svc.Resolver,
			req.GetString("node_id", ""),
			req.GetString("attribute", ""),
		)
		value, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if value == "" {
			return mcp.NewToolResultText("(unset)"), nil
		}
		return mcp.NewToolResultText(value), nil
	}
}

// --- level ---

func levelTool() mcp.Tool {
	return mcp.NewTool("level",
		mcp.WithDescription("Get the hierarchy level of a container: 0 Category, 1 Grouping, 2 Item, -1 Unknown."),
		mcp.WithString("node_id",
			mcp.Description("Container node ID"),
			mcp.Required(),
		),
	)
}

func levelHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("node_id", "")
		if id == "" {
			return toolError(fmt.Errorf("node_id is required"))
		}

		level, err := svc.Resolver.HierarchyLevel(ctx, id)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%d %s", level, domain.HierarchyLabel(level))), nil
	}
}

// --- show ---

func showTool() mcp.Tool {
	return mcp.NewTool("show",
		mcp.WithDescription("Show a node with its own and effective attribute values."),
		mcp.WithString("node_id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
	)
}

func showHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewShowNodeCommand(svc.Store, svc.Resolver, req.GetString("node_id", ""))
		details, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		n := details.Node
		fmt.Fprintf(&sb, "%s  %s\n", n.ID, n.Title)
		fmt.Fprintf(&sb, "type: %s\n", n.Type)
		if n.HasParent() {
			fmt.Fprintf(&sb, "parent: %s\n", n.ParentID)
		}
		fmt.Fprintf(&sb, "level: %d %s\n", details.Level, details.Label)
		for _, v := range details.Values {
			switch {
			case v.Effective == "":
				fmt.Fprintf(&sb, "%s: (unset)\n", v.Attribute.Key())
			case v.Inherited():
				fmt.Fprintf(&sb, "%s: %s (inherited)\n", v.Attribute.Key(), v.Effective)
			default:
				fmt.Fprintf(&sb, "%s: %s\n", v.Attribute.Key(), v.Effective)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the container hierarchy as a tree."),
		mcp.WithString("root_id",
			mcp.Description("Container to start from. Omit for the whole hierarchy."),
		),
	)
}

func treeHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewBuildTreeCommand(svc.Store, svc.Lister, req.GetString("root_id", ""))
		forest, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(forest) == 0 {
			return mcp.NewToolResultText("No containers."), nil
		}

		var sb strings.Builder
		for _, root := range forest {
			renderTree(&sb, root)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, root *domain.TreeNode) {
	for _, node := range root.Flatten() {
		fmt.Fprintf(sb, "%s%s  %s\n", strings.Repeat("  ", node.Depth()), node.Node.ID, node.Node.Title)
	}
}

// --- providers ---

func providersTool() mcp.Tool {
	return mcp.NewTool("providers",
		mcp.WithDescription("List registered providers and whether they have credentials."),
	)
}

func providersHandler(svc Services) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		infos, err := commands.NewListProvidersCommand(svc.Providers).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, p := range infos {
			status := "no credentials"
			if p.Configured {
				status = "configured"
			}
			fmt.Fprintf(&sb, "%s  %s\n", p.Name, status)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
