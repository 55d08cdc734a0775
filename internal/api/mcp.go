package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/avakhov/relcat/internal/catalog"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Catalog *catalog.Catalog
}

// NewMCPServer creates an MCP server exposing the version catalog as tools
// and a resource.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"relcat",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("relcat — catalog of known and locally added runtime versions."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("list_versions",
			mcp.WithDescription("List all known and locally added versions with provenance, state, and release channel."),
			mcp.WithString("channel", mcp.Description("Optional channel filter: stable, beta, nightly, or unsupported")),
		),
		mcpListVersions(deps),
	)

	s.AddTool(
		mcp.NewTool("default_version",
			mcp.WithDescription("Resolve the version that should be pre-selected in a picker."),
		),
		mcpDefaultVersion(deps),
	)

	s.AddTool(
		mcp.NewTool("add_local_version",
			mcp.WithDescription("Register a locally available build in the catalog."),
			mcp.WithString("version", mcp.Description("Version tag of the local build"), mcp.Required()),
			mcp.WithString("path", mcp.Description("Filesystem path of the local build"), mcp.Required()),
			mcp.WithString("name", mcp.Description("Optional human-readable label")),
		),
		mcpAddLocalVersion(deps),
	)

	s.AddTool(
		mcp.NewTool("check_updates",
			mcp.WithDescription("Fetch the latest version list from the remote registry and update the catalog."),
		),
		mcpCheckUpdates(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"catalog://versions",
			"Version Catalog",
			mcp.WithResourceDescription("Aggregated known and local versions as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceVersions(deps),
	)

	return s
}

func mcpListVersions(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		channel := req.GetString("channel", "")

		all, err := deps.Catalog.GetAll()
		if err != nil {
			return mcpError(fmt.Sprintf("failed to load versions: %v", err)), nil
		}

		results := make([]versionResponse, 0, len(all))
		for _, v := range all {
			ch := catalog.Classify(v.VersionRecord)
			if channel != "" && string(ch) != channel {
				continue
			}
			results = append(results, versionResponse{
				Version:   v.Version,
				Name:      v.Name,
				LocalPath: v.LocalPath,
				Source:    v.Source,
				State:     v.State,
				Channel:   ch,
			})
		}

		b, err := json.Marshal(results)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpDefaultVersion(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		version, err := deps.Catalog.Default()
		if err != nil {
			return mcpError(fmt.Sprintf("no default version: %v", err)), nil
		}
		return mcpText(version), nil
	}
}

func mcpAddLocalVersion(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		version, err := req.RequireString("version")
		if err != nil {
			return mcpError("version is required"), nil
		}
		path, err := req.RequireString("path")
		if err != nil {
			return mcpError("path is required"), nil
		}
		name := req.GetString("name", "")

		locals, err := deps.Catalog.AddLocal(catalog.VersionRecord{
			Version:   version,
			Name:      name,
			LocalPath: path,
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to add local version: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Added %s (%d local versions total)", version, len(locals))), nil
	}
}

func mcpCheckUpdates(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		records, err := deps.Catalog.Refresh(ctx)
		if err != nil {
			return mcpError(fmt.Sprintf("update check failed: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Catalog refreshed: %d versions known", len(records))), nil
	}
}

func mcpResourceVersions(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		all, err := deps.Catalog.GetAll()
		if err != nil {
			return nil, fmt.Errorf("failed to load versions: %w", err)
		}

		b, err := json.Marshal(all)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal versions: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
