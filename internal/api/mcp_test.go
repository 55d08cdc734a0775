package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/avakhov/relcat/internal/catalog"
	"github.com/avakhov/relcat/internal/storage"
)

// --- helpers ---

func newTestMCPDeps(t *testing.T) MCPDeps {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return MCPDeps{
		Catalog: catalog.NewWithFallback(store, nil, store, testFallback),
	}
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func makeReadResourceRequest(uri string) mcp.ReadResourceRequest {
	return mcp.ReadResourceRequest{
		Params: mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

// --- tools ---

func TestMCPListVersions(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpListVersions(deps)

	result, err := handler(context.Background(), makeCallToolRequest("list_versions", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	var versions []versionResponse
	if err := json.Unmarshal([]byte(toolText(t, result)), &versions); err != nil {
		t.Fatalf("decoding tool output: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("got %d versions, want 2 from fallback", len(versions))
	}
}

func TestMCPListVersions_ChannelFilter(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpListVersions(deps)

	result, err := handler(context.Background(), makeCallToolRequest("list_versions", map[string]interface{}{
		"channel": "beta",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var versions []versionResponse
	if err := json.Unmarshal([]byte(toolText(t, result)), &versions); err != nil {
		t.Fatalf("decoding tool output: %v", err)
	}
	if len(versions) != 1 || versions[0].Version != "36.0.0-beta.2" {
		t.Fatalf("versions = %v", versions)
	}
}

func TestMCPDefaultVersion(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpDefaultVersion(deps)

	result, err := handler(context.Background(), makeCallToolRequest("default_version", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}
	if got := toolText(t, result); got != "37.0.0" {
		t.Fatalf("default = %q", got)
	}
}

func TestMCPAddLocalVersion(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpAddLocalVersion(deps)

	result, err := handler(context.Background(), makeCallToolRequest("add_local_version", map[string]interface{}{
		"version": "35.0.0",
		"path":    "/builds/35",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool error: %s", toolText(t, result))
	}

	locals, err := deps.Catalog.Local()
	if err != nil {
		t.Fatalf("Local: %v", err)
	}
	if len(locals) != 1 || locals[0].LocalPath != "/builds/35" {
		t.Fatalf("locals = %v", locals)
	}
}

func TestMCPAddLocalVersion_MissingArgs(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpAddLocalVersion(deps)

	result, err := handler(context.Background(), makeCallToolRequest("add_local_version", map[string]interface{}{
		"version": "35.0.0",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for missing path")
	}
}

func TestMCPCheckUpdates_NoFetcher(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpCheckUpdates(deps)

	result, err := handler(context.Background(), makeCallToolRequest("check_updates", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error without a registry client")
	}
}

// --- resources ---

func TestMCPResourceVersions(t *testing.T) {
	deps := newTestMCPDeps(t)
	handler := mcpResourceVersions(deps)

	contents, err := handler(context.Background(), makeReadResourceRequest("catalog://versions"))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents", len(contents))
	}

	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("expected TextResourceContents, got %T", contents[0])
	}
	var all []catalog.AggregatedVersion
	if err := json.Unmarshal([]byte(tc.Text), &all); err != nil {
		t.Fatalf("decoding resource: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d entries", len(all))
	}
}
