package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/window-qr/internal/output"
	"github.com/mj1618/window-qr/internal/platform"
	"github.com/mj1618/window-qr/internal/report"
	"github.com/mj1618/window-qr/internal/version"
)

// mcpServer wraps the MCP server with the platform provider.
type mcpServer struct {
	provider   *platform.Provider
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// newMCPServer creates and configures an MCP server with all window-qr tools.
func newMCPServer(provider *platform.Provider) *mcpServer {
	s := &mcpServer{provider: provider}
	s.mcp = mcpserver.NewMCPServer(
		"window-qr",
		version.Version,
	)
	s.registerTools()
	return s
}

// serve blocks serving MCP requests over stdin and stdout.
func (s *mcpServer) serve() error {
	return mcpserver.ServeStdio(s.mcp)
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List desktop windows. By default only windows of the configured owner above the minimum size are returned."),
			mcp.WithString("owner", mcp.Description("Owner (application) name substring")),
			mcp.WithNumber("min_width", mcp.Description("Ignore windows not wider than this")),
			mcp.WithNumber("min_height", mcp.Description("Ignore windows not taller than this")),
			mcp.WithBoolean("all", mcp.Description("List every window, ignoring owner and size")),
			mcp.WithBoolean("apps", mcp.Description("Return distinct owner names instead of windows")),
		),
		s.handleListWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("scan_windows",
			mcp.WithDescription("Capture every target window, save the screenshots and decode QR codes. Returns the run summary with decoded payloads per window."),
			mcp.WithString("owner", mcp.Description("Owner (application) name substring")),
			mcp.WithNumber("min_width", mcp.Description("Ignore windows not wider than this")),
			mcp.WithNumber("min_height", mcp.Description("Ignore windows not taller than this")),
			mcp.WithBoolean("annotate", mcp.Description("Also save screenshots with decoded QR codes outlined")),
		),
		s.handleScanWindows,
	)

	s.mcp.AddTool(
		mcp.NewTool("decode_image",
			mcp.WithDescription("Decode QR codes from an image file on disk"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Path of the image file")),
		),
		s.handleDecodeImage,
	)
}

// listOptionsParam overrides the configured target window options with any
// owner/min_width/min_height arguments.
func listOptionsParam(params map[string]interface{}, opts platform.ListOptions) platform.ListOptions {
	opts.Owner = stringParam(params, "owner", opts.Owner)
	opts.MinWidth = intParam(params, "min_width", opts.MinWidth)
	opts.MinHeight = intParam(params, "min_height", opts.MinHeight)
	return opts
}

func (s *mcpServer) handleListWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	opts := listOptionsParam(params, cfg.ListOptions())
	all := boolParam(params, "all", false)
	apps := boolParam(params, "apps", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	result, err := listWindows(ctx, s.provider.Lister, opts, all, apps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.MarshalYAML(result)), nil
}

func (s *mcpServer) handleScanWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	opts := pipelineOptions()
	opts.List = listOptionsParam(params, opts.List)
	opts.Annotate = boolParam(params, "annotate", opts.Annotate)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	summary := newRunner(s.provider, report.NewPrinter(io.Discard)).Run(ctx, opts)
	return mcp.NewToolResultText(output.MarshalYAML(summary)), nil
}

func (s *mcpServer) handleDecodeImage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := stringParam(request.GetArguments(), "path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	reports := decodeImages(newScanner(), []string{path}, report.NewPrinter(io.Discard))
	r := reports[0]
	if r.Error != "" {
		return mcp.NewToolResultError(fmt.Sprintf("open %s: %s", path, r.Error)), nil
	}
	return mcp.NewToolResultText(output.MarshalYAML(r)), nil
}

// Parameter extraction helpers for tool arguments

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}
