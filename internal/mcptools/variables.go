package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/amformscst/backend/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// ScanVariablesTool scan_variables
type ScanVariablesTool struct {
	render service.RenderService
}

func NewScanVariablesTool(render service.RenderService) *ScanVariablesTool {
	return &ScanVariablesTool{render: render}
}

func (t *ScanVariablesTool) Definition() mcp.Tool {
	return mcp.NewTool("scan_variables",
		mcp.WithDescription("Find variable references such as SelectedDealer:ServerID in free text and show their current values."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to scan"),
		),
	)
}

func (t *ScanVariablesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	result := t.render.Scan(text)
	if len(result.Matches) == 0 {
		return mcp.NewToolResultText("No variables found."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Variables (%d)\n\n", len(result.Matches)))
	for _, m := range result.Matches {
		sb.WriteString(fmt.Sprintf("- `%s` at %d → **%s** = %q\n", m.Alias, m.Position, m.ProperName, m.Value))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
