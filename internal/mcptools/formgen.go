package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/amformscst/backend/internal/pkg/formgen"
	"github.com/amformscst/backend/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// FormgenSummaryTool formgen_summary
type FormgenSummaryTool struct {
	formgen service.FormgenService
}

func NewFormgenSummaryTool(formgen service.FormgenService) *FormgenSummaryTool {
	return &FormgenSummaryTool{formgen: formgen}
}

func (t *FormgenSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("formgen_summary",
		mcp.WithDescription("Summarize a .formgen form definition: title, category, page and field counts, code lines and valid states. "+
			"Pass either a file path or the raw XML."),
		mcp.WithString("path",
			mcp.Description("Path to a .formgen file"),
		),
		mcp.WithString("xml",
			mcp.Description("Raw .formgen XML content"),
		),
	)
}

func (t *FormgenSummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := strings.TrimSpace(req.GetString("path", ""))
	raw := req.GetString("xml", "")

	var doc *formgen.DotFormgen
	var err error
	switch {
	case raw != "":
		doc, err = formgen.Parse([]byte(raw))
	case path != "":
		doc, err = t.formgen.Load(path)
	default:
		return mcp.NewToolResultError("either 'path' or 'xml' is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read form: %v", err)), nil
	}

	s := t.formgen.Summary(doc)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", s.Title))
	sb.WriteString(fmt.Sprintf("- **UUID**: %s\n", s.UUID))
	sb.WriteString(fmt.Sprintf("- **Category**: %s\n", s.Category))
	sb.WriteString(fmt.Sprintf("- **Format**: %s\n", s.Format))
	sb.WriteString(fmt.Sprintf("- **Pages**: %d\n", s.PageCount))
	sb.WriteString(fmt.Sprintf("- **Fields**: %d\n", s.FieldCount))
	sb.WriteString(fmt.Sprintf("- **Code lines**: %d init, %d prompt, %d post\n", s.InitCount, s.PromptCount, s.PostCount))
	if len(s.States) > 0 {
		sb.WriteString(fmt.Sprintf("- **Valid states**: %s\n", strings.Join(s.States, ", ")))
	} else {
		sb.WriteString("- **Valid states**: none\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
