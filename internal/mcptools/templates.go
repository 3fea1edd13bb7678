package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amformscst/backend/internal/model"
	"github.com/amformscst/backend/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListTemplatesTool list_templates
type ListTemplatesTool struct {
	templates service.TemplateEnforcer
}

func NewListTemplatesTool(templates service.TemplateEnforcer) *ListTemplatesTool {
	return &ListTemplatesTool{templates: templates}
}

func (t *ListTemplatesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_templates",
		mcp.WithDescription("List the saved text templates with their ids, types and plain text."),
		mcp.WithString("type",
			mcp.Description("Optional template type filter: PublishComments, InternalComments, ClosureComments, Email or Other."),
		),
	)
}

func (t *ListTemplatesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := strings.TrimSpace(req.GetString("type", ""))
	var typ model.TemplateType
	if filter != "" {
		parsed, ok := model.ParseTemplateType(filter)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown template type %q", filter)), nil
		}
		typ = parsed
	}

	var sb strings.Builder
	count := 0
	for _, tpl := range t.templates.Templates() {
		if filter != "" && tpl.Type != typ {
			continue
		}
		count++
		sb.WriteString(fmt.Sprintf("### %s\n\n", tpl.Name))
		sb.WriteString(fmt.Sprintf("- **ID**: %s\n", tpl.ID))
		sb.WriteString(fmt.Sprintf("- **Type**: %s\n", tpl.Type))
		if tpl.Description != "" {
			sb.WriteString(fmt.Sprintf("- **Description**: %s\n", tpl.Description))
		}
		sb.WriteString("\n```\n")
		sb.WriteString(strings.TrimRight(tpl.PlainText(), "\r\n"))
		sb.WriteString("\n```\n\n")
	}
	if count == 0 {
		return mcp.NewToolResultText("No templates found."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("## Templates (%d)\n\n", count) + sb.String()), nil
}

// RenderTemplateTool render_template
type RenderTemplateTool struct {
	render service.RenderService
}

func NewRenderTemplateTool(render service.RenderService) *RenderTemplateTool {
	return &RenderTemplateTool{render: render}
}

func (t *RenderTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("render_template",
		mcp.WithDescription("Render a text template against the currently selected note. "+
			"Variables are filled in order of appearance; overrides replace them by position."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Template id"),
		),
		mcp.WithArray("overrides",
			mcp.Description("Optional positional values; an empty string keeps the current value"),
			mcp.WithStringItems(),
		),
	)
}

func (t *RenderTemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	text, err := t.render.Render(id, stringListArg(req, "overrides"))
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("template %s not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to render template: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
