// Package mcptools MCP 工具，供 AI 助手查询模板、渲染文本和查看表单。
//
// 每个工具一个结构体，依赖通过构造函数注入；Definition 返回工具定义，
// Handle 处理调用。业务错误以工具错误结果返回，不作为协议错误。
package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version MCP 服务版本
const Version = "0.3.0"

// intArg JSON 数字解码为 float64
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// stringListArg 读取字符串数组参数，非字符串元素按空串处理
func stringListArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		if s, ok := item.(string); ok {
			out[i] = s
		}
	}
	return out
}

// Tool 工具定义与处理函数
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// NewServer 创建 MCP 服务并注册工具
func NewServer(tools ...Tool) *server.MCPServer {
	s := server.NewMCPServer(
		"amformscst",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	for _, tool := range tools {
		s.AddTool(tool.Definition(), tool.Handle)
	}
	return s
}
