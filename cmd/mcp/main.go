// MCP 服务入口，stdio 传输；日志写到 stderr，不干扰协议输出
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"k8s.io/klog/v2"

	"github.com/amformscst/backend/config"
	"github.com/amformscst/backend/internal/app"
	"github.com/amformscst/backend/internal/mcptools"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	a, cleanup, err := app.New(config.GetConfig())
	if err != nil {
		return fmt.Errorf("creating services: %w", err)
	}
	defer cleanup()

	s := mcptools.NewServer(
		mcptools.NewListTemplatesTool(a.Templates),
		mcptools.NewRenderTemplateTool(a.Render),
		mcptools.NewScanVariablesTool(a.Render),
		mcptools.NewFormgenSummaryTool(a.Formgen),
	)
	klog.V(6).Infof("MCP 服务启动: version=%s", mcptools.Version)
	return server.ServeStdio(s)
}
