package main

import (
	"flag"
	"log"

	"k8s.io/klog/v2"

	"github.com/amformscst/backend/config"
	"github.com/amformscst/backend/internal/app"
	"github.com/amformscst/backend/internal/handler"
	"github.com/amformscst/backend/internal/router"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	a, cleanup, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	defer cleanup()

	// 初始化 Handler
	templateHandler := handler.NewTextTemplateHandler(a.Templates, a.Render)
	variableHandler := handler.NewVariableHandler(a.Render)
	notebookHandler := handler.NewNotebookHandler(a.Notebook)
	formgenHandler := handler.NewFormgenHandler(a.Formgen, cfg.Formgen.Dir)

	// 设置路由
	r := router.Setup(cfg, templateHandler, variableHandler, notebookHandler, formgenHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
