// Package app 按配置组装存储、事件总线和服务，HTTP 与 MCP 两个入口共用。
package app

import (
	"fmt"
	"os"

	"github.com/amformscst/backend/config"
	"github.com/amformscst/backend/internal/eventbus"
	"github.com/amformscst/backend/internal/pkg/database"
	"github.com/amformscst/backend/internal/pkg/variables"
	"github.com/amformscst/backend/internal/repository"
	"github.com/amformscst/backend/internal/service"
	"github.com/amformscst/backend/internal/subscriber"
	"k8s.io/klog/v2"
)

// App 已组装的服务
type App struct {
	Templates service.TemplateEnforcer
	Notebook  service.NotebookService
	Render    service.RenderService
	Formgen   service.FormgenService
	Registry  *variables.Registry
}

// New 创建数据目录、模板存储和各服务，返回的 cleanup 关闭数据库连接
func New(cfg *config.Config) (*App, func(), error) {
	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, cleanup, err := newTemplateStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	templateBus := eventbus.NewTemplateEventBus()
	notebookBus := eventbus.NewNotebookEventBus()

	templates := service.NewTemplateEnforcer(store, templateBus)
	notebook := service.NewNotebookService(repository.NewNoteRepository(cfg.Data.NotesFile), notebookBus)
	registry := variables.NewRegistry(notebook.Provider(), cfg.Org.LooseVariables)

	subscriber.NewNotebookEventSubscriber(registry).Register(notebookBus)
	subscriber.NewTemplateEventSubscriber().Register(templateBus)

	return &App{
		Templates: templates,
		Notebook:  notebook,
		Render:    service.NewRenderService(templates, registry),
		Formgen:   service.NewFormgenService(cfg.Formgen.BackupDir, cfg.Formgen.BackupRetention),
		Registry:  registry,
	}, cleanup, nil
}

// newTemplateStore templates.store 为 file 时使用 TextTemplates.json，否则使用数据库
func newTemplateStore(cfg *config.Config) (repository.TemplateStore, func(), error) {
	if cfg.Templates.Store == "file" {
		klog.V(6).Infof("模板存储: 文件 %s", cfg.Templates.File)
		return repository.NewTemplateFileRepository(cfg.Templates.File), func() {}, nil
	}

	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	klog.V(6).Infof("模板存储: 数据库 %s", cfg.Database.Type)

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return repository.NewTemplateRepository(db), cleanup, nil
}
