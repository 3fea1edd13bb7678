package subscriber

import (
	"context"

	"github.com/amformscst/backend/internal/eventbus"
	"github.com/amformscst/backend/internal/pkg/variables"
	"k8s.io/klog/v2"
)

// NotebookEventSubscriber 笔记本变化时作废变量注册表
type NotebookEventSubscriber struct {
	registry *variables.Registry
}

func NewNotebookEventSubscriber(registry *variables.Registry) *NotebookEventSubscriber {
	return &NotebookEventSubscriber{registry: registry}
}

func (s *NotebookEventSubscriber) Register(bus *eventbus.NotebookEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.NotebookEventSelectionChanged, s.handleNotebookChanged)
	bus.Subscribe(eventbus.NotebookEventReplaced, s.handleNotebookChanged)
}

func (s *NotebookEventSubscriber) handleNotebookChanged(ctx context.Context, event eventbus.NotebookEvent) error {
	s.registry.Invalidate()
	klog.V(6).Infof("笔记本事件处理成功: type=%s, noteID=%s", event.Type, event.NoteID)
	return nil
}
