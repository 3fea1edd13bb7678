package subscriber

import (
	"context"

	"github.com/amformscst/backend/internal/eventbus"
	"k8s.io/klog/v2"
)

// TemplateEventSubscriber 记录模板变更
type TemplateEventSubscriber struct{}

func NewTemplateEventSubscriber() *TemplateEventSubscriber {
	return &TemplateEventSubscriber{}
}

func (s *TemplateEventSubscriber) Register(bus *eventbus.TemplateEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.TemplateEventAdded, s.handleTemplateChanged)
	bus.Subscribe(eventbus.TemplateEventRemoved, s.handleTemplateChanged)
	bus.Subscribe(eventbus.TemplateEventUpdated, s.handleTemplateChanged)
}

func (s *TemplateEventSubscriber) handleTemplateChanged(ctx context.Context, event eventbus.TemplateEvent) error {
	klog.V(6).Infof("模板事件处理成功: type=%s, id=%s, name=%s", event.Type, event.TemplateID, event.Name)
	return nil
}
