package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/amformscst/backend/internal/eventbus"
	"github.com/amformscst/backend/internal/model"
	"github.com/amformscst/backend/internal/repository"
	"k8s.io/klog/v2"
)

const (
	msgTemplateNil       = "Template cannot be null."
	msgTemplateTextBlank = "Template text cannot be null or whitespace."
	msgTemplateExists    = "Template already exists."
	msgTemplateMissing   = "Template does not exist."
)

// TemplateEnforcer 文本模板集合，增删改前校验，修改后整表持久化
type TemplateEnforcer interface {
	Templates() []*model.TextTemplate
	GetTemplate(id string) (*model.TextTemplate, error)
	AddTemplate(ctx context.Context, t *model.TextTemplate) error
	RemoveTemplate(ctx context.Context, t *model.TextTemplate) error
	// UpdateTemplate 返回是否找到并更新了模板
	UpdateTemplate(ctx context.Context, t *model.TextTemplate) (bool, error)
	StateCodes() []string
}

type templateEnforcer struct {
	mu        sync.RWMutex
	store     repository.TemplateStore
	bus       *eventbus.TemplateEventBus
	templates []*model.TextTemplate
}

// NewTemplateEnforcer 创建实例并加载模板，加载失败时以空列表启动
func NewTemplateEnforcer(store repository.TemplateStore, bus *eventbus.TemplateEventBus) TemplateEnforcer {
	e := &templateEnforcer{store: store, bus: bus}

	templates, err := store.LoadTemplates()
	if err != nil {
		klog.Errorf("LoadTemplates: 加载模板失败，使用空列表: %v", err)
		templates = nil
	}
	for _, t := range templates {
		if t != nil {
			e.templates = append(e.templates, t)
		}
	}
	klog.V(6).Infof("LoadTemplates: 已加载 %d 个模板", len(e.templates))
	return e
}

// Templates 当前模板列表的副本
func (e *templateEnforcer) Templates() []*model.TextTemplate {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*model.TextTemplate, len(e.templates))
	copy(out, e.templates)
	return out
}

// GetTemplate 按 ID 查找
func (e *templateEnforcer) GetTemplate(id string) (*model.TextTemplate, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if i := e.indexOf(id); i >= 0 {
		return e.templates[i], nil
	}
	return nil, ErrTemplateNotFound
}

// AddTemplate 追加模板
func (e *templateEnforcer) AddTemplate(ctx context.Context, t *model.TextTemplate) error {
	if err := validateTemplate("AddTemplate", t); err != nil {
		return err
	}

	e.mu.Lock()
	if e.indexOf(t.ID) >= 0 {
		e.mu.Unlock()
		return &ValidationError{Op: "AddTemplate", Message: msgTemplateExists, Err: ErrTemplateExists}
	}
	e.templates = append(e.templates, t)
	err := e.persistLocked()
	e.mu.Unlock()

	if err != nil {
		klog.Errorf("AddTemplate: 保存失败 %s (%s): %v", t.Name, t.ID, err)
		return fmt.Errorf("failed to save templates after add: %w", err)
	}
	klog.V(6).Infof("AddTemplate: 已添加模板 %s (%s)", t.Name, t.ID)
	e.publish(ctx, eventbus.TemplateEventAdded, t)
	return nil
}

// RemoveTemplate 按 ID 删除模板
func (e *templateEnforcer) RemoveTemplate(ctx context.Context, t *model.TextTemplate) error {
	if err := validateTemplate("RemoveTemplate", t); err != nil {
		return err
	}

	e.mu.Lock()
	i := e.indexOf(t.ID)
	if i < 0 {
		e.mu.Unlock()
		return &ValidationError{Op: "RemoveTemplate", Message: msgTemplateMissing, Err: ErrTemplateNotFound}
	}
	e.templates = append(e.templates[:i], e.templates[i+1:]...)
	err := e.persistLocked()
	e.mu.Unlock()

	if err != nil {
		klog.Errorf("RemoveTemplate: 保存失败 %s (%s): %v", t.Name, t.ID, err)
		return fmt.Errorf("failed to save templates after remove: %w", err)
	}
	klog.V(6).Infof("RemoveTemplate: 已删除模板 %s (%s)", t.Name, t.ID)
	e.publish(ctx, eventbus.TemplateEventRemoved, t)
	return nil
}

// UpdateTemplate 用 t 的名称、描述和正文覆盖同 ID 的模板
// 模板不存在时只记录警告，不返回错误也不持久化
func (e *templateEnforcer) UpdateTemplate(ctx context.Context, t *model.TextTemplate) (bool, error) {
	if t == nil {
		return false, newValidationError("UpdateTemplate", msgTemplateNil)
	}

	e.mu.Lock()
	i := e.indexOf(t.ID)
	if i < 0 {
		e.mu.Unlock()
		klog.Warningf("UpdateTemplate: 模板不存在，忽略更新: %s", t.ID)
		return false, nil
	}
	current := e.templates[i]
	current.Name = t.Name
	current.Description = t.Description
	current.TextXaml = t.TextXaml
	err := e.persistLocked()
	e.mu.Unlock()

	if err != nil {
		klog.Errorf("UpdateTemplate: 保存失败 %s (%s): %v", current.Name, current.ID, err)
		return true, fmt.Errorf("failed to save templates after update: %w", err)
	}
	klog.V(6).Infof("UpdateTemplate: 已更新模板 %s (%s)", current.Name, current.ID)
	e.publish(ctx, eventbus.TemplateEventUpdated, current)
	return true, nil
}

// StateCodes 表单 validStates 可用的州代码
func (e *templateEnforcer) StateCodes() []string {
	out := make([]string, len(stateCodes))
	copy(out, stateCodes)
	return out
}

func (e *templateEnforcer) indexOf(id string) int {
	for i, t := range e.templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (e *templateEnforcer) persistLocked() error {
	snapshot := make([]*model.TextTemplate, len(e.templates))
	copy(snapshot, e.templates)
	return e.store.SaveTemplates(snapshot)
}

func (e *templateEnforcer) publish(ctx context.Context, eventType eventbus.TemplateEventType, t *model.TextTemplate) {
	if e.bus == nil {
		return
	}
	event := eventbus.TemplateEvent{Type: eventType, TemplateID: t.ID, Name: t.Name}
	if err := e.bus.Publish(ctx, eventType, event); err != nil {
		klog.Warningf("模板事件处理失败: type=%s, id=%s, err=%v", eventType, t.ID, err)
	}
}

func validateTemplate(op string, t *model.TextTemplate) error {
	if t == nil {
		return newValidationError(op, msgTemplateNil)
	}
	if strings.TrimSpace(t.PlainText()) == "" {
		return newValidationError(op, msgTemplateTextBlank)
	}
	return nil
}

var stateCodes = []string{
	"AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "PR", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "VI", "WA", "WV",
	"WI", "WY",
}
