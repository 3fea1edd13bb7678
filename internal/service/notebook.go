package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/amformscst/backend/internal/eventbus"
	"github.com/amformscst/backend/internal/model"
	"github.com/amformscst/backend/internal/pkg/variables"
	"github.com/amformscst/backend/internal/repository"
	"k8s.io/klog/v2"
)

// SelectRequest 选择路径，空 ID 表示清除该层选择
type SelectRequest struct {
	Note     string `json:"note"`
	Dealer   string `json:"dealer"`
	Company  string `json:"company"`
	Contact  string `json:"contact"`
	Form     string `json:"form"`
	TestDeal string `json:"test_deal"`
}

// NotebookService 持有当前笔记本，作为变量上下文来源
type NotebookService interface {
	Notebook() *model.Notebook
	Provider() variables.ContextProvider
	Replace(ctx context.Context, nb *model.Notebook) error
	Select(ctx context.Context, req SelectRequest) (*model.Notebook, error)
}

type notebookService struct {
	mu   sync.RWMutex
	repo repository.NoteRepository
	bus  *eventbus.NotebookEventBus
	nb   *model.Notebook
}

// NewNotebookService 创建服务并加载笔记本，加载失败时使用空笔记本
func NewNotebookService(repo repository.NoteRepository, bus *eventbus.NotebookEventBus) NotebookService {
	nb, err := repo.Load()
	if err != nil {
		klog.Errorf("加载笔记本失败，使用空笔记本: %v", err)
		nb = model.NewNotebook()
	}
	return &notebookService{repo: repo, bus: bus, nb: nb}
}

// Notebook 当前笔记本，调用方不应修改
// 修改通过 Replace 或 Select 产生新的实例
func (s *notebookService) Notebook() *model.Notebook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nb
}

func (s *notebookService) Provider() variables.ContextProvider {
	return s.Notebook
}

// Replace 整体替换并持久化
func (s *notebookService) Replace(ctx context.Context, nb *model.Notebook) error {
	if nb == nil {
		nb = model.NewNotebook()
	}
	if err := s.repo.Save(nb); err != nil {
		return fmt.Errorf("failed to save notebook: %w", err)
	}

	s.mu.Lock()
	s.nb = nb
	s.mu.Unlock()

	s.publish(ctx, eventbus.NotebookEventReplaced, nb)
	return nil
}

// Select 按路径更新选择，任一 ID 不存在时整体不生效
func (s *notebookService) Select(ctx context.Context, req SelectRequest) (*model.Notebook, error) {
	s.mu.Lock()
	next, err := cloneNotebook(s.nb)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := applySelection(next, req); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.nb = next
	s.mu.Unlock()

	if err := s.repo.Save(next); err != nil {
		klog.Warningf("Select: 保存笔记本失败: %v", err)
	}
	s.publish(ctx, eventbus.NotebookEventSelectionChanged, next)
	return next, nil
}

func (s *notebookService) publish(ctx context.Context, eventType eventbus.NotebookEventType, nb *model.Notebook) {
	if s.bus == nil {
		return
	}
	event := eventbus.NotebookEvent{Type: eventType, NoteID: nb.Notes.SelectedID}
	if err := s.bus.Publish(ctx, eventType, event); err != nil {
		klog.Warningf("笔记本事件处理失败: type=%s, err=%v", eventType, err)
	}
}

func applySelection(nb *model.Notebook, req SelectRequest) error {
	if !nb.Notes.Select(req.Note) {
		return fmt.Errorf("%w: note %s", ErrSelectionNotFound, req.Note)
	}
	note, ok := nb.Notes.SelectedItem()
	if !ok {
		return nil
	}

	if !note.Dealers.Select(req.Dealer) {
		return fmt.Errorf("%w: dealer %s", ErrSelectionNotFound, req.Dealer)
	}
	if dealer, ok := note.Dealers.SelectedItem(); ok {
		if !dealer.Companies.Select(req.Company) {
			return fmt.Errorf("%w: company %s", ErrSelectionNotFound, req.Company)
		}
	}
	if !note.Contacts.Select(req.Contact) {
		return fmt.Errorf("%w: contact %s", ErrSelectionNotFound, req.Contact)
	}
	if !note.Forms.Select(req.Form) {
		return fmt.Errorf("%w: form %s", ErrSelectionNotFound, req.Form)
	}
	if form, ok := note.Forms.SelectedItem(); ok {
		if !form.TestDeals.Select(req.TestDeal) {
			return fmt.Errorf("%w: test deal %s", ErrSelectionNotFound, req.TestDeal)
		}
	}
	return nil
}

// cloneNotebook 深拷贝，已发布的笔记本实例不再被修改
func cloneNotebook(nb *model.Notebook) (*model.Notebook, error) {
	if nb == nil {
		return model.NewNotebook(), nil
	}
	data, err := json.Marshal(nb)
	if err != nil {
		return nil, fmt.Errorf("failed to copy notebook: %w", err)
	}
	out := model.NewNotebook()
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to copy notebook: %w", err)
	}
	return out, nil
}
