package repository

import (
	"sync"

	"github.com/amformscst/backend/internal/model"
)

// noteFileRepository SavedNotes.json 文件存储
type noteFileRepository struct {
	path string
	mu   sync.Mutex
}

// NewNoteRepository 创建笔记本文件存储
func NewNoteRepository(path string) NoteRepository {
	return &noteFileRepository{path: path}
}

// Load 读取笔记本，文件不存在时返回空笔记本
func (r *noteFileRepository) Load() (*model.Notebook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nb := model.NewNotebook()
	if _, err := readJSONFile(r.path, nb, []byte(`{"notes":{"items":[]}}`)); err != nil {
		return nil, err
	}
	return nb, nil
}

// Save 覆盖写入笔记本
func (r *noteFileRepository) Save(nb *model.Notebook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if nb == nil {
		nb = model.NewNotebook()
	}
	return writeJSONFile(r.path, nb)
}
