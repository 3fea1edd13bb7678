package repository

import "github.com/amformscst/backend/internal/model"

// TemplateStore 文本模板持久化，整表读写
type TemplateStore interface {
	LoadTemplates() ([]*model.TextTemplate, error)
	SaveTemplates(templates []*model.TextTemplate) error
}

// NoteRepository 笔记本持久化
type NoteRepository interface {
	Load() (*model.Notebook, error)
	Save(nb *model.Notebook) error
}
