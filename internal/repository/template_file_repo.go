package repository

import (
	"sync"

	"github.com/amformscst/backend/internal/model"
	"k8s.io/klog/v2"
)

// templateFileRepository TextTemplates.json 文件存储，与桌面端文件格式兼容
type templateFileRepository struct {
	path string
	mu   sync.Mutex
}

// NewTemplateFileRepository 创建文件存储
func NewTemplateFileRepository(path string) TemplateStore {
	return &templateFileRepository{path: path}
}

// LoadTemplates 读取模板列表，文件不存在时创建空文件
func (r *templateFileRepository) LoadTemplates() ([]*model.TextTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var templates []*model.TextTemplate
	found, err := readJSONFile(r.path, &templates, []byte("[]"))
	if err != nil {
		return nil, err
	}
	if !found {
		klog.V(6).Infof("模板文件不存在，已创建: %s", r.path)
		return []*model.TextTemplate{}, nil
	}

	out := templates[:0]
	for _, t := range templates {
		if t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

// SaveTemplates 覆盖写入模板列表
func (r *templateFileRepository) SaveTemplates(templates []*model.TextTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if templates == nil {
		templates = []*model.TextTemplate{}
	}
	return writeJSONFile(r.path, templates)
}
