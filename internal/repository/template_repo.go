package repository

import (
	"github.com/amformscst/backend/internal/model"
	"gorm.io/gorm"
)

// templateRepository 数据库存储的模板列表，列表顺序保存在 sort_order
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建 Repository 实例
func NewTemplateRepository(db *gorm.DB) TemplateStore {
	return &templateRepository{db: db}
}

// LoadTemplates 按列表顺序读取全部模板
func (r *templateRepository) LoadTemplates() ([]*model.TextTemplate, error) {
	var templates []*model.TextTemplate
	result := r.db.Order("sort_order ASC, id ASC").Find(&templates)
	return templates, result.Error
}

// SaveTemplates 在事务中用给定列表替换表内容
func (r *templateRepository) SaveTemplates(templates []*model.TextTemplate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.TextTemplate{}).Error; err != nil {
			return err
		}
		if len(templates) == 0 {
			return nil
		}

		rows := make([]*model.TextTemplate, 0, len(templates))
		for i, t := range templates {
			if t == nil {
				continue
			}
			t.SortOrder = i
			rows = append(rows, t)
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
