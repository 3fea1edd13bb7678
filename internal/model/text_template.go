package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amformscst/backend/internal/pkg/richtext"
	"github.com/google/uuid"
)

// TemplateType 文本模板分类
type TemplateType int

const (
	TemplatePublishComments TemplateType = iota
	TemplateInternalComments
	TemplateClosureComments
	TemplateEmail
	TemplateOther
)

var templateTypeNames = []string{
	"PublishComments",
	"InternalComments",
	"ClosureComments",
	"Email",
	"Other",
}

func (t TemplateType) String() string {
	if t < 0 || int(t) >= len(templateTypeNames) {
		return strconv.Itoa(int(t))
	}
	return templateTypeNames[t]
}

// Valid 是否为已定义的分类
func (t TemplateType) Valid() bool {
	return t >= 0 && int(t) < len(templateTypeNames)
}

// ParseTemplateType 大小写不敏感地解析分类名，也接受数字字符串
func ParseTemplateType(s string) (TemplateType, bool) {
	s = strings.TrimSpace(s)
	for i, name := range templateTypeNames {
		if strings.EqualFold(name, s) {
			return TemplateType(i), true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && TemplateType(n).Valid() {
		return TemplateType(n), true
	}
	return TemplatePublishComments, false
}

// TextTemplate 文本模板
// 身份只由 ID 决定，内容相同的两个模板并不相等
type TextTemplate struct {
	ID          string       `gorm:"primaryKey;size:36"`
	Name        string       `gorm:"size:200;not null;default:''"`
	Description string       `gorm:"size:1000"`
	Type        TemplateType `gorm:"default:0"`
	TextXaml    string       `gorm:"type:text"` // FlowDocument 标记
	SortOrder   int          `gorm:"default:0"` // 列表顺序
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (TextTemplate) TableName() string {
	return "text_templates"
}

// NewTextTemplate 创建模板并分配新 ID
func NewTextTemplate(name, description, textXaml string, templateType TemplateType) *TextTemplate {
	return &TextTemplate{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Type:        templateType,
		TextXaml:    textXaml,
	}
}

// NewTextTemplateFromText 以纯文本正文创建模板
func NewTextTemplateFromText(name, description, text string, templateType TemplateType) *TextTemplate {
	return NewTextTemplate(name, description, richtext.FromPlainText(text), templateType)
}

// PlainText 正文纯文本，标记无法解析时为空
func (t *TextTemplate) PlainText() string {
	if t == nil {
		return ""
	}
	return richtext.ExtractPlainText(t.TextXaml)
}

// Equals 按 ID 比较
func (t *TextTemplate) Equals(other *TextTemplate) bool {
	if t == nil || other == nil {
		return false
	}
	return t.ID == other.ID
}

// textTemplateJSON 持久化格式：小写键，type 写为整数
type textTemplateJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        int    `json:"type"`
	Text        string `json:"text"`
}

// MarshalJSON 写出的 text 总是合法标记
func (t TextTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(textTemplateJSON{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Type:        int(t.Type),
		Text:        richtext.Normalize(t.TextXaml),
	})
}

// UnmarshalJSON 键名大小写不敏感；type 可为整数或分类名；
// text 不是合法标记时按纯文本包装
func (t *TextTemplate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("text template: %w", err)
	}

	out := TextTemplate{ID: uuid.Nil.String()}
	for key, value := range raw {
		switch strings.ToLower(key) {
		case "id":
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("text template id: %w", err)
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return fmt.Errorf("text template id %q: %w", s, err)
			}
			out.ID = id.String()
		case "name":
			out.Name = stringOrEmpty(value)
		case "description":
			out.Description = stringOrEmpty(value)
		case "type":
			out.Type = decodeTemplateType(value)
		case "text":
			out.TextXaml = richtext.Normalize(stringOrEmpty(value))
		}
	}

	*t = out
	return nil
}

func stringOrEmpty(value json.RawMessage) string {
	var s *string
	if err := json.Unmarshal(value, &s); err != nil || s == nil {
		return ""
	}
	return *s
}

func decodeTemplateType(value json.RawMessage) TemplateType {
	var n int
	if err := json.Unmarshal(value, &n); err == nil {
		if TemplateType(n).Valid() {
			return TemplateType(n)
		}
		return TemplatePublishComments
	}
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		parsed, _ := ParseTemplateType(s)
		return parsed
	}
	return TemplatePublishComments
}
