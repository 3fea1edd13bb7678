package service

import (
	"fmt"

	"github.com/amformscst/backend/internal/pkg/variables"
)

// VariableDTO 变量及其当前值
type VariableDTO struct {
	ProperName  string   `json:"proper_name"`
	Name        string   `json:"name"`
	Prefix      string   `json:"prefix"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
	Value       string   `json:"value"`
}

// MatchDTO 文本中一次变量引用
type MatchDTO struct {
	Position   int    `json:"position"`
	Length     int    `json:"length"`
	ProperName string `json:"proper_name"`
	Alias      string `json:"alias"`
	Value      string `json:"value"`
}

// ScanResult 扫描结果，First 为空表示没有引用
type ScanResult struct {
	First   *MatchDTO  `json:"first"`
	Matches []MatchDTO `json:"matches"`
}

// RenderPlan 模板渲染前的中间结果，Variables 与 overrides 按位置对应
type RenderPlan struct {
	TemplateID string        `json:"template_id"`
	PlainText  string        `json:"plain_text"`
	Format     string        `json:"format"`
	Variables  []VariableDTO `json:"variables"`
}

// RenderService 变量扫描与模板渲染
type RenderService interface {
	Plan(templateID string) (*RenderPlan, error)
	Render(templateID string, overrides []string) (string, error)
	Scan(text string) ScanResult
	Process(text string, properNames []string, overrides []string) (string, error)
	Variables(query string) []VariableDTO
}

type renderService struct {
	templates TemplateEnforcer
	registry  *variables.Registry
}

// NewRenderService 创建服务实例
func NewRenderService(templates TemplateEnforcer, registry *variables.Registry) RenderService {
	return &renderService{templates: templates, registry: registry}
}

// Plan 取模板纯文本并替换变量引用为位置占位符
func (s *renderService) Plan(templateID string) (*RenderPlan, error) {
	t, err := s.templates.GetTemplate(templateID)
	if err != nil {
		return nil, err
	}

	text := t.PlainText()
	format, ordered := variables.Prepare(text, s.registry.Variables())
	return &RenderPlan{
		TemplateID: t.ID,
		PlainText:  text,
		Format:     format,
		Variables:  toVariableDTOs(ordered),
	}, nil
}

// Render 渲染模板，overrides[i] 覆盖第 i 个变量的值
func (s *renderService) Render(templateID string, overrides []string) (string, error) {
	t, err := s.templates.GetTemplate(templateID)
	if err != nil {
		return "", err
	}

	format, ordered := variables.Prepare(t.PlainText(), s.registry.Variables())
	out, err := variables.Process(format, ordered, overrides)
	if err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", t.ID, err)
	}
	return out, nil
}

// Scan 按出现顺序列出文本中的变量引用
func (s *renderService) Scan(text string) ScanResult {
	vars := s.registry.Variables()
	result := ScanResult{Matches: []MatchDTO{}}

	for _, m := range variables.Matches(text, vars) {
		result.Matches = append(result.Matches, MatchDTO{
			Position:   m.Position,
			Length:     m.Length,
			ProperName: m.Variable.ProperName,
			Alias:      m.Alias,
			Value:      m.Variable.GetValue(),
		})
	}
	// 第一个匹配即 GetFirstVariable 的结果
	if len(result.Matches) > 0 {
		first := result.Matches[0]
		result.First = &first
	}
	return result
}

// Process 以给定的变量顺序格式化 text
func (s *renderService) Process(text string, properNames []string, overrides []string) (string, error) {
	vars := s.registry.Variables()
	ordered := make([]*variables.Variable, 0, len(properNames))
	for _, name := range properNames {
		v, ok := variables.Lookup(vars, name)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrVariableNotFound, name)
		}
		ordered = append(ordered, v)
	}
	return variables.Process(text, ordered, overrides)
}

// Variables 列出变量，query 非空时按模糊匹配排序
func (s *renderService) Variables(query string) []VariableDTO {
	return toVariableDTOs(variables.Search(query, s.registry.Variables()))
}

func toVariableDTOs(vars []*variables.Variable) []VariableDTO {
	out := make([]VariableDTO, 0, len(vars))
	for _, v := range vars {
		if v == nil {
			continue
		}
		aliases := v.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		out = append(out, VariableDTO{
			ProperName:  v.ProperName,
			Name:        v.Name,
			Prefix:      v.Prefix,
			Description: v.Description,
			Aliases:     aliases,
			Value:       v.GetValue(),
		})
	}
	return out
}
