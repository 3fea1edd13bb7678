// Package variables 模板变量：注册表、文本扫描与位置替换。
//
// 变量在文本中可以写成 ProperName（如 SelectedNote:CaseNumber）、
// Prefix+Name（如 selectednote:casenumber）或 Prefix+Alias（如 selectednote:case），
// 匹配不区分大小写。
package variables

import "strings"

// UserInputName 用户输入占位变量，渲染时即使覆盖值为空也会替换
const UserInputName = "User:Input"

// Variable 一个可解析的模板变量，ProperName 是它的身份
type Variable struct {
	ProperName  string
	Name        string
	Prefix      string
	Description string
	Aliases     []string

	value func() string
}

// NewVariable 创建变量，getValue 为 nil 时值恒为空串
func NewVariable(properName, name, prefix, description string, aliases []string, getValue func() string) *Variable {
	return &Variable{
		ProperName:  properName,
		Name:        name,
		Prefix:      prefix,
		Description: description,
		Aliases:     aliases,
		value:       getValue,
	}
}

// GetValue 当前值，不会失败
func (v *Variable) GetValue() string {
	if v == nil || v.value == nil {
		return ""
	}
	return v.value()
}

// Candidates 扫描顺序：ProperName、Prefix+Name、每个 Prefix+Alias
func (v *Variable) Candidates() []string {
	out := make([]string, 0, 2+len(v.Aliases))
	out = append(out, v.ProperName, v.Prefix+v.Name)
	for _, alias := range v.Aliases {
		out = append(out, v.Prefix+alias)
	}
	return out
}

// IsUserInput 是否为用户输入占位变量
func (v *Variable) IsUserInput() bool {
	return v != nil && v.ProperName == UserInputName
}

// Lookup 按 ProperName 查找，不区分大小写
func Lookup(vars []*Variable, properName string) (*Variable, bool) {
	for _, v := range vars {
		if v != nil && strings.EqualFold(v.ProperName, properName) {
			return v, true
		}
	}
	return nil, false
}
