package formgen

import (
	"slices"
	"strconv"
)

// CodeLineSettings codeLines 元素上的属性
type CodeLineSettings struct {
	Order    int      `json:"order"`
	Type     CodeType `json:"type"`
	Variable string   `json:"variable"` // destVariable
}

// CodeLine 一条表单脚本语句
type CodeLine struct {
	Settings   CodeLineSettings `json:"settings"`
	Expression string           `json:"expression,omitempty"`
	PromptData *PromptData      `json:"prompt_data,omitempty"`
}

// PromptDataSettings promptData 元素上的属性
type PromptDataSettings struct {
	Type                string `json:"type"`
	IsExpression        bool   `json:"is_expression"`
	Required            bool   `json:"required"`
	LeftSize            int    `json:"left_size"`
	RightSize           int    `json:"right_size"`
	Delimiter           string `json:"delimiter"`
	AllowNegative       bool   `json:"allow_negative"`
	ForceUpperCase      bool   `json:"force_upper_case"`
	MakeBuyerVars       bool   `json:"make_buyer_vars"`
	IncludeNoneAsOption bool   `json:"include_none_as_option"`
}

// PromptData PROMPT 行的提示信息
type PromptData struct {
	Settings PromptDataSettings `json:"settings"`
	Message  string             `json:"message"`
	Choices  []string           `json:"choices,omitempty"`
}

func parseCodeLine(e *Element) *CodeLine {
	line := &CodeLine{
		Settings: CodeLineSettings{
			Order:    e.intAttr("order"),
			Type:     ParseCodeType(e.Attr("type")),
			Variable: e.Attr("destVariable"),
		},
	}
	for _, child := range e.Children {
		switch child.Name {
		case "expression":
			line.Expression = child.InnerText()
		case "promptData":
			line.PromptData = parsePromptData(child)
		}
	}
	return line
}

func parsePromptData(e *Element) *PromptData {
	pd := &PromptData{
		Settings: PromptDataSettings{
			Type:                e.Attr("type"),
			IsExpression:        e.boolAttr("promptIsExpression"),
			Required:            e.boolAttr("required"),
			LeftSize:            e.intAttr("leftSize"),
			RightSize:           e.intAttr("rightSize"),
			Delimiter:           e.Attr("choicesDelimiter"),
			AllowNegative:       e.boolAttr("allowNegatives"),
			ForceUpperCase:      e.boolAttr("forceUpperCase"),
			MakeBuyerVars:       e.boolAttr("makeBuyerVars"),
			IncludeNoneAsOption: e.boolAttr("includeNoneAsOption"),
		},
	}
	for _, child := range e.Children {
		switch child.Name {
		case "promptMessage":
			pd.Message = child.InnerText()
		case "choices":
			pd.Choices = append(pd.Choices, child.InnerText())
		}
	}
	return pd
}

func (c *CodeLine) write(w *writer) {
	w.start("codeLines",
		"order", strconv.Itoa(c.Settings.Order),
		"type", string(c.Settings.Type),
		"destVariable", c.Settings.Variable,
	)
	if c.Expression != "" {
		w.element("expression", c.Expression)
	}
	if pd := c.PromptData; pd != nil {
		s := pd.Settings
		w.start("promptData",
			"type", s.Type,
			"promptIsExpression", formatBool(s.IsExpression),
			"required", formatBool(s.Required),
			"leftSize", strconv.Itoa(s.LeftSize),
			"rightSize", strconv.Itoa(s.RightSize),
			"choicesDelimiter", s.Delimiter,
			"allowNegatives", formatBool(s.AllowNegative),
			"forceUpperCase", formatBool(s.ForceUpperCase),
			"makeBuyerVars", formatBool(s.MakeBuyerVars),
			"includeNoneAsOption", formatBool(s.IncludeNoneAsOption),
		)
		w.element("promptMessage", pd.Message)
		for _, choice := range pd.Choices {
			w.element("choices", choice)
		}
		w.end("promptData")
	}
	w.end("codeLines")
}

// Copy 深拷贝
func (c *CodeLine) Copy() *CodeLine {
	if c == nil {
		return nil
	}
	out := *c
	if c.PromptData != nil {
		pd := *c.PromptData
		pd.Choices = slices.Clone(c.PromptData.Choices)
		out.PromptData = &pd
	}
	return &out
}

func (c *CodeLine) equal(o *CodeLine) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.Settings != o.Settings || c.Expression != o.Expression {
		return false
	}
	if c.PromptData == nil || o.PromptData == nil {
		return c.PromptData == o.PromptData
	}
	return c.PromptData.Settings == o.PromptData.Settings &&
		c.PromptData.Message == o.PromptData.Message &&
		slices.Equal(c.PromptData.Choices, o.PromptData.Choices)
}
