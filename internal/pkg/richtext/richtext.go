// Package richtext 处理模板正文的 FlowDocument 标记。
//
// 模板正文以 XAML FlowDocument 形式持久化，扫描变量和渲染时只关心纯文本。
package richtext

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	presentationNS = "http://schemas.microsoft.com/winfx/2006/xaml/presentation"

	// ParagraphBreak 段落结束符，与桌面端 TextRange.Text 保持一致
	ParagraphBreak = "\r\n"
)

var ErrEmptyMarkup = errors.New("markup has no root element")

var rootElements = map[string]bool{
	"FlowDocument": true,
	"Section":      true,
	"Paragraph":    true,
}

// PlainText 从标记中提取纯文本
// 每个 Paragraph 以 \r\n 结尾，LineBreak 同样输出 \r\n
func PlainText(markup string) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}

	dec := xml.NewDecoder(strings.NewReader(markup))
	var sb strings.Builder
	depth := 0
	runDepth := 0
	paraDepth := 0
	sawRoot := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse markup: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if sawRoot {
					return "", fmt.Errorf("parse markup: multiple root elements")
				}
				if !rootElements[t.Name.Local] {
					return "", fmt.Errorf("parse markup: unsupported root element %q", t.Name.Local)
				}
			}
			sawRoot = true
			depth++
			switch t.Name.Local {
			case "Paragraph":
				paraDepth++
			case "Run":
				runDepth++
				// Run 的 Text 属性写法
				for _, attr := range t.Attr {
					if attr.Name.Local == "Text" {
						sb.WriteString(attr.Value)
					}
				}
			case "LineBreak":
				sb.WriteString(ParagraphBreak)
			}
		case xml.EndElement:
			depth--
			switch t.Name.Local {
			case "Run":
				runDepth--
			case "Paragraph":
				paraDepth--
				sb.WriteString(ParagraphBreak)
			}
		case xml.CharData:
			if runDepth > 0 || (paraDepth > 0 && !isIndent(t)) {
				// Paragraph 内 Bold、Span 等内联元素里的文本视为隐式 Run
				sb.Write(t)
			} else if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return "", fmt.Errorf("parse markup: text outside root element")
			}
		}
	}

	if !sawRoot {
		return "", ErrEmptyMarkup
	}
	if depth != 0 {
		return "", fmt.Errorf("parse markup: unexpected end of document")
	}
	return sb.String(), nil
}

// isIndent 元素之间的换行缩进，不属于正文
func isIndent(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0 && bytes.ContainsAny(data, "\r\n")
}

// ExtractPlainText 同 PlainText，解析失败时返回空串
func ExtractPlainText(markup string) string {
	text, err := PlainText(markup)
	if err != nil {
		return ""
	}
	return text
}

// IsMarkup 判断字符串是否为可解析的标记
func IsMarkup(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	_, err := PlainText(text)
	return err == nil
}

// FromPlainText 将纯文本包装成最小的 FlowDocument，每行一个段落
func FromPlainText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var buf bytes.Buffer
	buf.WriteString(`<FlowDocument PagePadding="5,0,5,0" AllowDrop="True" xmlns="` + presentationNS + `">`)
	for _, line := range lines {
		buf.WriteString("<Paragraph>")
		if line != "" {
			buf.WriteString("<Run>")
			xml.EscapeText(&buf, []byte(line))
			buf.WriteString("</Run>")
		}
		buf.WriteString("</Paragraph>")
	}
	buf.WriteString("</FlowDocument>")
	return buf.String()
}

// Normalize 合法标记原样返回，否则按纯文本包装
func Normalize(text string) string {
	if IsMarkup(text) {
		return text
	}
	return FromPlainText(text)
}
