package formgen

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Element 解析后的 XML 元素，只保留解析 .formgen 需要的信息
type Element struct {
	Name     string
	Attrs    []xml.Attr
	Text     string // 直接子文本
	Children []*Element
}

// ReadElement 读取文档根元素
func ReadElement(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var stack []*Element
	var root *Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: t.Copy().Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("read xml: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("read xml: text outside root element")
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

// Attr 属性值，不存在时为空串
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Child 第一个同名子元素
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// InnerText 自身及所有后代的文本
func (e *Element) InnerText() string {
	if len(e.Children) == 0 {
		return e.Text
	}
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Element) writeText(sb *strings.Builder) {
	sb.WriteString(e.Text)
	for _, c := range e.Children {
		c.writeText(sb)
	}
}

func (e *Element) boolAttr(name string) bool {
	return parseBool(e.Attr(name))
}

func (e *Element) intAttr(name string) int {
	return parseInt(e.Attr(name))
}

// parseBool 大小写不敏感的 true/false，其余一律为 false
func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// writer 包装 xml.Encoder，记录第一个错误
type writer struct {
	enc *xml.Encoder
	err error
}

func newWriter(w io.Writer) *writer {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return &writer{enc: enc}
}

func (w *writer) token(t xml.Token) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(t)
}

// start 写开始标签，attrs 为 名称、值 交替
func (w *writer) start(name string, attrs ...string) {
	st := xml.StartElement{Name: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		st.Attr = append(st.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	w.token(st)
}

func (w *writer) end(name string) {
	w.token(xml.EndElement{Name: xml.Name{Local: name}})
}

// element 写只含文本的元素
func (w *writer) element(name, text string) {
	w.start(name)
	if text != "" {
		w.token(xml.CharData(text))
	}
	w.end(name)
}

func (w *writer) flush() error {
	if w.err != nil {
		return w.err
	}
	return w.enc.Flush()
}
