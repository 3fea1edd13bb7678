// Package formgen .formgen 表单定义文件的文档模型。
//
// 文档结构：formDef 根元素（属性即 Settings）下依次是 pages、title、tradePrompt、
// formPrintType、salespersonPrompt、username、billingName、codeLines、
// formCategory 和若干 validStates。生成时元素顺序固定，代码行按
// INIT、PROMPT、POST 分组输出，与存储顺序无关。
package formgen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
)

const declaration = `<?xml version="1.0" encoding="utf-8" standalone="yes"?>`

var (
	ErrNoRoot          = errors.New("formgen: document has no root element")
	ErrIndexOutOfRange = errors.New("formgen: index out of range")
)

// DotFormgen 一个 .formgen 文档
type DotFormgen struct {
	Settings          Settings     `json:"settings"`
	Pages             []*FormPage  `json:"pages"`
	Title             string       `json:"title"`
	TradePrompt       bool         `json:"trade_prompt"`
	FormType          Format       `json:"form_type"`
	SalesPersonPrompt bool         `json:"sales_person_prompt"`
	Username          string       `json:"username"`
	BillingName       *string      `json:"billing_name,omitempty"`
	CodeLines         []*CodeLine  `json:"code_lines"`
	Category          FormCategory `json:"category"`
	States            []string     `json:"states"`
}

// New 空文档
func New() *DotFormgen {
	return &DotFormgen{FormType: FormatPdf, Category: CategoryOther}
}

// Parse 解析 .formgen 内容
func Parse(data []byte) (*DotFormgen, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader 从 r 读取并解析
func ParseReader(r io.Reader) (*DotFormgen, error) {
	root, err := ReadElement(r)
	if err != nil {
		return nil, err
	}
	return ParseElement(root), nil
}

// ParseElement 从根元素构建文档，未知元素忽略，枚举值无法识别时取默认值
func ParseElement(root *Element) *DotFormgen {
	doc := &DotFormgen{Settings: parseSettings(root)}

	for _, child := range root.Children {
		switch child.Name {
		case "pages":
			doc.Pages = append(doc.Pages, parsePage(child))
		case "title":
			doc.Title = child.InnerText()
		case "tradePrompt":
			doc.TradePrompt = parseBool(child.InnerText())
		case "formPrintType":
			doc.FormType = ParseFormat(child.InnerText())
		case "salespersonPrompt":
			doc.SalesPersonPrompt = parseBool(child.InnerText())
		case "username":
			doc.Username = child.InnerText()
		case "billingName":
			name := child.InnerText()
			doc.BillingName = &name
		case "codeLines":
			doc.CodeLines = append(doc.CodeLines, parseCodeLine(child))
		case "formCategory":
			doc.Category = ParseCategory(child.InnerText())
		case "validStates":
			doc.States = append(doc.States, child.InnerText())
		}
	}
	return doc
}

// Generate 生成带 XML 声明、缩进的 .formgen 内容
func (d *DotFormgen) Generate() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode 写出文档
func (d *DotFormgen) Encode(out io.Writer) error {
	if _, err := io.WriteString(out, declaration+"\n"); err != nil {
		return fmt.Errorf("write formgen: %w", err)
	}

	w := newWriter(out)
	w.start("formDef", d.Settings.attrs()...)

	for _, page := range d.Pages {
		if page != nil {
			page.write(w)
		}
	}

	w.element("title", d.Title)
	w.element("tradePrompt", formatBool(d.TradePrompt))
	w.element("formPrintType", d.FormType.String())
	w.element("salespersonPrompt", formatBool(d.SalesPersonPrompt))
	w.element("username", d.Username)
	if d.BillingName != nil {
		w.element("billingName", *d.BillingName)
	}

	// 按类型分三次过滤输出，类型之内保持原顺序
	for _, typ := range []CodeType{CodeInit, CodePrompt, CodePost} {
		for _, line := range d.CodeLines {
			if line != nil && line.Settings.Type == typ {
				line.write(w)
			}
		}
	}

	w.element("formCategory", d.Category.String())
	for _, state := range d.States {
		w.element("validStates", state)
	}

	w.end("formDef")
	if err := w.flush(); err != nil {
		return fmt.Errorf("write formgen: %w", err)
	}
	return nil
}

// Clone 通过生成再解析得到副本，不参与序列化的内容不会保留
func (d *DotFormgen) Clone() (*DotFormgen, error) {
	data, err := d.Generate()
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Equal 深比较，Pages、CodeLines、States 均区分顺序
func (d *DotFormgen) Equal(o *DotFormgen) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Settings != o.Settings ||
		d.Title != o.Title ||
		d.TradePrompt != o.TradePrompt ||
		d.FormType != o.FormType ||
		d.SalesPersonPrompt != o.SalesPersonPrompt ||
		d.Username != o.Username ||
		d.Category != o.Category {
		return false
	}
	if (d.BillingName == nil) != (o.BillingName == nil) {
		return false
	}
	if d.BillingName != nil && *d.BillingName != *o.BillingName {
		return false
	}
	if !slices.EqualFunc(d.Pages, o.Pages, (*FormPage).equal) {
		return false
	}
	if !slices.EqualFunc(d.CodeLines, o.CodeLines, (*CodeLine).equal) {
		return false
	}
	return slices.Equal(d.States, o.States)
}

// FieldCount 所有页的字段总数
func (d *DotFormgen) FieldCount() int {
	count := 0
	for _, page := range d.Pages {
		if page == nil {
			continue
		}
		for _, f := range page.Fields {
			if f != nil {
				count++
			}
		}
	}
	return count
}

func (d *DotFormgen) InitCount() int {
	return d.countType(CodeInit)
}

func (d *DotFormgen) PromptCount() int {
	return d.countType(CodePrompt)
}

func (d *DotFormgen) PostCount() int {
	return d.countType(CodePost)
}

func (d *DotFormgen) countType(typ CodeType) int {
	count := 0
	for _, line := range d.CodeLines {
		if line != nil && line.Settings.Type == typ {
			count++
		}
	}
	return count
}

// GetPrompt 第 index 个 PROMPT 行
func (d *DotFormgen) GetPrompt(index int) (*CodeLine, error) {
	var prompts []*CodeLine
	for _, line := range d.CodeLines {
		if line != nil && line.Settings.Type == CodePrompt {
			prompts = append(prompts, line)
		}
	}
	if index < 0 || index >= len(prompts) {
		return nil, errIndex("prompt", index, len(prompts))
	}
	return prompts[index], nil
}

// GetField 按页顺序展开后的第 index 个字段
func (d *DotFormgen) GetField(index int) (*FormField, error) {
	var fields []*FormField
	for _, page := range d.Pages {
		if page == nil {
			continue
		}
		for _, f := range page.Fields {
			if f != nil {
				fields = append(fields, f)
			}
		}
	}
	if index < 0 || index >= len(fields) {
		return nil, errIndex("field", index, len(fields))
	}
	return fields[index], nil
}

// ClonePrompt 复制 prompt 为新代码行并追加，newName 为空时沿用原变量名
// 不检查名称和序号是否重复
func (d *DotFormgen) ClonePrompt(prompt *CodeLine, newName string, newIndex int) *CodeLine {
	line := prompt.Copy()
	if line == nil {
		line = &CodeLine{Settings: CodeLineSettings{Type: CodePrompt}}
	}
	if newName != "" {
		line.Settings.Variable = newName
	}
	line.Settings.Order = newIndex
	d.CodeLines = append(d.CodeLines, line)
	return line
}

// NextPromptOrder 比现有 PROMPT 行的最大序号大一
func (d *DotFormgen) NextPromptOrder() int {
	next := 0
	for _, line := range d.CodeLines {
		if line != nil && line.Settings.Type == CodePrompt && line.Settings.Order >= next {
			next = line.Settings.Order + 1
		}
	}
	return next
}

var trailingDigits = regexp.MustCompile(`^(.*?)(\d+)$`)

// AutoIncrement 末尾数字加一，没有数字时追加 1，如 F9 -> F10、abc -> abc1
func AutoIncrement(name string) string {
	m := trailingDigits.FindStringSubmatch(name)
	if m == nil {
		return name + "1"
	}
	n, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return name + "1"
	}
	// 前导零不保留，F009 -> F10
	return m[1] + strconv.FormatUint(n+1, 10)
}
