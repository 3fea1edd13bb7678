package model

import "github.com/google/uuid"

// Identifiable 可选择列表中的元素
type Identifiable interface {
	Identity() string
}

// SelectableList 带当前选中项的列表，SelectedID 为空表示未选中
type SelectableList[T Identifiable] struct {
	Items      []T    `json:"items"`
	SelectedID string `json:"selected_id,omitempty"`
}

// SelectedItem 返回当前选中项
func (l *SelectableList[T]) SelectedItem() (T, bool) {
	var zero T
	if l == nil || l.SelectedID == "" {
		return zero, false
	}
	for _, item := range l.Items {
		if item.Identity() == l.SelectedID {
			return item, true
		}
	}
	return zero, false
}

// Select 选中指定 ID，空 ID 清除选择；ID 不存在时返回 false 且不改变选择
func (l *SelectableList[T]) Select(id string) bool {
	if id == "" {
		l.SelectedID = ""
		return true
	}
	for _, item := range l.Items {
		if item.Identity() == id {
			l.SelectedID = id
			return true
		}
	}
	return false
}

// Add 追加元素，不改变选择
func (l *SelectableList[T]) Add(item T) {
	l.Items = append(l.Items, item)
}

// Remove 按 ID 删除，删除的是选中项时清除选择
func (l *SelectableList[T]) Remove(id string) bool {
	for i, item := range l.Items {
		if item.Identity() == id {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			if l.SelectedID == id {
				l.SelectedID = ""
			}
			return true
		}
	}
	return false
}

func (l *SelectableList[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Items)
}

// FormFormat 表单输出格式
type FormFormat string

const (
	FormFormatPdf          FormFormat = "Pdf"
	FormFormatLegacyImpact FormFormat = "LegacyImpact"
)

// Name 未设置时视为 Pdf
func (f FormFormat) Name() string {
	if f == "" {
		return string(FormFormatPdf)
	}
	return string(f)
}

// Notebook 工作笔记本，当前选中的笔记即变量上下文
type Notebook struct {
	Notes SelectableList[*Note] `json:"notes"`
}

// NewNotebook 创建空笔记本
func NewNotebook() *Notebook {
	return &Notebook{}
}

// Note 一条工单笔记
type Note struct {
	ID        string                   `json:"id"`
	CaseText  string                   `json:"case_text"`
	NotesText string                   `json:"notes_text"`
	NotesXaml string                   `json:"notes_xaml,omitempty"`
	Dealers   SelectableList[*Dealer]  `json:"dealers"`
	Contacts  SelectableList[*Contact] `json:"contacts"`
	Forms     SelectableList[*Form]    `json:"forms"`
}

func NewNote(caseText string) *Note {
	return &Note{ID: uuid.New().String(), CaseText: caseText}
}

func (n *Note) Identity() string {
	if n == nil {
		return ""
	}
	return n.ID
}

// Dealer 经销商
type Dealer struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	ServerCode string                   `json:"server_code"`
	Notable    bool                     `json:"notable"`
	Companies  SelectableList[*Company] `json:"companies"`
}

func NewDealer(name, serverCode string) *Dealer {
	return &Dealer{ID: uuid.New().String(), Name: name, ServerCode: serverCode}
}

func (d *Dealer) Identity() string {
	if d == nil {
		return ""
	}
	return d.ID
}

// NotableCompanyCodes 标记为 notable 且有编码的公司编码
func (d *Dealer) NotableCompanyCodes() []string {
	if d == nil {
		return nil
	}
	var codes []string
	for _, c := range d.Companies.Items {
		if c != nil && c.Notable && c.CompanyCode != "" {
			codes = append(codes, c.CompanyCode)
		}
	}
	return codes
}

// Company 经销商下的公司
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CompanyCode string `json:"company_code"`
	Notable     bool   `json:"notable"`
}

func NewCompany(name, code string) *Company {
	return &Company{ID: uuid.New().String(), Name: name, CompanyCode: code}
}

func (c *Company) Identity() string {
	if c == nil {
		return ""
	}
	return c.ID
}

// Contact 联系人
type Contact struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Email                   string `json:"email"`
	Phone                   string `json:"phone"`
	PhoneExtension          string `json:"phone_extension"`
	PhoneExtensionDelimiter string `json:"phone_extension_delimiter"`
}

func NewContact(name string) *Contact {
	return &Contact{ID: uuid.New().String(), Name: name, PhoneExtensionDelimiter: "x"}
}

func (c *Contact) Identity() string {
	if c == nil {
		return ""
	}
	return c.ID
}

// Form 工单涉及的表单
type Form struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Notes     string                    `json:"notes"`
	Notable   bool                      `json:"notable"`
	Format    FormFormat                `json:"format"`
	TestDeals SelectableList[*TestDeal] `json:"test_deals"`
}

func NewForm(name string) *Form {
	return &Form{ID: uuid.New().String(), Name: name, Format: FormFormatPdf}
}

func (f *Form) Identity() string {
	if f == nil {
		return ""
	}
	return f.ID
}

// TestDeal 用于验证表单的测试交易
type TestDeal struct {
	ID         string `json:"id"`
	DealNumber string `json:"deal_number"`
	Purpose    string `json:"purpose"`
}

func NewTestDeal(dealNumber, purpose string) *TestDeal {
	return &TestDeal{ID: uuid.New().String(), DealNumber: dealNumber, Purpose: purpose}
}

func (t *TestDeal) Identity() string {
	if t == nil {
		return ""
	}
	return t.ID
}
