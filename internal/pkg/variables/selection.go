package variables

import "github.com/amformscst/backend/internal/model"

// Selection 笔记本当前的选择路径，路径上任何一步缺失则其后均为 nil
type Selection struct {
	Note     *model.Note
	Dealer   *model.Dealer
	Company  *model.Company
	Contact  *model.Contact
	Form     *model.Form
	TestDeal *model.TestDeal
}

// ContextProvider 返回当前笔记本，可能为 nil
type ContextProvider func() *model.Notebook

// Resolve 沿 笔记 -> 经销商 -> 公司、笔记 -> 联系人、笔记 -> 表单 -> 测试交易 解析选择
func Resolve(nb *model.Notebook) Selection {
	var sel Selection
	if nb == nil {
		return sel
	}

	note, ok := nb.Notes.SelectedItem()
	if !ok || note == nil {
		return sel
	}
	sel.Note = note

	if dealer, ok := note.Dealers.SelectedItem(); ok && dealer != nil {
		sel.Dealer = dealer
		if company, ok := dealer.Companies.SelectedItem(); ok && company != nil {
			sel.Company = company
		}
	}
	if contact, ok := note.Contacts.SelectedItem(); ok && contact != nil {
		sel.Contact = contact
	}
	if form, ok := note.Forms.SelectedItem(); ok && form != nil {
		sel.Form = form
		if deal, ok := form.TestDeals.SelectedItem(); ok && deal != nil {
			sel.TestDeal = deal
		}
	}
	return sel
}
