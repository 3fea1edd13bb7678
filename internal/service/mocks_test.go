package service

import (
	"github.com/amformscst/backend/internal/model"
)

type mockTemplateStore struct {
	LoadTemplatesFunc func() ([]*model.TextTemplate, error)
	SaveTemplatesFunc func(templates []*model.TextTemplate) error
	saved             [][]*model.TextTemplate
}

func (m *mockTemplateStore) LoadTemplates() ([]*model.TextTemplate, error) {
	if m.LoadTemplatesFunc != nil {
		return m.LoadTemplatesFunc()
	}
	return nil, nil
}

func (m *mockTemplateStore) SaveTemplates(templates []*model.TextTemplate) error {
	m.saved = append(m.saved, templates)
	if m.SaveTemplatesFunc != nil {
		return m.SaveTemplatesFunc(templates)
	}
	return nil
}

type mockNoteRepo struct {
	LoadFunc func() (*model.Notebook, error)
	SaveFunc func(nb *model.Notebook) error
	saves    int
}

func (m *mockNoteRepo) Load() (*model.Notebook, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return model.NewNotebook(), nil
}

func (m *mockNoteRepo) Save(nb *model.Notebook) error {
	m.saves++
	if m.SaveFunc != nil {
		return m.SaveFunc(nb)
	}
	return nil
}

// sampleNotebook 选中一条笔记及其经销商、公司、联系人、表单和测试交易
func sampleNotebook() *model.Notebook {
	nb := model.NewNotebook()
	note := model.NewNote("12345")

	dealer := model.NewDealer("Main Street Motors", "srv1")
	company := model.NewCompany("Main Street Used", "02")
	company.Notable = true
	dealer.Companies.Add(company)
	dealer.Companies.Select(company.ID)
	note.Dealers.Add(dealer)
	note.Dealers.Select(dealer.ID)

	contact := model.NewContact("Jane Smith")
	contact.Email = "jane@example.com"
	note.Contacts.Add(contact)
	note.Contacts.Select(contact.ID)

	form := model.NewForm("Retail Contract")
	deal := model.NewTestDeal("D100", "retail")
	form.TestDeals.Add(deal)
	form.TestDeals.Select(deal.ID)
	note.Forms.Add(form)
	note.Forms.Select(form.ID)

	nb.Notes.Add(note)
	nb.Notes.Select(note.ID)
	return nb
}
