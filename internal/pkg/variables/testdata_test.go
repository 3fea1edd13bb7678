package variables

import "github.com/amformscst/backend/internal/model"

// sampleNotebook 一条选中的笔记，带经销商、公司、联系人、表单和测试交易
func sampleNotebook() *model.Notebook {
	nb := model.NewNotebook()
	note := model.NewNote("12345")
	note.NotesText = "customer called about forms"

	d1 := model.NewDealer("Main Street Motors", "srv1")
	d1.Notable = true
	c1 := model.NewCompany("Main Street Motors LLC", "01")
	c1.Notable = true
	c2 := model.NewCompany("Main Street Leasing", "02")
	c2.Notable = true
	c3 := model.NewCompany("Ignored", "03")
	d1.Companies.Add(c1)
	d1.Companies.Add(c2)
	d1.Companies.Add(c3)
	d1.Companies.Select(c2.ID)

	d2 := model.NewDealer("Second Dealer", "srv2")
	d2.Notable = true
	d3 := model.NewDealer("Quiet Dealer", "srv3")

	note.Dealers.Add(d1)
	note.Dealers.Add(d2)
	note.Dealers.Add(d3)
	note.Dealers.Select(d1.ID)

	contact := model.NewContact("Jane Q Doe")
	contact.Email = "jane@example.com"
	contact.Phone = "555-1234"
	contact.PhoneExtension = "12"
	note.Contacts.Add(contact)
	note.Contacts.Select(contact.ID)

	f1 := model.NewForm("Buyers Order")
	f1.Notable = true
	f1.Notes = "prints off page"
	f1.Format = model.FormFormatLegacyImpact
	f1.TestDeals.Add(model.NewTestDeal("1001", "cash"))
	td := model.NewTestDeal("1002", "finance")
	f1.TestDeals.Add(td)
	f1.TestDeals.Select(td.ID)

	f2 := model.NewForm("Odometer")
	f3 := model.NewForm("")
	f3.Notable = true

	note.Forms.Add(f1)
	note.Forms.Add(f2)
	note.Forms.Add(f3)
	note.Forms.Select(f1.ID)

	nb.Notes.Add(note)
	nb.Notes.Select(note.ID)
	return nb
}

func sampleVariables(nb *model.Notebook) []*Variable {
	return BuildRegistry(func() *model.Notebook { return nb }, map[string]string{
		LooseMailingName:    "Attn: A/M Forms (Sue)",
		LooseStreetAddress:  "131 Griffis Rd",
		LooseCity:           "Gloversville",
		LooseState:          "NY",
		LooseZip:            "12078",
		LooseCityStateZip:   "Gloversville, NY 12078",
		LooseMailingAddress: "Attn: A/M Forms (Sue)\n131 Griffis Rd\nGloversville, NY 12078",
	})
}

func mustLookup(vars []*Variable, name string) *Variable {
	v, ok := Lookup(vars, name)
	if !ok {
		panic("variable not registered: " + name)
	}
	return v
}
