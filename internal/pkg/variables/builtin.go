package variables

import (
	"strings"

	"github.com/amformscst/backend/internal/model"
)

// 组织常量的键
const (
	LooseMailingName    = "AMMailingName"
	LooseStreetAddress  = "AMStreetAddress"
	LooseCity           = "AMCity"
	LooseState          = "AMState"
	LooseZip            = "AMZip"
	LooseCityStateZip   = "AMCityStateZip"
	LooseMailingAddress = "AMMailingAddress"
)

// UserInputValue User:Input 未覆盖时的值
const UserInputValue = "[User Input]"

// BuildRegistry 构建内置变量，每个变量的取值都在调用时经 provider 读取上下文
func BuildRegistry(provider ContextProvider, loose map[string]string) []*Variable {
	sel := func() Selection {
		if provider == nil {
			return Resolve(nil)
		}
		return Resolve(provider())
	}
	constant := func(key string) func() string {
		return func() string {
			return loose[key]
		}
	}

	return []*Variable{
		NewVariable("SelectedDealer:ServerID", "serverid", "selecteddealer:", "Server ID#",
			[]string{"server", "serv", "code", "id"},
			func() string {
				if d := sel().Dealer; d != nil {
					return d.ServerCode
				}
				return ""
			}),
		NewVariable("SelectedCompany:CompanyCode", "companycode", "selectedcompany:", "Company#(s)",
			[]string{"code"},
			func() string {
				if c := sel().Company; c != nil {
					return c.CompanyCode
				}
				return ""
			}),
		NewVariable("SelectedDealer:Name", "name", "selecteddealer:", "Dealership Name", nil,
			func() string {
				if d := sel().Dealer; d != nil {
					return d.Name
				}
				return ""
			}),
		NewVariable("SelectedContact:Name", "name", "selectedcontact:", "Contact Name", nil,
			func() string {
				if c := sel().Contact; c != nil {
					return c.Name
				}
				return ""
			}),
		NewVariable("SelectedContact:EmailAddress", "emailaddress", "selectedcontact:", "E-Mail Address",
			[]string{"email"},
			func() string {
				if c := sel().Contact; c != nil {
					return c.Email
				}
				return ""
			}),
		NewVariable("SelectedContact:Phone", "phone", "selectedcontact:", "Phone#", nil,
			func() string {
				return formatPhone(sel().Contact)
			}),
		NewVariable("SelectedNote:Notes", "notes", "selectednote:", "Notes", nil,
			func() string {
				if n := sel().Note; n != nil && strings.TrimSpace(n.NotesText) != "" {
					return n.NotesText
				}
				return ""
			}),
		NewVariable("SelectedNote:CaseNumber", "casenumber", "selectednote:", "Case#",
			[]string{"caseno", "case"},
			func() string {
				if n := sel().Note; n != nil {
					return n.CaseText
				}
				return ""
			}),
		NewVariable("SelectedNote:Forms", "forms", "selectednote:", "All Forms",
			[]string{"form"},
			func() string {
				return ">" + strings.Join(formNames(sel().Note, false), "\n>")
			}),
		NewVariable("SelectedNote:NotableForms", "notableforms", "selectednote:", "Notable Forms",
			[]string{"notable"},
			func() string {
				return ">" + strings.Join(formNames(sel().Note, true), "\n>")
			}),
		NewVariable("SelectedContact:FirstName", "firstname", "selectedcontact:", "First Name", nil,
			func() string {
				c := sel().Contact
				if c == nil {
					return ""
				}
				if i := strings.IndexByte(c.Name, ' '); i > -1 {
					return c.Name[:i]
				}
				return c.Name
			}),
		NewVariable("AMMail:FullAddress", "fulladdress", "ammail:", "AutoMate Forms Mailing Address",
			[]string{"all", "full", "mailingaddress", "mailto"}, constant(LooseMailingAddress)),
		NewVariable("AMMail:Name", "name", "ammail:", "AutoMate Forms Mailing Address - Name",
			nil, constant(LooseMailingName)),
		NewVariable("AMMail:Street", "streetaddress", "ammail:", "AutoMate Forms Mailing Address - Street Address",
			[]string{"street", "line1"}, constant(LooseStreetAddress)),
		NewVariable("AMMail:City", "city", "ammail:", "AutoMate Forms Mailing Address - City",
			nil, constant(LooseCity)),
		NewVariable("AMMail:State", "state", "ammail:", "AutoMate Forms Mailing Address - State",
			nil, constant(LooseState)),
		NewVariable("AMMail:ZipCode", "zipcode", "ammail:", "AutoMate Forms Mailing Address - Zip Code",
			[]string{"postalcode", "zip"}, constant(LooseZip)),
		NewVariable("AMMail:CSZ", "csz", "ammail:", "AutoMate Forms Mailing Address - City, State Zip",
			[]string{"csz", "line2"}, constant(LooseCityStateZip)),
		NewVariable("SelectedTestDeal:DealNumber", "dealnumber", "selectedtestdeal:", "Test Deal#",
			[]string{"dealno", "deal"},
			func() string {
				if d := sel().TestDeal; d != nil {
					return d.DealNumber
				}
				return ""
			}),
		NewVariable("SelectedForm:Notes", "notes", "selectedform:", "Selected form notes", nil,
			func() string {
				if f := sel().Form; f != nil {
					return f.Notes
				}
				return ""
			}),
		NewVariable("SelectedForm:Name", "name", "selectedform:", "Selected form name", nil,
			func() string {
				if f := sel().Form; f != nil {
					return f.Name
				}
				return ""
			}),
		NewVariable("SelectedNote:SummarizeNotableForms", "summarizenotableforms", "selectednote:",
			"Names and notes for notable forms", nil,
			func() string {
				return summarizeNotableForms(sel().Note)
			}),
		NewVariable("SelectedForm:Type", "formtype", "selectedform:", "Selected form type", nil,
			func() string {
				if f := sel().Form; f != nil {
					return f.Format.Name()
				}
				return model.FormFormatPdf.Name()
			}),
		NewVariable(UserInputName, "input", "user:", "User Input - No value", nil,
			func() string {
				return UserInputValue
			}),
		NewVariable("SelectedNote:NotableDealersAndCompanies", "notabledealersandcompanies", "selectednote:",
			"Notable dealers and companies in d1_1,2, d2_3,4 format.",
			[]string{"serversandcompanies"},
			func() string {
				return notableDealersAndCompanies(sel().Note)
			}),
		NewVariable("SelectedDealer:NotableCompanies", "notablecompanies", "selecteddealer:",
			"Notable companies for selected dealer",
			[]string{"companies"},
			func() string {
				return strings.Join(sel().Dealer.NotableCompanyCodes(), ",")
			}),
	}
}

func formatPhone(c *model.Contact) string {
	if c == nil {
		return ""
	}
	if strings.TrimSpace(c.PhoneExtension) == "" {
		return c.Phone + c.PhoneExtension
	}
	return c.Phone + " " + c.PhoneExtensionDelimiter + c.PhoneExtension
}

func formNames(note *model.Note, notableOnly bool) []string {
	if note == nil {
		return nil
	}
	var names []string
	for _, f := range note.Forms.Items {
		if f == nil || f.Name == "" || (notableOnly && !f.Notable) {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

func summarizeNotableForms(note *model.Note) string {
	if note == nil {
		return ""
	}
	var parts []string
	for _, f := range note.Forms.Items {
		if f == nil || !f.Notable || f.Name == "" {
			continue
		}
		deals := make([]string, 0, f.TestDeals.Len())
		for _, td := range f.TestDeals.Items {
			if td != nil {
				deals = append(deals, td.DealNumber)
			}
		}
		parts = append(parts, "Name: "+f.Name+
			"\nFormat: "+f.Format.Name()+
			"\nTest Deals: "+strings.Join(deals, ", ")+
			"\nNotes: "+f.Notes)
	}
	return strings.Join(parts, "\n\n")
}

// notableDealersAndCompanies 形如 "srv1_01,02, srv2_03"
// 只有至少一个 notable 经销商带有 notable 公司编码时才输出
func notableDealersAndCompanies(note *model.Note) string {
	if note == nil {
		return ""
	}
	var dealers []*model.Dealer
	anyCompany := false
	for _, d := range note.Dealers.Items {
		if d == nil || !d.Notable || strings.TrimSpace(d.ServerCode) == "" {
			continue
		}
		dealers = append(dealers, d)
		if len(d.NotableCompanyCodes()) > 0 {
			anyCompany = true
		}
	}
	if !anyCompany {
		return ""
	}

	parts := make([]string, 0, len(dealers))
	for _, d := range dealers {
		parts = append(parts, d.ServerCode+"_"+strings.Join(d.NotableCompanyCodes(), ","))
	}
	return strings.Join(parts, ", ")
}
