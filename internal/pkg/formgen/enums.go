package formgen

import (
	"fmt"
	"strings"
)

// Format 表单打印类型
type Format int

const (
	FormatImpact Format = iota
	FormatImpactLabelRoll
	FormatImpactLabelSheet
	FormatLaserLabelSheet
	FormatLegacyImpact
	FormatLegacyLaser
	FormatPdf
)

var formatNames = []string{
	"Impact",
	"ImpactLabelRoll",
	"ImpactLabelSheet",
	"LaserLabelSheet",
	"LegacyImpact",
	"LegacyLaser",
	"Pdf",
}

// ParseFormat 未知值回退为 Pdf
func ParseFormat(s string) Format {
	for i, name := range formatNames {
		if name == s {
			return Format(i)
		}
	}
	return FormatPdf
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return formatNames[FormatPdf]
	}
	return formatNames[f]
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	*f = ParseFormat(string(text))
	return nil
}

// FormCategory 表单分类
type FormCategory int

const (
	CategoryAftermarket FormCategory = iota
	CategoryBuyersGuide
	CategoryCommission
	CategoryCreditLifeAH
	CategoryCustom
	CategoryDealRecap
	CategoryEnvelopeDealJacket
	CategoryExtendedWarranties
	CategoryGap
	CategoryInsurance
	CategoryLabel
	CategoryLease
	CategoryMaintenance
	CategoryMemberApplication
	CategoryNoticeToCosigner
	CategoryNoticeToCustomer
	CategoryOther
	CategoryPurchaseOrderInvoice
	CategoryRebateIncentive
	CategoryRetail
	CategoryStateSpecificDMV
	CategoryWeOweYouOweDueBill
)

// categoryNames 文件中使用的名称，NoticeToCoSigner 的大小写与常量名不同
var categoryNames = []string{
	"Aftermarket",
	"BuyersGuide",
	"Commission",
	"CreditLifeAH",
	"Custom",
	"DealRecap",
	"EnvelopeDealJacket",
	"ExtendedWarranties",
	"Gap",
	"Insurance",
	"Label",
	"Lease",
	"Maintenance",
	"MemberApplication",
	"NoticeToCoSigner",
	"NoticeToCustomer",
	"Other",
	"PurchaseOrderInvoice",
	"RebateIncentive",
	"Retail",
	"StateSpecificDMV",
	"WeOweYouOweDueBill",
}

// ParseCategory 未知值回退为 Other
func ParseCategory(s string) FormCategory {
	for i, name := range categoryNames {
		if name == s {
			return FormCategory(i)
		}
	}
	return CategoryOther
}

func (c FormCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return categoryNames[CategoryOther]
	}
	return categoryNames[c]
}

func (c FormCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *FormCategory) UnmarshalText(text []byte) error {
	*c = ParseCategory(string(text))
	return nil
}

// CodeType 代码行类型
type CodeType string

const (
	CodeInit   CodeType = "INIT"
	CodePrompt CodeType = "PROMPT"
	CodePost   CodeType = "POST"
)

// ParseCodeType 大小写不敏感，未知类型原样保留但不会被输出
func ParseCodeType(s string) CodeType {
	upper := CodeType(strings.ToUpper(strings.TrimSpace(s)))
	switch upper {
	case CodeInit, CodePrompt, CodePost:
		return upper
	}
	return CodeType(s)
}

func (t CodeType) Valid() bool {
	return t == CodeInit || t == CodePrompt || t == CodePost
}

// Categories 全部分类名，按枚举顺序
func Categories() []string {
	out := make([]string, len(categoryNames))
	copy(out, categoryNames)
	return out
}

// Formats 全部打印类型名，按枚举顺序
func Formats() []string {
	out := make([]string, len(formatNames))
	copy(out, formatNames)
	return out
}

// errIndex 下标越界
func errIndex(kind string, index, count int) error {
	return fmt.Errorf("%w: %s %d of %d", ErrIndexOutOfRange, kind, index, count)
}
