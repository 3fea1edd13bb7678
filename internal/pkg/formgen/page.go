package formgen

import "strconv"

// Settings formDef 根元素上的属性
type Settings struct {
	Version             int    `json:"version"`
	PublishedUUID       string `json:"published_uuid"`
	LegacyImport        bool   `json:"legacy_import"`
	TotalPages          int    `json:"total_pages"`
	DefaultPoints       int    `json:"default_points"`
	MissingSourceJpeg   bool   `json:"missing_source_jpeg"`
	Duplex              bool   `json:"duplex"`
	MaxAccessoryLines   int    `json:"max_accessory_lines"`
	PrePrintedLaserForm bool   `json:"pre_printed_laser_form"`
}

func parseSettings(e *Element) Settings {
	return Settings{
		Version:             e.intAttr("version"),
		PublishedUUID:       e.Attr("publishedUUID"),
		LegacyImport:        e.boolAttr("legacyImport"),
		TotalPages:          e.intAttr("totalPages"),
		DefaultPoints:       e.intAttr("defaultPoints"),
		MissingSourceJpeg:   e.boolAttr("missingSourceJpeg"),
		Duplex:              e.boolAttr("duplex"),
		MaxAccessoryLines:   e.intAttr("maxAccessoryLines"),
		PrePrintedLaserForm: e.boolAttr("prePrintedLaserForm"),
	}
}

func (s Settings) attrs() []string {
	return []string{
		"version", strconv.Itoa(s.Version),
		"publishedUUID", s.PublishedUUID,
		"legacyImport", formatBool(s.LegacyImport),
		"totalPages", strconv.Itoa(s.TotalPages),
		"defaultPoints", strconv.Itoa(s.DefaultPoints),
		"missingSourceJpeg", formatBool(s.MissingSourceJpeg),
		"duplex", formatBool(s.Duplex),
		"maxAccessoryLines", strconv.Itoa(s.MaxAccessoryLines),
		"prePrintedLaserForm", formatBool(s.PrePrintedLaserForm),
	}
}

// FormPage 一页及其字段
type FormPage struct {
	PageNumber          int          `json:"page_number"`
	DefaultPoints       int          `json:"default_points"`
	LeftPrinterMargin   int          `json:"left_printer_margin"`
	RightPrinterMargin  int          `json:"right_printer_margin"`
	TopPrinterMargin    int          `json:"top_printer_margin"`
	BottomPrinterMargin int          `json:"bottom_printer_margin"`
	Fields              []*FormField `json:"fields"`
}

func parsePage(e *Element) *FormPage {
	page := &FormPage{
		PageNumber:          e.intAttr("pageNumber"),
		DefaultPoints:       e.intAttr("defaultPoints"),
		LeftPrinterMargin:   e.intAttr("leftPrinterMargin"),
		RightPrinterMargin:  e.intAttr("rightPrinterMargin"),
		TopPrinterMargin:    e.intAttr("topPrinterMargin"),
		BottomPrinterMargin: e.intAttr("bottomPrinterMargin"),
	}
	for _, child := range e.Children {
		if child.Name != "fields" {
			continue
		}
		// <fields> 下是 <entry><key/><value/></entry> 形式的字典
		for _, entry := range child.Children {
			if entry.Name != "entry" {
				continue
			}
			value := entry.Child("value")
			if value == nil {
				continue
			}
			field := parseField(value)
			if value.Attr("uniqueId") == "" {
				if key := entry.Child("key"); key != nil {
					field.Settings.ID = parseInt(key.InnerText())
				}
			}
			page.Fields = append(page.Fields, field)
		}
	}
	return page
}

func (p *FormPage) write(w *writer) {
	w.start("pages",
		"pageNumber", strconv.Itoa(p.PageNumber),
		"defaultPoints", strconv.Itoa(p.DefaultPoints),
		"leftPrinterMargin", strconv.Itoa(p.LeftPrinterMargin),
		"rightPrinterMargin", strconv.Itoa(p.RightPrinterMargin),
		"topPrinterMargin", strconv.Itoa(p.TopPrinterMargin),
		"bottomPrinterMargin", strconv.Itoa(p.BottomPrinterMargin),
	)
	w.start("fields")
	for _, f := range p.Fields {
		if f == nil {
			continue
		}
		w.start("entry")
		w.element("key", strconv.Itoa(f.Settings.ID))
		f.write(w)
		w.end("entry")
	}
	w.end("fields")
	w.end("pages")
}

func (p *FormPage) equal(o *FormPage) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.PageNumber != o.PageNumber ||
		p.DefaultPoints != o.DefaultPoints ||
		p.LeftPrinterMargin != o.LeftPrinterMargin ||
		p.RightPrinterMargin != o.RightPrinterMargin ||
		p.TopPrinterMargin != o.TopPrinterMargin ||
		p.BottomPrinterMargin != o.BottomPrinterMargin {
		return false
	}
	if len(p.Fields) != len(o.Fields) {
		return false
	}
	for i := range p.Fields {
		if !p.Fields[i].equal(o.Fields[i]) {
			return false
		}
	}
	return true
}

// Rect 激光打印时字段的位置和尺寸
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FieldSettings value 元素上的属性
type FieldSettings struct {
	ID                  int     `json:"id"`
	Type                string  `json:"type"`
	LegacyCol           int     `json:"legacy_col"`
	LegacyLine          int     `json:"legacy_line"`
	LaserRect           Rect    `json:"laser_rect"`
	ManualSize          bool    `json:"manual_size"`
	FontSize            int     `json:"font_size"`
	Bold                bool    `json:"bold"`
	ShrinkToFit         bool    `json:"shrink_to_fit"`
	PictureLeft         int     `json:"picture_left"`
	PictureRight        int     `json:"picture_right"`
	DisplayPartialField bool    `json:"display_partial_field"`
	StartChar           int     `json:"start_char"`
	EndChar             int     `json:"end_char"`
	PerCharDeltaPts     float64 `json:"per_char_delta_pts"`
	FontAlignment       string  `json:"font_alignment"`
}

// FormField 页上的一个字段
type FormField struct {
	Expression   string        `json:"expression"`
	SampleData   string        `json:"sample_data"`
	FormatOption string        `json:"format_option"`
	Settings     FieldSettings `json:"settings"`
}

func parseField(e *Element) *FormField {
	field := &FormField{
		Settings: FieldSettings{
			ID:         e.intAttr("uniqueId"),
			Type:       e.Attr("formFieldType"),
			LegacyCol:  e.intAttr("legacyCol"),
			LegacyLine: e.intAttr("legacyLine"),
			LaserRect: Rect{
				X:      e.intAttr("x"),
				Y:      e.intAttr("y"),
				Width:  e.intAttr("w"),
				Height: e.intAttr("h"),
			},
			ManualSize:          e.boolAttr("manualSize"),
			FontSize:            e.intAttr("fontPoints"),
			Bold:                e.boolAttr("boldFont"),
			ShrinkToFit:         e.boolAttr("shrinkFontToFit"),
			PictureLeft:         e.intAttr("pictureLeft"),
			PictureRight:        e.intAttr("pictureRight"),
			DisplayPartialField: e.boolAttr("displayPartialField"),
			StartChar:           e.intAttr("startChar"),
			EndChar:             e.intAttr("endChar"),
			PerCharDeltaPts:     parseFloat(e.Attr("perCharDeltaPts")),
			FontAlignment:       e.Attr("alignment"),
		},
	}
	for _, child := range e.Children {
		switch child.Name {
		case "expression":
			field.Expression = child.InnerText()
		case "sampleData":
			field.SampleData = child.InnerText()
		case "formatOption":
			field.FormatOption = child.InnerText()
		}
	}
	return field
}

func (f *FormField) write(w *writer) {
	s := f.Settings
	w.start("value",
		"uniqueId", strconv.Itoa(s.ID),
		"formFieldType", s.Type,
		"legacyCol", strconv.Itoa(s.LegacyCol),
		"legacyLine", strconv.Itoa(s.LegacyLine),
		"x", strconv.Itoa(s.LaserRect.X),
		"y", strconv.Itoa(s.LaserRect.Y),
		"w", strconv.Itoa(s.LaserRect.Width),
		"h", strconv.Itoa(s.LaserRect.Height),
		"manualSize", formatBool(s.ManualSize),
		"fontPoints", strconv.Itoa(s.FontSize),
		"boldFont", formatBool(s.Bold),
		"shrinkFontToFit", formatBool(s.ShrinkToFit),
		"pictureLeft", strconv.Itoa(s.PictureLeft),
		"pictureRight", strconv.Itoa(s.PictureRight),
		"displayPartialField", formatBool(s.DisplayPartialField),
		"startChar", strconv.Itoa(s.StartChar),
		"endChar", strconv.Itoa(s.EndChar),
		"perCharDeltaPts", formatFloat(s.PerCharDeltaPts),
		"alignment", s.FontAlignment,
	)
	w.element("expression", f.Expression)
	w.element("sampleData", f.SampleData)
	w.element("formatOption", f.FormatOption)
	w.end("value")
}

func (f *FormField) equal(o *FormField) bool {
	if f == nil || o == nil {
		return f == o
	}
	return *f == *o
}
