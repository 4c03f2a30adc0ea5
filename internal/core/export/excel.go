package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const moneyFormat = "#,##0.00"

// ExcelExporter writes one worksheet per table using excelize.
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Export(doc *Document, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f, doc.Style)
	if err != nil {
		return err
	}

	for i, table := range doc.Tables {
		name := sheetName(table.Name, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		title := ""
		if i == 0 {
			title = doc.Title
		}
		if err := e.writeTable(f, name, title, doc.Description, table, doc.Style, styles); err != nil {
			return err
		}
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}

type sheetStyles struct {
	title, header, odd, even, oddMoney, evenMoney, footer, footerMoney int
}

func newSheetStyles(f *excelize.File, style Style) (*sheetStyles, error) {
	font := func(bold bool, size float64, color string) *excelize.Font {
		return &excelize.Font{Bold: bold, Size: size, Family: style.FontFamily, Color: color}
	}
	fill := func(color string) excelize.Fill {
		if color == "" || strings.EqualFold(color, "#FFFFFF") {
			return excelize.Fill{}
		}
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHashFromColor(color)}}
	}
	numFmt := moneyFormat

	even := style.RowBgColor1
	if style.AlternateRows {
		even = style.RowBgColor2
	}

	s := &sheetStyles{}
	defs := []struct {
		dst *int
		def *excelize.Style
	}{
		{&s.title, &excelize.Style{Font: font(true, 14, "")}},
		{&s.header, &excelize.Style{
			Font:      font(true, style.FontSize, "FFFFFF"),
			Fill:      fill(style.HeaderBgColor),
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&s.odd, &excelize.Style{Font: font(false, style.FontSize, ""), Fill: fill(style.RowBgColor1)}},
		{&s.even, &excelize.Style{Font: font(false, style.FontSize, ""), Fill: fill(even)}},
		{&s.oddMoney, &excelize.Style{Font: font(false, style.FontSize, ""), Fill: fill(style.RowBgColor1), CustomNumFmt: &numFmt}},
		{&s.evenMoney, &excelize.Style{Font: font(false, style.FontSize, ""), Fill: fill(even), CustomNumFmt: &numFmt}},
		{&s.footer, &excelize.Style{Font: font(true, style.FontSize, "")}},
		{&s.footerMoney, &excelize.Style{Font: font(true, style.FontSize, ""), CustomNumFmt: &numFmt}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.def)
		if err != nil {
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}

func (e *ExcelExporter) writeTable(f *excelize.File, sheet, title, description string, table Table, style Style, st *sheetStyles) error {
	row := 1
	if title != "" {
		f.SetCellValue(sheet, cellName(1, row), title)
		f.SetCellStyle(sheet, cellName(1, row), cellName(1, row), st.title)
		row++
		if description != "" {
			f.SetCellValue(sheet, cellName(1, row), description)
			row++
		}
		row++
	}

	headerRow := row
	for col, header := range table.Headers {
		cell := cellName(col+1, row)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, st.header)
		if width, ok := style.ColumnWidths[col]; ok {
			name := columnNumberToName(col + 1)
			f.SetColWidth(sheet, name, name, width)
		}
	}
	row++

	for i, values := range table.Rows {
		plain, money := st.odd, st.oddMoney
		if i%2 == 1 {
			plain, money = st.even, st.evenMoney
		}
		writeRow(f, sheet, row, values, plain, money)
		row++
	}

	if len(table.Footer) > 0 {
		writeRow(f, sheet, row, table.Footer, st.footer, st.footerMoney)
	}

	if style.FreezeHeader && len(table.Headers) > 0 {
		f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: cellName(1, headerRow+1),
			ActivePane:  "bottomLeft",
		})
	}
	if style.AutoFilter && len(table.Headers) > 0 && len(table.Rows) > 0 {
		ref := fmt.Sprintf("%s:%s", cellName(1, headerRow), cellName(len(table.Headers), headerRow+len(table.Rows)))
		if err := f.AutoFilter(sheet, ref, nil); err != nil {
			return fmt.Errorf("failed to add auto filter: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any, plain, money int) {
	for col, value := range values {
		cell := cellName(col+1, row)
		styleID := plain
		if d, ok := value.(decimal.Decimal); ok {
			value = d.InexactFloat64()
			styleID = money
		}
		f.SetCellValue(sheet, cell, value)
		f.SetCellStyle(sheet, cell, cell, styleID)
	}
}

// sheetName trims to Excel's 31 character limit and falls back to a
// positional name.
func sheetName(name string, index int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("Sheet%d", index+1)
	}
	if len([]rune(name)) > 31 {
		name = string([]rune(name)[:31])
	}
	return name
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnNumberToName(col), row)
}

// columnNumberToName converts 1 -> A, 27 -> AA.
func columnNumberToName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+(col%26))) + name
		col /= 26
	}
	return name
}

func stripHashFromColor(color string) string {
	return strings.TrimPrefix(color, "#")
}
