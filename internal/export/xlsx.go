package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Skrip"

// XLSXRenderer produces a workbook with one row per scene.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) Extension() string {
	return ".xlsx"
}

// headerRow is the 1-based row of the column headers; scenes follow it.
const headerRow = 5

func (r *XLSXRenderer) Render(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	meta := [][2]string{
		{doc.Title, ""},
		{"Pengajar", doc.Author},
		{"Estimasi durasi", doc.Duration},
	}
	for i, m := range meta {
		if err := f.SetSheetRow(xlsxSheet, fmt.Sprintf("A%d", i+1), &[]any{m[0], m[1]}); err != nil {
			return nil, err
		}
	}

	headers := []any{"No", "Scene", "Narasi", "Kalimat Kunci", "Visual"}
	if err := f.SetSheetRow(xlsxSheet, fmt.Sprintf("A%d", headerRow), &headers); err != nil {
		return nil, err
	}
	for i, s := range doc.Sections {
		row := []any{s.Number, s.Scene, s.Narration, strings.Join(s.KeySentences, "\n"), s.VisualPrompt}
		if err := f.SetSheetRow(xlsxSheet, fmt.Sprintf("A%d", headerRow+1+i), &row); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(xlsxSheet, "A1", "A1", bold)
	_ = f.SetCellStyle(xlsxSheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("E%d", headerRow), bold)
	if n := len(doc.Sections); n > 0 {
		_ = f.SetCellStyle(xlsxSheet, fmt.Sprintf("A%d", headerRow+1), fmt.Sprintf("E%d", headerRow+n), wrap)
	}
	_ = f.SetColWidth(xlsxSheet, "A", "A", 6)
	_ = f.SetColWidth(xlsxSheet, "B", "B", 24)
	_ = f.SetColWidth(xlsxSheet, "C", "C", 70)
	_ = f.SetColWidth(xlsxSheet, "D", "E", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
