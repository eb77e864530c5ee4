// Package export renders workbooks as xlsx, csv or pdf files and reads
// uploaded spreadsheets.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"fuelflow/internal/domain/service"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet  = "Sheet1"
	xlsxColWidth  = 18
	pdfPageWidth  = 277 // A4 landscape minus 10mm margins
	pdfRowHeight  = 6
	pdfHeadHeight = 7
)

type renderer struct{}

// NewRenderer creates the document renderer.
func NewRenderer() service.DocumentRenderer {
	return &renderer{}
}

func (r *renderer) Render(format service.ExportFormat, wb *service.Workbook) ([]byte, error) {
	if len(wb.Sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	switch format {
	case service.FormatXLSX:
		return renderXLSX(wb)
	case service.FormatCSV:
		return renderCSV(&wb.Sheets[0])
	case service.FormatPDF:
		return renderPDF(wb)
	default:
		return nil, errors.Wrapf(service.ErrUnsupportedFormat, "%q", format)
	}
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func renderXLSX(wb *service.Workbook) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "create header style")
	}

	usesDefault := false
	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		if sheet.Name == defaultSheet {
			usesDefault = true
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, errors.Wrapf(err, "create sheet %q", sheet.Name)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return nil, err
		}
	}
	if !usesDefault {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, errors.Wrap(err, "delete default sheet")
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write xlsx")
	}

	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet *service.Sheet, headerStyle int) error {
	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return errors.Wrapf(err, "write header of %q", sheet.Name)
	}
	if err := f.SetRowStyle(sheet.Name, 1, 1, headerStyle); err != nil {
		return errors.Wrapf(err, "style header of %q", sheet.Name)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.WithStack(err)
		}
		values := row
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return errors.Wrapf(err, "write row %d of %q", i+2, sheet.Name)
		}
	}

	if len(sheet.Header) > 0 {
		last, err := excelize.ColumnNumberToName(len(sheet.Header))
		if err != nil {
			return errors.WithStack(err)
		}

		return errors.WithStack(f.SetColWidth(sheet.Name, "A", last, xlsxColWidth))
	}

	return nil
}

func renderCSV(sheet *service.Sheet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(sheet.Header); err != nil {
		return nil, errors.WithStack(err)
	}
	for _, row := range sheet.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = cellText(v)
		}
		if err := w.Write(record); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	w.Flush()

	return buf.Bytes(), errors.WithStack(w.Error())
}

func renderPDF(wb *service.Workbook) ([]byte, error) {
	sheet := &wb.Sheets[0]

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(pdfPageWidth, 10, wb.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(pdfPageWidth, 6, "Generated: "+wb.GeneratedAt.Format("02-Jan-2006 03:04 PM"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	cols := len(sheet.Header)
	if cols == 0 {
		cols = 1
	}
	width := float64(pdfPageWidth) / float64(cols)

	pdf.SetFont("Arial", "B", 7)
	pdf.SetFillColor(220, 220, 220)
	for _, h := range sheet.Header {
		pdf.CellFormat(width, pdfHeadHeight, fit(pdf, h, width), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, row := range sheet.Rows {
		for i := range sheet.Header {
			var v any
			if i < len(row) {
				v = row[i]
			}
			align := "L"
			if _, ok := v.(string); !ok {
				align = "R"
			}
			pdf.CellFormat(width, pdfRowHeight, fit(pdf, cellText(v), width), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "write pdf")
	}

	return buf.Bytes(), nil
}

// fit shortens text until it fits the cell width.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	const padding = 2
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)) > width-padding {
		runes = runes[:len(runes)-1]
	}

	return string(runes)
}
