package service

import (
	"io"
	"time"

	"github.com/pkg/errors"
)

// ExportFormat is the file type of an export.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Sheet is one table of an export. Cells are strings or numbers.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Workbook is a titled set of sheets.
type Workbook struct {
	Title       string
	GeneratedAt time.Time
	Sheets      []Sheet
}

// DocumentRenderer turns a workbook into file bytes. Formats without sheets
// (csv, pdf) render the first sheet only.
type DocumentRenderer interface {
	Render(format ExportFormat, wb *Workbook) ([]byte, error)
}

// SpreadsheetReader reads uploaded spreadsheets.
type SpreadsheetReader interface {
	// SheetNames lists the sheets of the workbook.
	SheetNames(r io.Reader) ([]string, error)

	// Rows returns every row of the named sheet as strings, header included.
	Rows(r io.Reader, sheet string) ([][]string, error)
}
