package export

import (
	"io"

	"fuelflow/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

type spreadsheetReader struct{}

// NewSpreadsheetReader creates the xlsx reader used by bulk import.
func NewSpreadsheetReader() service.SpreadsheetReader {
	return &spreadsheetReader{}
}

func (spreadsheetReader) SheetNames(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open spreadsheet")
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

func (spreadsheetReader) Rows(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open spreadsheet")
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}

	return rows, nil
}
