package export

import (
	"bytes"
	"testing"
	"time"

	"fuelflow/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWorkbook() *service.Workbook {
	return &service.Workbook{
		Title:       "Inventory",
		GeneratedAt: time.Date(2024, time.March, 1, 15, 4, 0, 0, time.UTC),
		Sheets: []service.Sheet{
			{
				Name:   "Inventory",
				Header: []string{"Customer", "Sent", "Pending"},
				Rows: [][]any{
					{"Ramesh", 10, 4},
					{"Suresh", 2, ""},
				},
			},
			{
				Name:   "All Total",
				Header: []string{"Customer", "Due"},
				Rows:   [][]any{{"Ramesh", 150.5}},
			},
		},
	}
}

func TestRender_XLSXRoundTripsThroughReader(t *testing.T) {
	data, err := NewRenderer().Render(service.FormatXLSX, sampleWorkbook())
	require.NoError(t, err)

	reader := NewSpreadsheetReader()
	names, err := reader.SheetNames(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Inventory", "All Total"}, names)

	rows, err := reader.Rows(bytes.NewReader(data), "Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Customer", "Sent", "Pending"}, rows[0])
	assert.Equal(t, []string{"Ramesh", "10", "4"}, rows[1])
	assert.Equal(t, "Suresh", rows[2][0])
}

func TestRender_CSV(t *testing.T) {
	data, err := NewRenderer().Render(service.FormatCSV, sampleWorkbook())
	require.NoError(t, err)

	assert.Equal(t, "Customer,Sent,Pending\nRamesh,10,4\nSuresh,2,\n", string(data))
}

func TestRender_PDF(t *testing.T) {
	data, err := NewRenderer().Render(service.FormatPDF, sampleWorkbook())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRender_Errors(t *testing.T) {
	_, err := NewRenderer().Render(service.FormatXLSX, &service.Workbook{})
	assert.Error(t, err)

	_, err = NewRenderer().Render("doc", sampleWorkbook())
	assert.ErrorIs(t, err, service.ErrUnsupportedFormat)
}
