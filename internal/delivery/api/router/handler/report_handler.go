package handler

import (
	"io"
	"net/http"

	"fuelflow/internal/delivery/api/middleware"
	"fuelflow/internal/delivery/api/response"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReportHandlerParams holds dependencies for ReportHandler, injected by Fx.
type ReportHandlerParams struct {
	fx.In

	StatisticsUC usecase.StatisticsUsecase
	ExportUC     usecase.ExportUsecase
	ImportUC     usecase.ImportUsecase
}

// ReportHandler serves statistics, file exports and bulk import previews
type ReportHandler struct {
	statisticsUC usecase.StatisticsUsecase
	exportUC     usecase.ExportUsecase
	importUC     usecase.ImportUsecase
}

// NewReportHandler is the constructor for ReportHandler
func NewReportHandler(params ReportHandlerParams) *ReportHandler {
	return &ReportHandler{
		statisticsUC: params.StatisticsUC,
		exportUC:     params.ExportUC,
		importUC:     params.ImportUC,
	}
}

// ImportPreviewResponse lists the sheets of the upload and the drafts of one of them
type ImportPreviewResponse struct {
	Sheets []string                   `json:"sheets"`
	Sheet  string                     `json:"sheet"`
	Drafts []*entity.EntryTransaction `json:"drafts"`
}

// Dashboard returns every statistics card
func (h *ReportHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.statisticsUC.Dashboard(c.Request().Context(), middleware.AdminID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, dashboard)
}

// Sales returns units sent per year, month or day
func (h *ReportHandler) Sales(c echo.Context) error {
	var query usecase.SalesQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sales query")
	}
	if err := c.Validate(&query); err != nil {
		return response.HandleAppError(c, err)
	}

	buckets, err := h.statisticsUC.Sales(c.Request().Context(), &query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, buckets)
}

// ExportInventory renders the filtered inventory view as a file
func (h *ReportHandler) ExportInventory(c echo.Context) error {
	var req usecase.ExportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid export query")
	}

	file, err := h.exportUC.Inventory(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Attachment(c, file.Name, file.ContentType, file.Data)
}

// ExportPendingReturns renders the pending returns card as a workbook
func (h *ReportHandler) ExportPendingReturns(c echo.Context) error {
	file, err := h.exportUC.PendingReturns(c.Request().Context(), middleware.AdminID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Attachment(c, file.Name, file.ContentType, file.Data)
}

// ImportPreview turns an uploaded workbook into draft entries. The first
// sheet is used when the form does not name one.
func (h *ReportHandler) ImportPreview(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "A spreadsheet file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Failed to open the uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Failed to read the uploaded file")
	}

	ctx := c.Request().Context()
	sheets, err := h.importUC.SheetNames(ctx, data)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if len(sheets) == 0 {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("workbook has no sheets"))
	}

	sheet := c.FormValue("sheet")
	if sheet == "" {
		sheet = sheets[0]
	}

	drafts, err := h.importUC.Preview(ctx, data, sheet)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &ImportPreviewResponse{
		Sheets: sheets,
		Sheet:  sheet,
		Drafts: drafts,
	})
}
