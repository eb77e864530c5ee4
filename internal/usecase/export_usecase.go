package usecase

import (
	"context"

	"fuelflow/internal/domain/entity"
	"fuelflow/internal/domain/service"
)

// ExportRequest selects the rows and layout of an inventory export.
type ExportRequest struct {
	Filter           InventoryFilter      `json:"filter"`
	Format           service.ExportFormat `query:"format" json:"format"`
	CustomerPerSheet bool                 `query:"customerPerSheet" json:"customerPerSheet"`
	AddressPerSheet  bool                 `query:"addressPerSheet" json:"addressPerSheet"`
	AllTotal         bool                 `query:"allTotal" json:"allTotal"`
	HideCustomer     bool                 `query:"hideCustomer" json:"hideCustomer"`
	FilePrefix       string               `query:"prefix" json:"prefix"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportUsecase renders inventory and pending returns as files.
type ExportUsecase interface {
	Inventory(ctx context.Context, req *ExportRequest) (*ExportFile, error)
	PendingReturns(ctx context.Context, adminID string) (*ExportFile, error)
}

// ImportUsecase turns an uploaded sheet into draft entries.
type ImportUsecase interface {
	SheetNames(ctx context.Context, data []byte) ([]string, error)

	// Preview returns one draft per customer row, each carrying its importIndex.
	Preview(ctx context.Context, data []byte, sheet string) ([]*entity.EntryTransaction, error)
}
