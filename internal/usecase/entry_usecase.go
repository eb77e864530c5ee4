package usecase

import (
	"context"

	"fuelflow/internal/domain/entity"
)

// SaveMode says how an entry reached the save workflow.
type SaveMode string

const (
	SaveModeNew       SaveMode = "new"
	SaveModeEdit      SaveMode = "edit"
	SaveModeDuplicate SaveMode = "duplicate"
	SaveModeImport    SaveMode = "import"
)

// Prompts that can block a save until the caller answers them.
const (
	PromptOldEntryWhenDateEdited = "oldEntryWhenDateEdited"
	PromptNewAddress             = "askForConfirmationOnNewAddress"
)

// SaveEntryRequest carries an entry through the save workflow.
type SaveEntryRequest struct {
	Entry *entity.EntryTransaction `json:"entry" validate:"required"`
	Mode  SaveMode                 `json:"mode" validate:"required,oneof=new edit duplicate import"`

	// OriginalID is the entry being edited or duplicated.
	OriginalID string `json:"originalId"`

	// Answers to prompts; nil means the user has not been asked yet.
	DeleteOldOnDateEdit *bool `json:"deleteOldOnDateEdit"`
	AddNewAddress       *bool `json:"addNewAddress"`

	// NewTags are created before the entry and appended to its tags.
	NewTags []entity.TagData `json:"newTags"`

	AdminID string `json:"-"`
}

// SaveEntryResult reports what the save workflow did.
type SaveEntryResult struct {
	Entry           *entity.EntryTransaction `json:"entry"`
	CustomerCreated bool                     `json:"customerCreated"`
	AddressAdded    bool                     `json:"addressAdded"`
	OldEntryDeleted bool                     `json:"oldEntryDeleted"`
}

// EntryUsecase saves and removes transactions.
type EntryUsecase interface {
	Save(ctx context.Context, req *SaveEntryRequest) (*SaveEntryResult, error)
	Get(ctx context.Context, id string) (*entity.EntryTransaction, error)
	Delete(ctx context.Context, id string) error
}

// MoveEntriesRequest moves transactions from one customer to another.
type MoveEntriesRequest struct {
	FromUserID     string   `json:"fromUserId" validate:"required"`
	ToUserID       string   `json:"toUserId" validate:"required"`
	TransactionIDs []string `json:"transactionIdList" validate:"required,min=1"`
	ExtraNote      string   `json:"extraNote"`
	MovedBy        string   `json:"-"`
}

// MoveEntriesResult summarizes a move run.
type MoveEntriesResult struct {
	MoveID        string          `json:"moveId"`
	SuccessCount  int             `json:"successCount"`
	FailureCount  int             `json:"failureCount"`
	Severity      entity.Severity `json:"severity"`
	HistoryFailed bool            `json:"historyFailed"`
}

// MoveUsecase reassigns transactions between customers and keeps the audit log.
type MoveUsecase interface {
	MoveEntries(ctx context.Context, req *MoveEntriesRequest) (*MoveEntriesResult, error)

	// History lists move records newest first.
	History(ctx context.Context) ([]*entity.MoveEntryPayload, error)

	// HistoryEntries returns the transactions a move record names, skipping
	// ids that no longer exist.
	HistoryEntries(ctx context.Context, moveID string) ([]*entity.EntryTransaction, error)
}

// DepositUsecase manages customer deposits.
type DepositUsecase interface {
	List(ctx context.Context) ([]*entity.DepositEntry, error)
	ListForCustomer(ctx context.Context, customerID string) ([]*entity.DepositEntry, error)
	Save(ctx context.Context, deposit *entity.DepositEntry, adminID string) (*entity.DepositEntry, error)
	Delete(ctx context.Context, customerID, id string) error
}
