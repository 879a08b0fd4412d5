package services

import (
	"context"
	"time"

	"moneymagic/internal/core"
	"moneymagic/internal/log"
	"moneymagic/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService handles transaction CRUD and the filtered ledger listing.
type LedgerService struct {
	storage *storage.SQLiteRepository
	logger  *log.Logger
}

func NewLedgerService(storage *storage.SQLiteRepository, logger *log.Logger) *LedgerService {
	return &LedgerService{
		storage: storage,
		logger:  logger.WithComponent(log.ComponentLedger),
	}
}

// Add records a transaction and returns its freshly assigned external id.
func (s *LedgerService) Add(ctx context.Context, date time.Time, accountID *int64, category, description string, txType core.TransactionType, amount decimal.Decimal, ownerID int64) (string, error) {
	tx := core.Transaction{
		ExternalID:  uuid.NewString(),
		Date:        date,
		AccountID:   accountID,
		Category:    category,
		Description: description,
		Type:        txType,
		Amount:      amount,
		UserID:      ownerID,
	}
	if err := tx.Validate(); err != nil {
		return "", err
	}

	if err := s.storage.CreateTransaction(ctx, tx); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldOperation, log.OpCreate,
		log.FieldTxID, tx.ExternalID,
		log.FieldTxType, string(txType),
		log.FieldAmount, amount.String(),
		log.FieldUserID, ownerID)
	return tx.ExternalID, nil
}

// Update applies the set fields of the patch to the row keyed by external id.
// Non-admin scopes can only reach their own rows.
func (s *LedgerService) Update(ctx context.Context, externalID string, patch core.TransactionPatch, scope core.Scope) error {
	if patch.Empty() {
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpdateTransactionByExternalID(ctx, externalID, patch, scope); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Transaction updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldTxID, externalID)
	return nil
}

func (s *LedgerService) Delete(ctx context.Context, externalID string, scope core.Scope) error {
	if err := s.storage.DeleteTransactionByExternalID(ctx, externalID, scope); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTxID, externalID)
	return nil
}

// Fetch returns the filtered ledger listing for the scope.
func (s *LedgerService) Fetch(ctx context.Context, filter core.TransactionFilter, scope core.Scope) ([]core.TransactionRow, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.storage.FetchTransactions(ctx, filter, scope)
}
