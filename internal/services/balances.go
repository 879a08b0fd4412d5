package services

import (
	"context"
	"fmt"

	"moneymagic/internal/core"
	"moneymagic/internal/log"
	"moneymagic/internal/storage"

	"github.com/shopspring/decimal"
)

// BalanceService stores and looks up per-(month, account, owner) opening
// balances.
type BalanceService struct {
	storage *storage.SQLiteRepository
	logger  *log.Logger
}

func NewBalanceService(storage *storage.SQLiteRepository, logger *log.Logger) *BalanceService {
	return &BalanceService{
		storage: storage,
		logger:  logger.WithComponent(log.ComponentBalance),
	}
}

// GetOpening returns the opening balance, zero when none is recorded.
func (s *BalanceService) GetOpening(ctx context.Context, month string, accountID int64, scope core.Scope) (decimal.Decimal, error) {
	if _, ok := core.MonthOrdinal(month); !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown month %q", core.ErrValidation, month)
	}
	return s.storage.GetOpening(ctx, month, accountID, scope)
}

// SetOpening upserts the opening balance for (month, account, owner). The
// account must be visible to the owner.
func (s *BalanceService) SetOpening(ctx context.Context, month string, accountID int64, opening decimal.Decimal, ownerID int64) error {
	if _, ok := core.MonthOrdinal(month); !ok {
		return fmt.Errorf("%w: unknown month %q", core.ErrValidation, month)
	}
	if opening.IsNegative() {
		return fmt.Errorf("%w: opening balance must not be negative", core.ErrValidation)
	}
	if _, err := s.storage.GetAccount(ctx, accountID, core.Scope{UserID: ownerID}); err != nil {
		return err
	}

	if err := s.storage.SetOpening(ctx, month, accountID, opening, ownerID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Opening balance saved",
		log.FieldOperation, log.OpUpdate,
		log.FieldMonth, month,
		log.FieldAccountID, accountID,
		log.FieldOpening, opening.String(),
		log.FieldUserID, ownerID)
	return nil
}
