package services

import (
	"context"
	"fmt"
	"strings"

	"moneymagic/internal/core"
	"moneymagic/internal/log"
	"moneymagic/internal/storage"
)

// AccountService is the account registry: CRUD over accounts scoped by owner.
type AccountService struct {
	storage *storage.SQLiteRepository
	logger  *log.Logger
}

func NewAccountService(storage *storage.SQLiteRepository, logger *log.Logger) *AccountService {
	return &AccountService{
		storage: storage,
		logger:  logger.WithComponent(log.ComponentAccount),
	}
}

func (s *AccountService) List(ctx context.Context, scope core.Scope) ([]core.Account, error) {
	return s.storage.ListAccounts(ctx, scope)
}

func (s *AccountService) Get(ctx context.Context, id int64, scope core.Scope) (*core.Account, error) {
	return s.storage.GetAccount(ctx, id, scope)
}

func (s *AccountService) Add(ctx context.Context, name string, atype core.AccountType, notes string, ownerID int64) (*core.Account, error) {
	account := core.Account{
		Name:   strings.TrimSpace(name),
		Type:   atype,
		Notes:  strings.TrimSpace(notes),
		UserID: ownerID,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	created, err := s.storage.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Account created",
		log.FieldOperation, log.OpCreate,
		log.FieldAccountID, created.ID,
		log.FieldAccountName, created.Name,
		log.FieldUserID, ownerID)
	return created, nil
}

// Update applies the set fields of the patch; an empty patch is a no-op.
func (s *AccountService) Update(ctx context.Context, id int64, patch core.AccountPatch, scope core.Scope) error {
	if patch.Empty() {
		return nil
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpdateAccount(ctx, id, patch, scope); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Account updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldAccountID, id,
		log.FieldUserID, scope.UserID)
	return nil
}

// Delete removes an account. The referential check is global: an account with
// transactions under any owner stays, so history never dangles.
func (s *AccountService) Delete(ctx context.Context, id int64, scope core.Scope) error {
	refs, err := s.storage.CountTransactionsByAccount(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: cannot delete account with existing transactions", core.ErrConflict)
	}

	if err := s.storage.DeleteAccount(ctx, id, scope); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Account deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldAccountID, id,
		log.FieldUserID, scope.UserID)
	return nil
}
