package services

import (
	"context"
	"fmt"

	"moneymagic/internal/core"
	"moneymagic/internal/log"
	"moneymagic/internal/storage"
)

// Stats is the admin dashboard headline.
type Stats struct {
	TotalUsers        int64
	TotalTransactions int64
	RecentUsers       []core.User
}

// AdminService serves the cross-owner views. Every method demands an admin
// scope; there is no partial view for regular users.
type AdminService struct {
	storage *storage.SQLiteRepository
	logger  *log.Logger
}

func NewAdminService(storage *storage.SQLiteRepository, logger *log.Logger) *AdminService {
	return &AdminService{
		storage: storage,
		logger:  logger.WithComponent(log.ComponentApp),
	}
}

func (s *AdminService) Stats(ctx context.Context, scope core.Scope) (*Stats, error) {
	if !scope.Admin {
		return nil, fmt.Errorf("%w: admin access required", core.ErrAuth)
	}
	users, err := s.storage.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.storage.CountTransactions(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.storage.RecentUsers(ctx, 10)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalUsers: users, TotalTransactions: txs, RecentUsers: recent}, nil
}

// Report lists every transaction across all owners joined with the account
// type, ordered by date descending.
func (s *AdminService) Report(ctx context.Context, scope core.Scope) ([]core.ReportRow, error) {
	if !scope.Admin {
		return nil, fmt.Errorf("%w: admin access required", core.ErrAuth)
	}
	return s.storage.ListTransactionsWithAccountType(ctx)
}
