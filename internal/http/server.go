package http

import (
	"net/http"
	"time"

	"moneymagic/internal/log"
	"moneymagic/internal/services"
)

// Server wires the service layer to the JSON API.
type Server struct {
	auth     *services.AuthService
	accounts *services.AccountService
	ledger   *services.LedgerService
	balances *services.BalanceService
	summary  *services.SummaryService
	admin    *services.AdminService

	logger       *log.Logger
	jwtSecret    string
	tokenTTL     time.Duration
	loginLimiter *rateLimiter
}

// Options carries the transport-level settings.
type Options struct {
	JWTSecret          string
	TokenTTL           time.Duration
	LoginRatePerMinute int
}

func NewServer(
	auth *services.AuthService,
	accounts *services.AccountService,
	ledger *services.LedgerService,
	balances *services.BalanceService,
	summary *services.SummaryService,
	admin *services.AdminService,
	logger *log.Logger,
	opts Options,
) *Server {
	return &Server{
		admin:        admin,
		auth:         auth,
		accounts:     accounts,
		ledger:       ledger,
		balances:     balances,
		summary:      summary,
		logger:       logger.WithComponent(log.ComponentHTTP),
		jwtSecret:    opts.JWTSecret,
		tokenTTL:     opts.TokenTTL,
		loginLimiter: newRateLimiter(opts.LoginRatePerMinute, time.Minute),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", s.rateLimit(s.handleRegister))
	mux.HandleFunc("POST /api/login", s.rateLimit(s.handleLogin))
	mux.HandleFunc("GET /api/me", s.requireAuth(s.handleMe))
	mux.HandleFunc("PUT /api/me", s.requireAuth(s.handleUpdateProfile))

	mux.HandleFunc("GET /api/accounts", s.requireAuth(s.handleListAccounts))
	mux.HandleFunc("POST /api/accounts", s.requireAuth(s.handleAddAccount))
	mux.HandleFunc("PATCH /api/accounts/{id}", s.requireAuth(s.handleUpdateAccount))
	mux.HandleFunc("DELETE /api/accounts/{id}", s.requireAuth(s.handleDeleteAccount))

	mux.HandleFunc("GET /api/transactions", s.requireAuth(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.requireAuth(s.handleAddTransaction))
	mux.HandleFunc("PATCH /api/transactions/{id}", s.requireAuth(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.requireAuth(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/balances", s.requireAuth(s.handleGetOpening))
	mux.HandleFunc("PUT /api/balances", s.requireAuth(s.handleSetOpening))

	mux.HandleFunc("GET /api/summary", s.requireAuth(s.handleSummary))
	mux.HandleFunc("GET /api/export/transactions.csv", s.requireAuth(s.handleExportTransactions))
	mux.HandleFunc("GET /api/export/summary.csv", s.requireAuth(s.handleExportSummary))

	mux.HandleFunc("GET /api/admin/stats", s.requireAdmin(s.handleAdminStats))
	mux.HandleFunc("GET /api/admin/transactions", s.requireAdmin(s.handleAdminTransactions))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return s.logRequests(mux)
}
