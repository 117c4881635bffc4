package dashboard

import (
	"context"
	"time"

	"github.com/Azell-Tech/azell-web/internal/domain/ledger"
	"github.com/Azell-Tech/azell-web/internal/domain/shared"
	"github.com/Azell-Tech/azell-web/internal/domain/transaction"
	"github.com/Azell-Tech/azell-web/internal/logger"
	"github.com/Azell-Tech/azell-web/internal/pkg"
	"github.com/Azell-Tech/azell-web/internal/pkg/money"
)

const recentTransactions = 20

type Service struct {
	Repository Repository
	Approval   *shared.ApprovalChecker
	Currency   string
	now        func() time.Time
}

func NewService(repo Repository, approval *shared.ApprovalChecker, currency string) *Service {
	return &Service{Repository: repo, Approval: approval, Currency: currency, now: pkg.Now}
}

type DashboardResponse struct {
	Summary      *Summary             `json:"summary"`
	Portfolio    ledger.Summary       `json:"portfolio"`
	Products     []*ProductCard       `json:"products"`
	Transactions []ledger.Transaction `json:"transactions"`
}

// Summary son los textos ya formateados del encabezado.
type Summary struct {
	Name     string    `json:"name"`
	NetWorth string    `json:"netWorth"`
	YTD      string    `json:"ytd"`
	Currency string    `json:"currency"`
	AsOf     time.Time `json:"asOf"`
}

type ProductCard struct {
	ledger.Product
	Saldo       float64 `json:"saldo"`
	Pending     float64 `json:"pendingWithdrawals"`
	Applied     float64 `json:"appliedWithdrawals"`
	Available   float64 `json:"available"`
	ProgressPct float64 `json:"progressPct"`
}

func (s *Service) GetDashboard(ctx context.Context, session shared.Session) (*DashboardResponse, error) {
	if err := s.Approval.EnsureApproved(ctx, session); err != nil {
		return nil, err
	}

	snapshot, err := s.Repository.LoadSnapshot(ctx, session.TenantID, session.UserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return Build(session.Name, s.Currency, snapshot, now), nil
}

// Build arma el tablero a partir de una instantánea; no hace I/O.
func Build(name, currency string, snapshot *Snapshot, now time.Time) *DashboardResponse {
	products := make([]ledger.Product, 0, len(snapshot.Holdings))
	for _, h := range snapshot.Holdings {
		products = append(products, h.ToLedger())
	}
	txns := transaction.ToLedger(snapshot.Transactions)

	for _, t := range txns {
		if ledger.Classify(t) == ledger.KindUnknown {
			logger.Debug().
				Str("transaction_id", t.ID).
				Str("type", t.Type).
				Msg("Movimiento sin clasificar")
		}
	}

	portfolio := ledger.Summarize(products, txns, now)
	perProduct := make(map[string]ledger.ProductSummary, len(portfolio.PerProduct))
	for _, ps := range portfolio.PerProduct {
		perProduct[ps.ID] = ps
	}

	cards := make([]*ProductCard, 0, len(products))
	for _, p := range products {
		card := &ProductCard{Product: p}
		if ps, ok := perProduct[p.ID]; ok {
			card.Saldo = ps.Saldo
			card.Pending = ps.PendingSum
			card.Applied = ps.AppliedSum
			card.Available = ps.Available
			card.ProgressPct = ps.ProgressPct
		}
		cards = append(cards, card)
	}

	recent := ledger.SortTransactions(txns)
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}

	if currency == "" {
		currency = "MXN"
	}
	ytd := portfolio.YTDRatio
	return &DashboardResponse{
		Summary: &Summary{
			Name:     name,
			NetWorth: "$" + money.FormatCurrency(portfolio.NetWorth),
			YTD:      money.FormatPercent(&ytd),
			Currency: currency,
			AsOf:     now,
		},
		Portfolio:    portfolio,
		Products:     cards,
		Transactions: recent,
	}
}
