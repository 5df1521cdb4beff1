package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"pokerpal/internal/calculator"
	"pokerpal/internal/models"
	"pokerpal/internal/storage"
	"pokerpal/pkg/api"
)

// DebtService implements api.DebtServiceHandler: the outstanding-payments
// ledger, fed by session settlements and by manually recorded debts.
type DebtService struct {
	store storage.Store
}

// NewDebtService creates a new DebtService.
func NewDebtService(store storage.Store) *DebtService {
	return &DebtService{store: store}
}

// ListDebts returns all debts split into outstanding and paid.
func (s *DebtService) ListDebts(ctx context.Context, req *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error) {
	debts, err := s.store.ListDebts(ctx)
	if err != nil {
		slog.Error("ListDebts failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.ListDebtsResponse{
		Active:  []*api.Debt{},
		Settled: []*api.Debt{},
	}
	for _, d := range debts {
		if d.Settled {
			resp.Settled = append(resp.Settled, debtToAPI(d))
		} else {
			resp.Active = append(resp.Active, debtToAPI(d))
		}
	}

	return connect.NewResponse(resp), nil
}

// CreateDebt records a manual debt between two players.
func (s *DebtService) CreateDebt(ctx context.Context, req *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error) {
	slog.Info("CreateDebt request received",
		"from", req.Msg.FromPlayer,
		"to", req.Msg.ToPlayer,
		"amount", req.Msg.Amount,
	)

	debt := &models.Debt{
		FromPlayer:  req.Msg.FromPlayer,
		ToPlayer:    req.Msg.ToPlayer,
		Amount:      req.Msg.Amount,
		Description: req.Msg.Description,
		CreatedAt:   time.Now().Unix(),
	}

	if err := calculator.ValidateDebt(debt); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateDebt(ctx, debt); err != nil {
		slog.Error("CreateDebt failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Debt created", "debt_id", debt.ID)

	return connect.NewResponse(&api.CreateDebtResponse{Debt: debtToAPI(debt)}), nil
}

// SettleDebt marks a debt as paid. Settling is one-way; an already settled
// debt cannot be settled again.
func (s *DebtService) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error) {
	slog.Info("SettleDebt request received", "debt_id", req.Msg.DebtID)

	if err := s.store.SettleDebt(ctx, req.Msg.DebtID, time.Now().Unix()); err != nil {
		slog.Error("SettleDebt failed", "debt_id", req.Msg.DebtID, "error", err)
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}

	debt, err := s.store.GetDebt(ctx, req.Msg.DebtID)
	if err != nil {
		slog.Error("Failed to fetch settled debt", "debt_id", req.Msg.DebtID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Debt settled", "debt_id", debt.ID)

	return connect.NewResponse(&api.SettleDebtResponse{Debt: debtToAPI(debt)}), nil
}

func debtToAPI(d *models.Debt) *api.Debt {
	return &api.Debt{
		ID:          d.ID,
		FromPlayer:  d.FromPlayer,
		ToPlayer:    d.ToPlayer,
		Amount:      d.Amount,
		Description: d.Description,
		Settled:     d.Settled,
		CreatedAt:   d.CreatedAt,
		SettledAt:   d.SettledAt,
		SessionID:   d.SessionID,
		SessionDate: d.SessionDate,
	}
}
