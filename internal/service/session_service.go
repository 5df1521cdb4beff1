package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"pokerpal/internal/calculator"
	"pokerpal/internal/models"
	"pokerpal/internal/storage"
	"pokerpal/pkg/api"
)

// SessionService implements api.SessionServiceHandler: recording, editing
// and settling poker sessions.
type SessionService struct {
	store storage.Store
}

// NewSessionService creates a new SessionService.
func NewSessionService(store storage.Store) *SessionService {
	return &SessionService{store: store}
}

// PreviewBalance computes the running win/loss totals for an in-progress
// ledger. It never persists anything and accepts unbalanced input; the
// client uses it for live form feedback.
func (s *SessionService) PreviewBalance(ctx context.Context, req *connect.Request[api.PreviewBalanceRequest]) (*connect.Response[api.PreviewBalanceResponse], error) {
	entries := entriesFromAPI(req.Msg.Entries)
	bal := calculator.ComputeBalance(entries)

	return connect.NewResponse(&api.PreviewBalanceResponse{
		TotalWins:   bal.TotalWins,
		TotalLosses: bal.TotalLosses,
		Balance:     bal.Balance,
		IsBalanced:  bal.IsBalanced,
	}), nil
}

// CreateSession validates and persists a new session ledger.
func (s *SessionService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	slog.Info("CreateSession request received",
		"date", req.Msg.Date,
		"location", req.Msg.Location,
		"entries_count", len(req.Msg.Entries),
	)

	session := &models.Session{
		Date:        req.Msg.Date,
		Location:    req.Msg.Location,
		AddedBy:     req.Msg.AddedBy,
		BuyInAmount: req.Msg.BuyInAmount,
		Entries:     entriesFromAPI(req.Msg.Entries),
	}

	if err := s.prepareSession(ctx, session); err != nil {
		return nil, err
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Session created", "session_id", session.ID, "total_pot", session.TotalPot)

	return connect.NewResponse(&api.CreateSessionResponse{
		Session: sessionToAPI(session),
	}), nil
}

// ListSessions returns all sessions, newest first.
func (s *SessionService) ListSessions(ctx context.Context, req *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error) {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		slog.Error("ListSessions failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.Session, len(sessions))
	for i, sess := range sessions {
		out[i] = sessionToAPI(sess)
	}

	return connect.NewResponse(&api.ListSessionsResponse{Sessions: out}), nil
}

// UpdateSession replaces an existing session's ledger after revalidating it.
// The settled flag is preserved: editing a settled session does not unsettle
// it or touch its debts.
func (s *SessionService) UpdateSession(ctx context.Context, req *connect.Request[api.UpdateSessionRequest]) (*connect.Response[api.UpdateSessionResponse], error) {
	slog.Info("UpdateSession request received", "session_id", req.Msg.SessionID)

	existing, err := s.store.GetSession(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("UpdateSession failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	session := &models.Session{
		ID:          existing.ID,
		Date:        req.Msg.Date,
		Location:    req.Msg.Location,
		AddedBy:     req.Msg.AddedBy,
		BuyInAmount: req.Msg.BuyInAmount,
		Entries:     entriesFromAPI(req.Msg.Entries),
		Settled:     existing.Settled,
		CreatedAt:   existing.CreatedAt,
	}

	if err := s.prepareSession(ctx, session); err != nil {
		return nil, err
	}

	if err := s.store.UpdateSession(ctx, session); err != nil {
		slog.Error("UpdateSession failed", "session_id", session.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Session updated", "session_id", session.ID)

	return connect.NewResponse(&api.UpdateSessionResponse{
		Session: sessionToAPI(session),
	}), nil
}

// DeleteSession removes a session and, via the schema, any debts that were
// created from it.
func (s *SessionService) DeleteSession(ctx context.Context, req *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	slog.Info("DeleteSession request received", "session_id", req.Msg.SessionID)

	if err := s.store.DeleteSession(ctx, req.Msg.SessionID); err != nil {
		slog.Error("DeleteSession failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	slog.Info("Session deleted", "session_id", req.Msg.SessionID)

	return connect.NewResponse(&api.DeleteSessionResponse{}), nil
}

// SettleSession plans the minimal-ish set of payments for a session and
// records them as debts in one transaction. On any failure nothing is
// written and the session stays unsettled, so the call is safe to retry.
func (s *SessionService) SettleSession(ctx context.Context, req *connect.Request[api.SettleSessionRequest]) (*connect.Response[api.SettleSessionResponse], error) {
	slog.Info("SettleSession request received", "session_id", req.Msg.SessionID)

	session, err := s.store.GetSession(ctx, req.Msg.SessionID)
	if err != nil {
		slog.Error("SettleSession failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if session.Settled {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("session %s is already settled", session.ID))
	}

	plan := calculator.PlanSettlement(session.Entries)

	now := time.Now().Unix()
	debts := make([]*models.Debt, len(plan))
	for i, tx := range plan {
		debts[i] = &models.Debt{
			FromPlayer:  tx.FromPlayer,
			ToPlayer:    tx.ToPlayer,
			Amount:      tx.Amount,
			Description: fmt.Sprintf("Poker session %s", session.Date),
			CreatedAt:   now,
			SessionID:   session.ID,
			SessionDate: session.Date,
		}
	}

	if err := s.store.SettleSession(ctx, session.ID, debts); err != nil {
		slog.Error("SettleSession failed", "session_id", session.ID, "error", err)
		return nil, connect.NewError(connect.CodeAborted, err)
	}

	slog.Info("Session settled", "session_id", session.ID, "debts_count", len(debts))

	out := make([]*api.Transaction, len(plan))
	for i, tx := range plan {
		out[i] = &api.Transaction{
			FromPlayer: tx.FromPlayer,
			ToPlayer:   tx.ToPlayer,
			Amount:     tx.Amount,
		}
	}

	return connect.NewResponse(&api.SettleSessionResponse{Transactions: out}), nil
}

// prepareSession normalizes a session against the current roster and
// validates it. Entries are reordered to roster order, non-participant
// results are zeroed, and the total pot is computed. Returns a connect
// error ready to hand back to the caller.
func (s *SessionService) prepareSession(ctx context.Context, session *models.Session) error {
	group, err := s.store.GetGroup(ctx)
	if err != nil {
		slog.Error("Failed to load group for session validation", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}

	normalized, err := normalizeEntries(session.Entries, group.Players)
	if err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	session.Entries = normalized

	calculator.ClampNonParticipants(session.Entries)

	if err := calculator.ValidateSession(session, group.Players); err != nil {
		var verr *calculator.ValidationError
		if errors.As(err, &verr) {
			slog.Warn("Session rejected",
				"kind", verr.Kind,
				"field", verr.Field,
				"error", verr.Message,
			)
		}
		return connect.NewError(connect.CodeInvalidArgument, err)
	}

	session.TotalPot = calculator.SessionPot(session)
	return nil
}

// normalizeEntries maps the submitted entries onto the roster: every roster
// player gets a line (zeroed if absent from the request), submitted names
// outside the roster are rejected, and the result is in roster order.
func normalizeEntries(entries []models.PlayerEntry, roster []string) ([]models.PlayerEntry, error) {
	byName := make(map[string]models.PlayerEntry, len(entries))
	for _, e := range entries {
		if _, dup := byName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate entry for player %q", e.Name)
		}
		byName[e.Name] = e
	}

	out := make([]models.PlayerEntry, 0, len(roster))
	for _, name := range roster {
		e, ok := byName[name]
		if !ok {
			e = models.PlayerEntry{Name: name}
		}
		out = append(out, e)
		delete(byName, name)
	}
	for name := range byName {
		return nil, fmt.Errorf("player %q is not in the group", name)
	}
	return out, nil
}

func entriesFromAPI(entries []api.PlayerEntry) []models.PlayerEntry {
	out := make([]models.PlayerEntry, len(entries))
	for i, e := range entries {
		out[i] = models.PlayerEntry{
			Name:   e.Name,
			Result: e.Result,
			BuyIns: e.BuyIns,
		}
	}
	return out
}

func entriesToAPI(entries []models.PlayerEntry) []api.PlayerEntry {
	out := make([]api.PlayerEntry, len(entries))
	for i, e := range entries {
		out[i] = api.PlayerEntry{
			Name:   e.Name,
			Result: e.Result,
			BuyIns: e.BuyIns,
		}
	}
	return out
}

func sessionToAPI(s *models.Session) *api.Session {
	return &api.Session{
		ID:          s.ID,
		Date:        s.Date,
		Location:    s.Location,
		AddedBy:     s.AddedBy,
		BuyInAmount: s.BuyInAmount,
		Entries:     entriesToAPI(s.Entries),
		TotalPot:    s.TotalPot,
		Settled:     s.Settled,
		CreatedAt:   s.CreatedAt,
	}
}
