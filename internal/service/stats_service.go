package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"pokerpal/internal/calculator"
	"pokerpal/internal/storage"
	"pokerpal/pkg/api"
)

// defaultBiggestLimit is how many top sessions the leaderboard shows when
// the client does not ask for a specific count.
const defaultBiggestLimit = 5

// StatsService implements api.StatsServiceHandler: aggregated statistics
// over all recorded sessions.
type StatsService struct {
	store storage.Store
}

// NewStatsService creates a new StatsService.
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store}
}

// GetLeaderboard aggregates per-player statistics across all sessions and
// returns them ranked by total winnings, together with the biggest sessions
// by pot size. Every roster player appears, even with zero sessions.
func (s *StatsService) GetLeaderboard(ctx context.Context, req *connect.Request[api.GetLeaderboardRequest]) (*connect.Response[api.GetLeaderboardResponse], error) {
	group, err := s.store.GetGroup(ctx)
	if err != nil {
		slog.Error("GetLeaderboard failed to load group", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		slog.Error("GetLeaderboard failed to list sessions", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	stats := calculator.AggregateStats(sessions, group.Players)

	limit := req.Msg.BiggestLimit
	if limit <= 0 {
		limit = defaultBiggestLimit
	}
	biggest := calculator.BiggestSessions(sessions, limit)

	rankings := make([]*api.PlayerStats, len(stats))
	for i, st := range stats {
		rankings[i] = &api.PlayerStats{
			Name:          st.Name,
			TotalWinnings: st.TotalWinnings,
			SessionsWon:   st.SessionsWon,
			SessionsLost:  st.SessionsLost,
			WinRate:       st.WinRate,
			BiggestWin:    st.BiggestWin,
			BiggestLoss:   st.BiggestLoss,
			TotalSessions: st.TotalSessions,
			TotalBuyIns:   st.TotalBuyIns,
			AverageBuyIns: st.AverageBuyIns,
		}
	}

	summaries := make([]*api.SessionSummary, len(biggest))
	for i, sess := range biggest {
		summaries[i] = &api.SessionSummary{
			SessionID: sess.ID,
			Date:      sess.Date,
			Location:  sess.Location,
			TotalPot:  sess.TotalPot,
		}
	}

	slog.Info("GetLeaderboard successful",
		"players_count", len(rankings),
		"sessions_count", len(sessions),
	)

	return connect.NewResponse(&api.GetLeaderboardResponse{
		Rankings:        rankings,
		BiggestSessions: summaries,
	}), nil
}
