package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// StatsServicePath is the mount prefix for the stats service.
	StatsServicePath = "/pokerpal.v1.StatsService/"

	StatsServiceGetLeaderboardProcedure = StatsServicePath + "GetLeaderboard"
)

// PlayerStats mirrors models.PlayerStats for the wire.
type PlayerStats struct {
	Name          string  `json:"name"`
	TotalWinnings float64 `json:"totalWinnings"`
	SessionsWon   int     `json:"sessionsWon"`
	SessionsLost  int     `json:"sessionsLost"`
	WinRate       int     `json:"winRate"`
	BiggestWin    float64 `json:"biggestWin"`
	BiggestLoss   float64 `json:"biggestLoss"`
	TotalSessions int     `json:"totalSessions"`
	TotalBuyIns   int     `json:"totalBuyIns"`
	AverageBuyIns float64 `json:"averageBuyIns"`
}

// SessionSummary is one row of the biggest-sessions list.
type SessionSummary struct {
	SessionID string  `json:"sessionId"`
	Date      string  `json:"date"`
	Location  string  `json:"location"`
	TotalPot  float64 `json:"totalPot"`
}

// GetLeaderboardRequest asks for the ranked statistics. BiggestLimit bounds
// the biggest-sessions list (3 for the compact widget, 5 for the full tab);
// zero means the default of 5.
type GetLeaderboardRequest struct {
	BiggestLimit int `json:"biggestLimit,omitempty"`
}

type GetLeaderboardResponse struct {
	Rankings        []*PlayerStats    `json:"rankings"`
	BiggestSessions []*SessionSummary `json:"biggestSessions"`
}

// StatsServiceHandler is the server-side contract for the stats service.
type StatsServiceHandler interface {
	GetLeaderboard(context.Context, *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error)
}

// NewStatsServiceHandler builds an http.Handler for the stats service and
// returns the path to mount it on.
func NewStatsServiceHandler(svc StatsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(StatsServiceGetLeaderboardProcedure, connect.NewUnaryHandler(StatsServiceGetLeaderboardProcedure, svc.GetLeaderboard, opts...))
	return StatsServicePath, mux
}

// StatsServiceClient calls the stats service.
type StatsServiceClient struct {
	getLeaderboard *connect.Client[GetLeaderboardRequest, GetLeaderboardResponse]
}

// NewStatsServiceClient builds a client against the given base URL.
func NewStatsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *StatsServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &StatsServiceClient{
		getLeaderboard: connect.NewClient[GetLeaderboardRequest, GetLeaderboardResponse](httpClient, baseURL+StatsServiceGetLeaderboardProcedure, opts...),
	}
}

func (c *StatsServiceClient) GetLeaderboard(ctx context.Context, req *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error) {
	return c.getLeaderboard.CallUnary(ctx, req)
}
