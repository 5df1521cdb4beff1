package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// SessionServicePath is the mount prefix for the session service.
	SessionServicePath = "/pokerpal.v1.SessionService/"

	SessionServicePreviewBalanceProcedure = SessionServicePath + "PreviewBalance"
	SessionServiceCreateSessionProcedure  = SessionServicePath + "CreateSession"
	SessionServiceListSessionsProcedure   = SessionServicePath + "ListSessions"
	SessionServiceUpdateSessionProcedure  = SessionServicePath + "UpdateSession"
	SessionServiceDeleteSessionProcedure  = SessionServicePath + "DeleteSession"
	SessionServiceSettleSessionProcedure  = SessionServicePath + "SettleSession"
)

// PlayerEntry is one player's line of a session ledger.
type PlayerEntry struct {
	Name   string  `json:"name"`
	Result float64 `json:"result"`
	BuyIns int     `json:"buyIns"`
}

// Session mirrors models.Session for the wire.
type Session struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Location    string        `json:"location"`
	AddedBy     string        `json:"addedBy"`
	BuyInAmount float64       `json:"buyInAmount"`
	Entries     []PlayerEntry `json:"entries"`
	TotalPot    float64       `json:"totalPot"`
	Settled     bool          `json:"settled"`
	CreatedAt   int64         `json:"createdAt"`
}

// PreviewBalanceRequest carries the (possibly incomplete) form state for
// live balance feedback.
type PreviewBalanceRequest struct {
	Entries []PlayerEntry `json:"entries"`
}

type PreviewBalanceResponse struct {
	TotalWins   float64 `json:"totalWins"`
	TotalLosses float64 `json:"totalLosses"`
	Balance     float64 `json:"balance"`
	IsBalanced  bool    `json:"isBalanced"`
}

type CreateSessionRequest struct {
	Date        string        `json:"date"`
	Location    string        `json:"location"`
	AddedBy     string        `json:"addedBy"`
	BuyInAmount float64       `json:"buyInAmount"`
	Entries     []PlayerEntry `json:"entries"`
}

type CreateSessionResponse struct {
	Session *Session `json:"session"`
}

type ListSessionsRequest struct{}

type ListSessionsResponse struct {
	Sessions []*Session `json:"sessions"`
}

type UpdateSessionRequest struct {
	SessionID   string        `json:"sessionId"`
	Date        string        `json:"date"`
	Location    string        `json:"location"`
	AddedBy     string        `json:"addedBy"`
	BuyInAmount float64       `json:"buyInAmount"`
	Entries     []PlayerEntry `json:"entries"`
}

type UpdateSessionResponse struct {
	Session *Session `json:"session"`
}

type DeleteSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type DeleteSessionResponse struct{}

type SettleSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// Transaction is one planned payment of a settlement.
type Transaction struct {
	FromPlayer string  `json:"fromPlayer"`
	ToPlayer   string  `json:"toPlayer"`
	Amount     float64 `json:"amount"`
}

// SettleSessionResponse returns the full settlement plan that was recorded
// as debts. The plan is applied atomically: on error nothing was written.
type SettleSessionResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

// SessionServiceHandler is the server-side contract for the session service.
type SessionServiceHandler interface {
	PreviewBalance(context.Context, *connect.Request[PreviewBalanceRequest]) (*connect.Response[PreviewBalanceResponse], error)
	CreateSession(context.Context, *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error)
	ListSessions(context.Context, *connect.Request[ListSessionsRequest]) (*connect.Response[ListSessionsResponse], error)
	UpdateSession(context.Context, *connect.Request[UpdateSessionRequest]) (*connect.Response[UpdateSessionResponse], error)
	DeleteSession(context.Context, *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error)
	SettleSession(context.Context, *connect.Request[SettleSessionRequest]) (*connect.Response[SettleSessionResponse], error)
}

// NewSessionServiceHandler builds an http.Handler for the session service
// and returns the path to mount it on.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(SessionServicePreviewBalanceProcedure, connect.NewUnaryHandler(SessionServicePreviewBalanceProcedure, svc.PreviewBalance, opts...))
	mux.Handle(SessionServiceCreateSessionProcedure, connect.NewUnaryHandler(SessionServiceCreateSessionProcedure, svc.CreateSession, opts...))
	mux.Handle(SessionServiceListSessionsProcedure, connect.NewUnaryHandler(SessionServiceListSessionsProcedure, svc.ListSessions, opts...))
	mux.Handle(SessionServiceUpdateSessionProcedure, connect.NewUnaryHandler(SessionServiceUpdateSessionProcedure, svc.UpdateSession, opts...))
	mux.Handle(SessionServiceDeleteSessionProcedure, connect.NewUnaryHandler(SessionServiceDeleteSessionProcedure, svc.DeleteSession, opts...))
	mux.Handle(SessionServiceSettleSessionProcedure, connect.NewUnaryHandler(SessionServiceSettleSessionProcedure, svc.SettleSession, opts...))
	return SessionServicePath, mux
}

// SessionServiceClient calls the session service.
type SessionServiceClient struct {
	previewBalance *connect.Client[PreviewBalanceRequest, PreviewBalanceResponse]
	createSession  *connect.Client[CreateSessionRequest, CreateSessionResponse]
	listSessions   *connect.Client[ListSessionsRequest, ListSessionsResponse]
	updateSession  *connect.Client[UpdateSessionRequest, UpdateSessionResponse]
	deleteSession  *connect.Client[DeleteSessionRequest, DeleteSessionResponse]
	settleSession  *connect.Client[SettleSessionRequest, SettleSessionResponse]
}

// NewSessionServiceClient builds a client against the given base URL.
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SessionServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &SessionServiceClient{
		previewBalance: connect.NewClient[PreviewBalanceRequest, PreviewBalanceResponse](httpClient, baseURL+SessionServicePreviewBalanceProcedure, opts...),
		createSession:  connect.NewClient[CreateSessionRequest, CreateSessionResponse](httpClient, baseURL+SessionServiceCreateSessionProcedure, opts...),
		listSessions:   connect.NewClient[ListSessionsRequest, ListSessionsResponse](httpClient, baseURL+SessionServiceListSessionsProcedure, opts...),
		updateSession:  connect.NewClient[UpdateSessionRequest, UpdateSessionResponse](httpClient, baseURL+SessionServiceUpdateSessionProcedure, opts...),
		deleteSession:  connect.NewClient[DeleteSessionRequest, DeleteSessionResponse](httpClient, baseURL+SessionServiceDeleteSessionProcedure, opts...),
		settleSession:  connect.NewClient[SettleSessionRequest, SettleSessionResponse](httpClient, baseURL+SessionServiceSettleSessionProcedure, opts...),
	}
}

func (c *SessionServiceClient) PreviewBalance(ctx context.Context, req *connect.Request[PreviewBalanceRequest]) (*connect.Response[PreviewBalanceResponse], error) {
	return c.previewBalance.CallUnary(ctx, req)
}

func (c *SessionServiceClient) CreateSession(ctx context.Context, req *connect.Request[CreateSessionRequest]) (*connect.Response[CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) ListSessions(ctx context.Context, req *connect.Request[ListSessionsRequest]) (*connect.Response[ListSessionsResponse], error) {
	return c.listSessions.CallUnary(ctx, req)
}

func (c *SessionServiceClient) UpdateSession(ctx context.Context, req *connect.Request[UpdateSessionRequest]) (*connect.Response[UpdateSessionResponse], error) {
	return c.updateSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) DeleteSession(ctx context.Context, req *connect.Request[DeleteSessionRequest]) (*connect.Response[DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

func (c *SessionServiceClient) SettleSession(ctx context.Context, req *connect.Request[SettleSessionRequest]) (*connect.Response[SettleSessionResponse], error) {
	return c.settleSession.CallUnary(ctx, req)
}
