package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// DebtServicePath is the mount prefix for the debt service.
	DebtServicePath = "/pokerpal.v1.DebtService/"

	DebtServiceListDebtsProcedure  = DebtServicePath + "ListDebts"
	DebtServiceCreateDebtProcedure = DebtServicePath + "CreateDebt"
	DebtServiceSettleDebtProcedure = DebtServicePath + "SettleDebt"
)

// Debt mirrors models.Debt for the wire.
type Debt struct {
	ID          string  `json:"id"`
	FromPlayer  string  `json:"fromPlayer"`
	ToPlayer    string  `json:"toPlayer"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	Settled     bool    `json:"settled"`
	CreatedAt   int64   `json:"createdAt"`
	SettledAt   int64   `json:"settledAt,omitempty"`
	SessionID   string  `json:"sessionId,omitempty"`
	SessionDate string  `json:"sessionDate,omitempty"`
}

type ListDebtsRequest struct{}

// ListDebtsResponse splits outstanding from paid debts, the way the debts
// view renders them.
type ListDebtsResponse struct {
	Active  []*Debt `json:"active"`
	Settled []*Debt `json:"settled"`
}

type CreateDebtRequest struct {
	FromPlayer  string  `json:"fromPlayer"`
	ToPlayer    string  `json:"toPlayer"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type CreateDebtResponse struct {
	Debt *Debt `json:"debt"`
}

type SettleDebtRequest struct {
	DebtID string `json:"debtId"`
}

type SettleDebtResponse struct {
	Debt *Debt `json:"debt"`
}

// DebtServiceHandler is the server-side contract for the debt service.
type DebtServiceHandler interface {
	ListDebts(context.Context, *connect.Request[ListDebtsRequest]) (*connect.Response[ListDebtsResponse], error)
	CreateDebt(context.Context, *connect.Request[CreateDebtRequest]) (*connect.Response[CreateDebtResponse], error)
	SettleDebt(context.Context, *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error)
}

// NewDebtServiceHandler builds an http.Handler for the debt service and
// returns the path to mount it on.
func NewDebtServiceHandler(svc DebtServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(DebtServiceListDebtsProcedure, connect.NewUnaryHandler(DebtServiceListDebtsProcedure, svc.ListDebts, opts...))
	mux.Handle(DebtServiceCreateDebtProcedure, connect.NewUnaryHandler(DebtServiceCreateDebtProcedure, svc.CreateDebt, opts...))
	mux.Handle(DebtServiceSettleDebtProcedure, connect.NewUnaryHandler(DebtServiceSettleDebtProcedure, svc.SettleDebt, opts...))
	return DebtServicePath, mux
}

// DebtServiceClient calls the debt service.
type DebtServiceClient struct {
	listDebts  *connect.Client[ListDebtsRequest, ListDebtsResponse]
	createDebt *connect.Client[CreateDebtRequest, CreateDebtResponse]
	settleDebt *connect.Client[SettleDebtRequest, SettleDebtResponse]
}

// NewDebtServiceClient builds a client against the given base URL.
func NewDebtServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DebtServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &DebtServiceClient{
		listDebts:  connect.NewClient[ListDebtsRequest, ListDebtsResponse](httpClient, baseURL+DebtServiceListDebtsProcedure, opts...),
		createDebt: connect.NewClient[CreateDebtRequest, CreateDebtResponse](httpClient, baseURL+DebtServiceCreateDebtProcedure, opts...),
		settleDebt: connect.NewClient[SettleDebtRequest, SettleDebtResponse](httpClient, baseURL+DebtServiceSettleDebtProcedure, opts...),
	}
}

func (c *DebtServiceClient) ListDebts(ctx context.Context, req *connect.Request[ListDebtsRequest]) (*connect.Response[ListDebtsResponse], error) {
	return c.listDebts.CallUnary(ctx, req)
}

func (c *DebtServiceClient) CreateDebt(ctx context.Context, req *connect.Request[CreateDebtRequest]) (*connect.Response[CreateDebtResponse], error) {
	return c.createDebt.CallUnary(ctx, req)
}

func (c *DebtServiceClient) SettleDebt(ctx context.Context, req *connect.Request[SettleDebtRequest]) (*connect.Response[SettleDebtResponse], error) {
	return c.settleDebt.CallUnary(ctx, req)
}
