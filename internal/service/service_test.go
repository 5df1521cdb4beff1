package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"pokerpal/internal/auth"
	"pokerpal/internal/middleware"
	"pokerpal/internal/storage/sqlite"
	"pokerpal/pkg/api"
)

const testGroupCode = "test-code-1234"

// testEnv wires the full stack against a throwaway database, with the same
// auth interceptor chain the server uses. Clients attach env.token to every
// request, so tests exercise the real bearer-token path.
type testEnv struct {
	group   *api.GroupServiceClient
	session *api.SessionServiceClient
	debt    *api.DebtServiceClient
	stats   *api.StatsServiceClient
	token   string
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	dir, err := os.MkdirTemp("", "pokerpal-service-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	store, err := sqlite.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	gate := auth.NewAccessGate(store, jwtManager)

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, api.GroupServiceJoinProcedure),
	)

	mux := http.NewServeMux()

	groupPath, groupHandler := api.NewGroupServiceHandler(NewGroupService(store, gate), interceptors)
	mux.Handle(groupPath, groupHandler)

	sessionPath, sessionHandler := api.NewSessionServiceHandler(NewSessionService(store), interceptors)
	mux.Handle(sessionPath, sessionHandler)

	debtPath, debtHandler := api.NewDebtServiceHandler(NewDebtService(store), interceptors)
	mux.Handle(debtPath, debtHandler)

	statsPath, statsHandler := api.NewStatsServiceHandler(NewStatsService(store), interceptors)
	mux.Handle(statsPath, statsHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	env := &testEnv{}
	clientOpts := connect.WithInterceptors(env.authInterceptor())
	env.group = api.NewGroupServiceClient(http.DefaultClient, server.URL, clientOpts)
	env.session = api.NewSessionServiceClient(http.DefaultClient, server.URL, clientOpts)
	env.debt = api.NewDebtServiceClient(http.DefaultClient, server.URL, clientOpts)
	env.stats = api.NewStatsServiceClient(http.DefaultClient, server.URL, clientOpts)

	return env
}

func (e *testEnv) authInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if e.token != "" {
				req.Header().Set("Authorization", "Bearer "+e.token)
			}
			return next(ctx, req)
		}
	}
}

// join provisions the group with the given roster and stores the token for
// subsequent calls.
func (e *testEnv) join(t *testing.T, players ...string) {
	t.Helper()

	resp, err := e.group.Join(context.Background(), connect.NewRequest(&api.JoinRequest{
		GroupCode: testGroupCode,
		Players:   players,
	}))
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	e.token = resp.Msg.Token
}

// createSession records a balanced session for the given entries and
// returns it.
func (e *testEnv) createSession(t *testing.T, date string, buyIn float64, entries []api.PlayerEntry) *api.Session {
	t.Helper()

	resp, err := e.session.CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{
		Date:        date,
		Location:    "Dave's place",
		AddedBy:     entries[0].Name,
		BuyInAmount: buyIn,
		Entries:     entries,
	}))
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return resp.Msg.Session
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %v, got nil", want)
	}
	connectErr, ok := err.(*connect.Error)
	if !ok {
		t.Fatalf("expected connect.Error, got %T: %v", err, err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected code %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}
