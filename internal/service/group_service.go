// Package service implements the Connect RPC handlers. Each service wraps
// the storage layer and the pure calculator package; request validation and
// error-code mapping happen here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"pokerpal/internal/auth"
	"pokerpal/internal/models"
	"pokerpal/internal/storage"
	"pokerpal/pkg/api"
)

// GroupService implements api.GroupServiceHandler: joining the group and
// managing its roster.
type GroupService struct {
	store storage.Store
	gate  *auth.AccessGate
}

// NewGroupService creates a new GroupService.
func NewGroupService(store storage.Store, gate *auth.AccessGate) *GroupService {
	return &GroupService{store: store, gate: gate}
}

// Join exchanges the shared group code for a bearer token. The first join
// provisions the group with the supplied roster.
func (s *GroupService) Join(ctx context.Context, req *connect.Request[api.JoinRequest]) (*connect.Response[api.JoinResponse], error) {
	slog.Info("Join request received", "players_count", len(req.Msg.Players))

	roster := normalizeRoster(req.Msg.Players)
	if len(req.Msg.Players) > 0 {
		if err := validateRoster(roster); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	token, provisioned, err := s.gate.Join(ctx, req.Msg.GroupCode, roster)
	if err != nil {
		switch {
		case err == auth.ErrEmptyAccessCode:
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		case err == auth.ErrRosterRequired:
			return nil, connect.NewError(connect.CodeFailedPrecondition, err)
		case err == auth.ErrInvalidAccessCode:
			slog.Warn("Join rejected: wrong group code")
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		default:
			slog.Error("Join failed", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
	}

	group, err := s.store.GetGroup(ctx)
	if err != nil {
		slog.Error("Join failed to load group", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	if provisioned {
		slog.Info("Group provisioned", "players_count", len(group.Players))
	}

	return connect.NewResponse(&api.JoinResponse{
		Token:       token,
		Provisioned: provisioned,
		Players:     group.Players,
	}), nil
}

// GetGroup returns the roster and creation time.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	group, err := s.store.GetGroup(ctx)
	if err != nil {
		slog.Error("GetGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.GetGroupResponse{
		Players:   group.Players,
		CreatedAt: group.CreatedAt,
	}), nil
}

// AddPlayer appends a player to the roster.
func (s *GroupService) AddPlayer(ctx context.Context, req *connect.Request[api.AddPlayerRequest]) (*connect.Response[api.AddPlayerResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("AddPlayer request received", "name", name)

	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("player name required"))
	}

	group, err := s.store.GetGroup(ctx)
	if err != nil {
		slog.Error("AddPlayer failed to load group", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	for _, p := range group.Players {
		if p == name {
			return nil, connect.NewError(connect.CodeAlreadyExists, fmt.Errorf("player %q already in the group", name))
		}
	}
	if len(group.Players) >= models.MaxRosterSize {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("group is full (max %d players)", models.MaxRosterSize))
	}

	players := append(group.Players, name)
	if err := s.store.UpdateRoster(ctx, players); err != nil {
		slog.Error("AddPlayer failed", "name", name, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Player added", "name", name, "players_count", len(players))

	return connect.NewResponse(&api.AddPlayerResponse{Players: players}), nil
}

// RemovePlayer drops a player from the roster. Past sessions keep their
// entries; only future sessions are affected.
func (s *GroupService) RemovePlayer(ctx context.Context, req *connect.Request[api.RemovePlayerRequest]) (*connect.Response[api.RemovePlayerResponse], error) {
	name := req.Msg.Name
	slog.Info("RemovePlayer request received", "name", name)

	group, err := s.store.GetGroup(ctx)
	if err != nil {
		slog.Error("RemovePlayer failed to load group", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	idx := -1
	for i, p := range group.Players {
		if p == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("player %q not in the group", name))
	}
	if len(group.Players) == 1 {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("cannot remove the last player"))
	}

	players := append(append([]string{}, group.Players[:idx]...), group.Players[idx+1:]...)
	if err := s.store.UpdateRoster(ctx, players); err != nil {
		slog.Error("RemovePlayer failed", "name", name, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Player removed", "name", name, "players_count", len(players))

	return connect.NewResponse(&api.RemovePlayerResponse{Players: players}), nil
}

func normalizeRoster(players []string) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func validateRoster(players []string) error {
	if len(players) == 0 {
		return fmt.Errorf("at least one player required")
	}
	if len(players) > models.MaxRosterSize {
		return fmt.Errorf("at most %d players allowed", models.MaxRosterSize)
	}
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if p == "" {
			return fmt.Errorf("player names must not be empty")
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("duplicate player name %q", p)
		}
		seen[p] = struct{}{}
	}
	return nil
}
