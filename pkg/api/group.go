package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// GroupServicePath is the mount prefix for the group service.
	GroupServicePath = "/pokerpal.v1.GroupService/"

	GroupServiceJoinProcedure         = GroupServicePath + "Join"
	GroupServiceGetGroupProcedure     = GroupServicePath + "GetGroup"
	GroupServiceAddPlayerProcedure    = GroupServicePath + "AddPlayer"
	GroupServiceRemovePlayerProcedure = GroupServicePath + "RemovePlayer"
)

// JoinRequest carries the shared group code. Players is only read on the
// first join, when it becomes the initial roster.
type JoinRequest struct {
	GroupCode string   `json:"groupCode"`
	Players   []string `json:"players,omitempty"`
}

// JoinResponse returns a bearer token for the rest of the API.
type JoinResponse struct {
	Token string `json:"token"`
	// Provisioned is true when this join created the group.
	Provisioned bool     `json:"provisioned"`
	Players     []string `json:"players"`
}

type GetGroupRequest struct{}

type GetGroupResponse struct {
	Players   []string `json:"players"`
	CreatedAt int64    `json:"createdAt"`
}

type AddPlayerRequest struct {
	Name string `json:"name"`
}

type AddPlayerResponse struct {
	Players []string `json:"players"`
}

type RemovePlayerRequest struct {
	Name string `json:"name"`
}

type RemovePlayerResponse struct {
	Players []string `json:"players"`
}

// GroupServiceHandler is the server-side contract for the group service.
type GroupServiceHandler interface {
	Join(context.Context, *connect.Request[JoinRequest]) (*connect.Response[JoinResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	AddPlayer(context.Context, *connect.Request[AddPlayerRequest]) (*connect.Response[AddPlayerResponse], error)
	RemovePlayer(context.Context, *connect.Request[RemovePlayerRequest]) (*connect.Response[RemovePlayerResponse], error)
}

// NewGroupServiceHandler builds an http.Handler for the group service and
// returns the path to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceJoinProcedure, connect.NewUnaryHandler(GroupServiceJoinProcedure, svc.Join, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceAddPlayerProcedure, connect.NewUnaryHandler(GroupServiceAddPlayerProcedure, svc.AddPlayer, opts...))
	mux.Handle(GroupServiceRemovePlayerProcedure, connect.NewUnaryHandler(GroupServiceRemovePlayerProcedure, svc.RemovePlayer, opts...))
	return GroupServicePath, mux
}

// GroupServiceClient calls the group service.
type GroupServiceClient struct {
	join         *connect.Client[JoinRequest, JoinResponse]
	getGroup     *connect.Client[GetGroupRequest, GetGroupResponse]
	addPlayer    *connect.Client[AddPlayerRequest, AddPlayerResponse]
	removePlayer *connect.Client[RemovePlayerRequest, RemovePlayerResponse]
}

// NewGroupServiceClient builds a client against the given base URL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &GroupServiceClient{
		join:         connect.NewClient[JoinRequest, JoinResponse](httpClient, baseURL+GroupServiceJoinProcedure, opts...),
		getGroup:     connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		addPlayer:    connect.NewClient[AddPlayerRequest, AddPlayerResponse](httpClient, baseURL+GroupServiceAddPlayerProcedure, opts...),
		removePlayer: connect.NewClient[RemovePlayerRequest, RemovePlayerResponse](httpClient, baseURL+GroupServiceRemovePlayerProcedure, opts...),
	}
}

func (c *GroupServiceClient) Join(ctx context.Context, req *connect.Request[JoinRequest]) (*connect.Response[JoinResponse], error) {
	return c.join.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddPlayer(ctx context.Context, req *connect.Request[AddPlayerRequest]) (*connect.Response[AddPlayerResponse], error) {
	return c.addPlayer.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemovePlayer(ctx context.Context, req *connect.Request[RemovePlayerRequest]) (*connect.Response[RemovePlayerResponse], error) {
	return c.removePlayer.CallUnary(ctx, req)
}
