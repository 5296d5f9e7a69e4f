package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/walletwise/pkg/api"
)

// WalletServiceName is the fully-qualified name of the WalletService.
const WalletServiceName = "walletwise.v1.WalletService"

// Procedure paths of the WalletService.
const (
	WalletServiceCreateWalletProcedure = "/" + WalletServiceName + "/CreateWallet"
	WalletServiceListWalletsProcedure  = "/" + WalletServiceName + "/ListWallets"
	WalletServiceGetWalletProcedure    = "/" + WalletServiceName + "/GetWallet"
	WalletServiceDeleteWalletProcedure = "/" + WalletServiceName + "/DeleteWallet"
	WalletServiceAddMemberProcedure    = "/" + WalletServiceName + "/AddMember"
	WalletServiceListMembersProcedure  = "/" + WalletServiceName + "/ListMembers"
	WalletServiceRemoveMemberProcedure = "/" + WalletServiceName + "/RemoveMember"
	WalletServiceGetBalancesProcedure  = "/" + WalletServiceName + "/GetBalances"
)

// WalletServiceHandler is the server side of the WalletService, which
// manages wallets, their members and balances.
type WalletServiceHandler interface {
	CreateWallet(context.Context, *connect.Request[api.CreateWalletRequest]) (*connect.Response[api.CreateWalletResponse], error)
	ListWallets(context.Context, *connect.Request[api.ListWalletsRequest]) (*connect.Response[api.ListWalletsResponse], error)
	GetWallet(context.Context, *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error)
	DeleteWallet(context.Context, *connect.Request[api.DeleteWalletRequest]) (*connect.Response[api.DeleteWalletResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
}

// NewWalletServiceHandler builds an HTTP handler serving svc. It returns the path
// prefix to mount the handler on.
func NewWalletServiceHandler(svc WalletServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createWalletHandler := connect.NewUnaryHandler(WalletServiceCreateWalletProcedure, svc.CreateWallet, opts...)
	listWalletsHandler := connect.NewUnaryHandler(WalletServiceListWalletsProcedure, svc.ListWallets, opts...)
	getWalletHandler := connect.NewUnaryHandler(WalletServiceGetWalletProcedure, svc.GetWallet, opts...)
	deleteWalletHandler := connect.NewUnaryHandler(WalletServiceDeleteWalletProcedure, svc.DeleteWallet, opts...)
	addMemberHandler := connect.NewUnaryHandler(WalletServiceAddMemberProcedure, svc.AddMember, opts...)
	listMembersHandler := connect.NewUnaryHandler(WalletServiceListMembersProcedure, svc.ListMembers, opts...)
	removeMemberHandler := connect.NewUnaryHandler(WalletServiceRemoveMemberProcedure, svc.RemoveMember, opts...)
	getBalancesHandler := connect.NewUnaryHandler(WalletServiceGetBalancesProcedure, svc.GetBalances, opts...)
	return "/" + WalletServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case WalletServiceCreateWalletProcedure:
			createWalletHandler.ServeHTTP(w, r)
		case WalletServiceListWalletsProcedure:
			listWalletsHandler.ServeHTTP(w, r)
		case WalletServiceGetWalletProcedure:
			getWalletHandler.ServeHTTP(w, r)
		case WalletServiceDeleteWalletProcedure:
			deleteWalletHandler.ServeHTTP(w, r)
		case WalletServiceAddMemberProcedure:
			addMemberHandler.ServeHTTP(w, r)
		case WalletServiceListMembersProcedure:
			listMembersHandler.ServeHTTP(w, r)
		case WalletServiceRemoveMemberProcedure:
			removeMemberHandler.ServeHTTP(w, r)
		case WalletServiceGetBalancesProcedure:
			getBalancesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// WalletServiceClient calls the WalletService.
type WalletServiceClient interface {
	CreateWallet(context.Context, *connect.Request[api.CreateWalletRequest]) (*connect.Response[api.CreateWalletResponse], error)
	ListWallets(context.Context, *connect.Request[api.ListWalletsRequest]) (*connect.Response[api.ListWalletsResponse], error)
	GetWallet(context.Context, *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error)
	DeleteWallet(context.Context, *connect.Request[api.DeleteWalletRequest]) (*connect.Response[api.DeleteWalletResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
}

// NewWalletServiceClient returns a client for the WalletService at baseURL
// (for example, http://localhost:8080).
func NewWalletServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) WalletServiceClient {
	baseURL = trimSlash(baseURL)
	opts = clientOptions(opts)
	return &walletServiceClient{
		createWallet: connect.NewClient[api.CreateWalletRequest, api.CreateWalletResponse](httpClient, baseURL+WalletServiceCreateWalletProcedure, opts...),
		listWallets:  connect.NewClient[api.ListWalletsRequest, api.ListWalletsResponse](httpClient, baseURL+WalletServiceListWalletsProcedure, opts...),
		getWallet:    connect.NewClient[api.GetWalletRequest, api.GetWalletResponse](httpClient, baseURL+WalletServiceGetWalletProcedure, opts...),
		deleteWallet: connect.NewClient[api.DeleteWalletRequest, api.DeleteWalletResponse](httpClient, baseURL+WalletServiceDeleteWalletProcedure, opts...),
		addMember:    connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+WalletServiceAddMemberProcedure, opts...),
		listMembers:  connect.NewClient[api.ListMembersRequest, api.ListMembersResponse](httpClient, baseURL+WalletServiceListMembersProcedure, opts...),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+WalletServiceRemoveMemberProcedure, opts...),
		getBalances:  connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+WalletServiceGetBalancesProcedure, opts...),
	}
}

type walletServiceClient struct {
	createWallet *connect.Client[api.CreateWalletRequest, api.CreateWalletResponse]
	listWallets  *connect.Client[api.ListWalletsRequest, api.ListWalletsResponse]
	getWallet    *connect.Client[api.GetWalletRequest, api.GetWalletResponse]
	deleteWallet *connect.Client[api.DeleteWalletRequest, api.DeleteWalletResponse]
	addMember    *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	listMembers  *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	removeMember *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	getBalances  *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
}

func (c *walletServiceClient) CreateWallet(ctx context.Context, req *connect.Request[api.CreateWalletRequest]) (*connect.Response[api.CreateWalletResponse], error) {
	return c.createWallet.CallUnary(ctx, req)
}

func (c *walletServiceClient) ListWallets(ctx context.Context, req *connect.Request[api.ListWalletsRequest]) (*connect.Response[api.ListWalletsResponse], error) {
	return c.listWallets.CallUnary(ctx, req)
}

func (c *walletServiceClient) GetWallet(ctx context.Context, req *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error) {
	return c.getWallet.CallUnary(ctx, req)
}

func (c *walletServiceClient) DeleteWallet(ctx context.Context, req *connect.Request[api.DeleteWalletRequest]) (*connect.Response[api.DeleteWalletResponse], error) {
	return c.deleteWallet.CallUnary(ctx, req)
}

func (c *walletServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *walletServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *walletServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *walletServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}
