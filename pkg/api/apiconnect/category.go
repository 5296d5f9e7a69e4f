package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/walletwise/pkg/api"
)

// CategoryServiceName is the fully-qualified name of the CategoryService.
const CategoryServiceName = "walletwise.v1.CategoryService"

// Procedure paths of the CategoryService.
const (
	CategoryServiceListCategoriesProcedure = "/" + CategoryServiceName + "/ListCategories"
	CategoryServiceCreateCategoryProcedure = "/" + CategoryServiceName + "/CreateCategory"
	CategoryServiceUpdateCategoryProcedure = "/" + CategoryServiceName + "/UpdateCategory"
	CategoryServiceDeleteCategoryProcedure = "/" + CategoryServiceName + "/DeleteCategory"
)

// CategoryServiceHandler is the server side of the CategoryService, which
// manages system and personal transaction categories.
type CategoryServiceHandler interface {
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	UpdateCategory(context.Context, *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error)
}

// NewCategoryServiceHandler builds an HTTP handler serving svc. It returns the path
// prefix to mount the handler on.
func NewCategoryServiceHandler(svc CategoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	listCategoriesHandler := connect.NewUnaryHandler(CategoryServiceListCategoriesProcedure, svc.ListCategories, opts...)
	createCategoryHandler := connect.NewUnaryHandler(CategoryServiceCreateCategoryProcedure, svc.CreateCategory, opts...)
	updateCategoryHandler := connect.NewUnaryHandler(CategoryServiceUpdateCategoryProcedure, svc.UpdateCategory, opts...)
	deleteCategoryHandler := connect.NewUnaryHandler(CategoryServiceDeleteCategoryProcedure, svc.DeleteCategory, opts...)
	return "/" + CategoryServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case CategoryServiceListCategoriesProcedure:
			listCategoriesHandler.ServeHTTP(w, r)
		case CategoryServiceCreateCategoryProcedure:
			createCategoryHandler.ServeHTTP(w, r)
		case CategoryServiceUpdateCategoryProcedure:
			updateCategoryHandler.ServeHTTP(w, r)
		case CategoryServiceDeleteCategoryProcedure:
			deleteCategoryHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// CategoryServiceClient calls the CategoryService.
type CategoryServiceClient interface {
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error)
	UpdateCategory(context.Context, *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error)
}

// NewCategoryServiceClient returns a client for the CategoryService at baseURL
// (for example, http://localhost:8080).
func NewCategoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CategoryServiceClient {
	baseURL = trimSlash(baseURL)
	opts = clientOptions(opts)
	return &categoryServiceClient{
		listCategories: connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, baseURL+CategoryServiceListCategoriesProcedure, opts...),
		createCategory: connect.NewClient[api.CreateCategoryRequest, api.CreateCategoryResponse](httpClient, baseURL+CategoryServiceCreateCategoryProcedure, opts...),
		updateCategory: connect.NewClient[api.UpdateCategoryRequest, api.UpdateCategoryResponse](httpClient, baseURL+CategoryServiceUpdateCategoryProcedure, opts...),
		deleteCategory: connect.NewClient[api.DeleteCategoryRequest, api.DeleteCategoryResponse](httpClient, baseURL+CategoryServiceDeleteCategoryProcedure, opts...),
	}
}

type categoryServiceClient struct {
	listCategories *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
	createCategory *connect.Client[api.CreateCategoryRequest, api.CreateCategoryResponse]
	updateCategory *connect.Client[api.UpdateCategoryRequest, api.UpdateCategoryResponse]
	deleteCategory *connect.Client[api.DeleteCategoryRequest, api.DeleteCategoryResponse]
}

func (c *categoryServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *categoryServiceClient) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	return c.createCategory.CallUnary(ctx, req)
}

func (c *categoryServiceClient) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error) {
	return c.updateCategory.CallUnary(ctx, req)
}

func (c *categoryServiceClient) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error) {
	return c.deleteCategory.CallUnary(ctx, req)
}
