package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/walletwise/internal/middleware"
	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/storage"
	"github.com/mmynk/walletwise/pkg/api"
	"github.com/mmynk/walletwise/pkg/api/apiconnect"
)

var _ apiconnect.CategoryServiceHandler = (*CategoryService)(nil)

// CategoryService implements the Connect CategoryService.
type CategoryService struct {
	store  storage.CategoryStore
	logger *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(store storage.CategoryStore, logger *slog.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

func parseCategoryType(s string) (models.CategoryType, error) {
	t := models.CategoryType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", invalidArgument("category type must be EXPENSE or INCOME, got %q", s)
	}
	return t, nil
}

// ListCategories lists the system categories plus the caller's own. Anonymous
// callers see system categories only.
func (s *CategoryService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	userID := middleware.GetUserID(ctx)

	var categoryType models.CategoryType
	if req.Msg.Type != "" {
		var err error
		if categoryType, err = parseCategoryType(req.Msg.Type); err != nil {
			return nil, err
		}
	}

	categories, err := s.store.ListCategories(ctx, userID, categoryType)
	if err != nil {
		s.logger.Error("ListCategories failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Category, len(categories))
	for i, c := range categories {
		out[i] = categoryToAPI(c, userID)
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: out}), nil
}

// CreateCategory creates a category private to the caller.
func (s *CategoryService) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CreateCategoryResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}
	categoryType, err := parseCategoryType(req.Msg.Type)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        name,
		Type:        categoryType,
		Description: strings.TrimSpace(req.Msg.Description),
		CreatedBy:   userID,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		s.logger.Error("CreateCategory failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Category created", "category_id", category.ID, "user_id", userID)
	return connect.NewResponse(&api.CreateCategoryResponse{Category: categoryToAPI(category, userID)}), nil
}

// editable loads a category and checks the caller may change it.
func (s *CategoryService) editable(ctx context.Context, categoryID, userID string) (*models.Category, error) {
	if categoryID == "" {
		return nil, invalidArgument("category_id is required")
	}
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !category.EditableBy(userID) {
		return nil, permissionDenied("category %s cannot be modified", categoryID)
	}
	return category, nil
}

// UpdateCategory changes the caller's category. Empty fields keep their
// current value.
func (s *CategoryService) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.UpdateCategoryResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	category, err := s.editable(ctx, req.Msg.CategoryID, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Msg.Name); name != "" {
		category.Name = name
	}
	if req.Msg.Type != "" {
		if category.Type, err = parseCategoryType(req.Msg.Type); err != nil {
			return nil, err
		}
	}
	if desc := strings.TrimSpace(req.Msg.Description); desc != "" {
		category.Description = desc
	}

	if err := s.store.UpdateCategory(ctx, category); err != nil {
		s.logger.Error("UpdateCategory failed", "category_id", category.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Category updated", "category_id", category.ID, "user_id", userID)
	return connect.NewResponse(&api.UpdateCategoryResponse{Category: categoryToAPI(category, userID)}), nil
}

// DeleteCategory deletes the caller's category unless transactions use it.
func (s *CategoryService) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.DeleteCategoryResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	category, err := s.editable(ctx, req.Msg.CategoryID, userID)
	if err != nil {
		return nil, err
	}

	inUse, err := s.store.CountTransactionsByCategory(ctx, category.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if inUse > 0 {
		return nil, failedPrecondition("category is used by %d transactions", inUse)
	}

	if err := s.store.DeleteCategory(ctx, category.ID); err != nil {
		s.logger.Error("DeleteCategory failed", "category_id", category.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Category deleted", "category_id", category.ID, "user_id", userID)
	return connect.NewResponse(&api.DeleteCategoryResponse{}), nil
}
