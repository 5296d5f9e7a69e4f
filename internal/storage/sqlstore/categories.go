package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/walletwise/internal/models"
)

const categoryColumns = `id, name, type, description, is_system, created_by, created_at`

// CreateCategory persists a new category.
func (s *SQLStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if category.CreatedAt == 0 {
		category.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES (:id, :name, :type, :description, :is_system, :created_by, :created_at)`,
		category,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category by ID.
func (s *SQLStore) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	category := &models.Category{}
	err := s.db.GetContext(ctx, category,
		s.db.Rebind(`SELECT `+categoryColumns+` FROM categories WHERE id = ?`),
		categoryID,
	)
	if err != nil {
		return nil, notFound(err, "category", categoryID)
	}
	return category, nil
}

// ListCategories retrieves system categories and the user's own.
func (s *SQLStore) ListCategories(ctx context.Context, userID string, categoryType models.CategoryType) ([]*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE (is_system = ? OR created_by = ?)`
	args := []interface{}{true, userID}
	if categoryType != "" {
		query += ` AND type = ?`
		args = append(args, string(categoryType))
	}
	query += ` ORDER BY is_system DESC, name ASC, id`

	var categories []*models.Category
	if err := s.db.SelectContext(ctx, &categories, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory updates a category's name, type and description.
func (s *SQLStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE categories SET name = :name, type = :type, description = :description
		WHERE id = :id`,
		category,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return expectAffected(res, "category", category.ID)
}

// DeleteCategory removes a category by ID.
func (s *SQLStore) DeleteCategory(ctx context.Context, categoryID string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM categories WHERE id = ?`), categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return expectAffected(res, "category", categoryID)
}

// UpsertSystemCategory creates the system category or refreshes its description.
func (s *SQLStore) UpsertSystemCategory(ctx context.Context, category *models.Category) error {
	category.IsSystem = true
	category.CreatedBy = ""

	var existingID string
	err := s.db.GetContext(ctx, &existingID, s.db.Rebind(`
		SELECT id FROM categories WHERE name = ? AND type = ? AND is_system = ?`),
		category.Name, string(category.Type), true,
	)
	switch {
	case err == nil:
		category.ID = existingID
		_, err = s.db.ExecContext(ctx,
			s.db.Rebind(`UPDATE categories SET description = ? WHERE id = ?`),
			category.Description, existingID,
		)
		if err != nil {
			return fmt.Errorf("failed to update system category: %w", err)
		}
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return s.CreateCategory(ctx, category)
	default:
		return fmt.Errorf("failed to look up system category: %w", err)
	}
}

// CountTransactionsByCategory counts the transactions recorded against a category.
func (s *SQLStore) CountTransactionsByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		s.db.Rebind(`SELECT COUNT(*) FROM transactions WHERE category_id = ?`),
		categoryID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return n, nil
}
