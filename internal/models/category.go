package models

// CategoryType says whether a category records money going out or coming in.
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// Category labels transactions. System categories are visible to everyone
// and immutable; user categories are visible to and editable by their
// creator only.
type Category struct {
	ID          string       `db:"id"`
	Name        string       `db:"name"`
	Type        CategoryType `db:"type"`
	Description string       `db:"description"`
	IsSystem    bool         `db:"is_system"`

	// CreatedBy is empty for system categories.
	CreatedBy string `db:"created_by"`

	CreatedAt int64 `db:"created_at"`
}

// EditableBy reports whether userID may change or delete the category.
func (c *Category) EditableBy(userID string) bool {
	return !c.IsSystem && userID != "" && c.CreatedBy == userID
}

// DefaultCategories are the system categories every installation starts with.
var DefaultCategories = []Category{
	{Name: "Food", Type: CategoryTypeExpense, Description: "Groceries, restaurants, snacks"},
	{Name: "Transport", Type: CategoryTypeExpense, Description: "Public transport, fuel, tolls"},
	{Name: "Housing", Type: CategoryTypeExpense, Description: "Rent, utilities, maintenance"},
	{Name: "Health", Type: CategoryTypeExpense, Description: "Medicine, appointments"},
	{Name: "Entertainment", Type: CategoryTypeExpense, Description: "Cinema, streaming"},
	{Name: "Education", Type: CategoryTypeExpense, Description: "Courses, tuition, books"},
	{Name: "Salary", Type: CategoryTypeIncome, Description: "Payroll, fees"},
	{Name: "Interest", Type: CategoryTypeIncome, Description: "Interest, returns"},
	{Name: "Sales", Type: CategoryTypeIncome, Description: "Sale of goods or services"},
}
