package models

// CategoryOther is the fallback category for expenses created without one.
const CategoryOther = "other"

// Category is one entry of the expense category registry.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Categories lists the known expense categories. The registry is advisory:
// expenses carry free-form category tags, and unknown tags are kept as-is.
var Categories = []Category{
	{ID: "foodDrink", Name: "Food & Drink"},
	{ID: "coffee", Name: "Coffee"},
	{ID: "groceries", Name: "Groceries"},
	{ID: "shopping", Name: "Shopping"},
	{ID: "travel", Name: "Travel"},
	{ID: "transportation", Name: "Transportation"},
	{ID: "housing", Name: "Housing & Rent"},
	{ID: "utilities", Name: "Utilities"},
	{ID: "entertainment", Name: "Entertainment"},
	{ID: "education", Name: "Education"},
	{ID: "health", Name: "Health & Medical"},
	{ID: "gifts", Name: "Gifts"},
	{ID: CategoryOther, Name: "Other"},
}

// DefaultCategory returns category unchanged when non-empty, otherwise the
// fallback category id.
func DefaultCategory(category string) string {
	if category == "" {
		return CategoryOther
	}
	return category
}
