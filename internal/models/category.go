package models

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// FallbackEmoji is shown when a transaction references a category
// that no longer exists.
const FallbackEmoji = "📦"

// Category groups transactions. A category with a non-nil ParentID is a
// subcategory; nesting is exactly one level deep.
type Category struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Emoji    string     `json:"emoji"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
}

// IsSubcategory reports whether the category has a parent.
func (c *Category) IsSubcategory() bool {
	return c.ParentID != nil
}

// NewCategory builds a category with a fresh ID. The name must be
// non-empty and within the length limit.
func NewCategory(name, emoji string, parentID *uuid.UUID) (Category, error) {
	if name == "" {
		return Category{}, fmt.Errorf("category name must not be empty")
	}
	if len(name) > MaxCategoryNameLength {
		return Category{}, fmt.Errorf("category name exceeds %d characters", MaxCategoryNameLength)
	}
	c := Category{ID: uuid.New(), Name: name, Emoji: emoji}
	if parentID != nil {
		id := *parentID
		c.ParentID = &id
	}
	return c, nil
}

// DefaultCategories is the fixed built-in set used when the user has
// defined no custom categories. IDs are derived from the name so they
// are stable across runs without being persisted.
var DefaultCategories = []Category{
	defaultCategory("Groceries", "🛒"),
	defaultCategory("Transport", "🚗"),
	defaultCategory("Housing", "🏠"),
	defaultCategory("Salary", "💰"),
	defaultCategory("Healthcare", "🏥"),
	defaultCategory("Entertainment", "🎮"),
	defaultCategory("Clothing", "👕"),
	defaultCategory("Subscriptions", "📱"),
	defaultCategory("Travel", "✈️"),
	defaultCategory("Other", "📦"),
}

func defaultCategory(name, emoji string) Category {
	return Category{
		ID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte("finanzapp.category."+name)),
		Name:  name,
		Emoji: emoji,
	}
}
