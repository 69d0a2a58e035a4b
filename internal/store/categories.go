package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/antoninaarc/finanzapp/internal/logger"
	"github.com/antoninaarc/finanzapp/internal/models"
	"github.com/antoninaarc/finanzapp/internal/storage"
)

// Categories returns the selectable set: the custom categories when any
// exist, the built-in defaults otherwise. The two pools never merge.
func (s *Store) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCategories(s.activeCategories())
}

// TopLevelCategories returns the selectable categories without a parent.
func (s *Store) TopLevelCategories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Category
	for _, c := range s.activeCategories() {
		if !c.IsSubcategory() {
			out = append(out, c)
		}
	}
	return out
}

// Subcategories returns the direct children of the given category.
func (s *Store) Subcategories(parentID uuid.UUID) []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Category
	for _, c := range s.activeCategories() {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out
}

// activeCategories must be called with the lock held.
func (s *Store) activeCategories() []models.Category {
	if len(s.categories) > 0 {
		return s.categories
	}
	return models.DefaultCategories
}

func copyCategories(cats []models.Category) []models.Category {
	out := make([]models.Category, len(cats))
	copy(out, cats)
	return out
}

// SaveCategory adds a custom category, or updates the one with the same
// ID. A parent reference must point at an existing top-level custom
// category; self-parenting is rejected.
func (s *Store) SaveCategory(ctx context.Context, c models.Category) error {
	if c.ID == uuid.Nil {
		return errors.New("category has no id")
	}
	if c.Name == "" {
		return errors.New("category name must not be empty")
	}
	if c.ParentID != nil && *c.ParentID == c.ID {
		return errors.New("category cannot be its own parent")
	}

	s.mu.Lock()
	if c.ParentID != nil {
		parent := findCategory(s.categories, *c.ParentID)
		if parent == nil {
			s.mu.Unlock()
			return fmt.Errorf("parent category %s: %w", c.ParentID, ErrNotFound)
		}
		if parent.IsSubcategory() {
			s.mu.Unlock()
			return errors.New("subcategories cannot have children")
		}
	}

	replaced := false
	for i := range s.categories {
		if s.categories[i].ID == c.ID {
			s.categories[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		s.categories = append(s.categories, c)
	}
	s.persist(ctx, storage.KeyCategories, s.categories)
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteCategory removes a custom category and, when it is a parent,
// all of its direct subcategories.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	found := false
	kept := s.categories[:0]
	for _, c := range s.categories {
		switch {
		case c.ID == id:
			found = true
		case c.ParentID != nil && *c.ParentID == id:
			// Cascade, one level deep.
		default:
			kept = append(kept, c)
		}
	}
	s.categories = kept
	if found {
		s.persist(ctx, storage.KeyCategories, s.categories)
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	logger.Log.Debug().Str("id", id.String()).Msg("category deleted")
	s.notify()
	return nil
}

// ResolveCategory maps a transaction to its category for display,
// looking up by stable ID first and by legacy name second. Unmatched
// references fall back to "Other" with the fallback emoji rather than
// failing.
func (s *Store) ResolveCategory(tx *models.Transaction) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.activeCategories()
	if tx.CategoryID != nil {
		if c := findCategory(active, *tx.CategoryID); c != nil {
			return *c
		}
	}
	for i := range active {
		if active[i].Name == tx.Category {
			return active[i]
		}
	}
	return models.Category{Name: "Other", Emoji: models.FallbackEmoji}
}

func findCategory(cats []models.Category, id uuid.UUID) *models.Category {
	for i := range cats {
		if cats[i].ID == id {
			return &cats[i]
		}
	}
	return nil
}
