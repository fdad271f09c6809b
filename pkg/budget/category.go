package budget

import (
	"errors"
	"strings"

	"expenzaar/models"
)

// CategoryInput carries the fields accepted when adding a category.
type CategoryInput struct {
	Name  string
	Limit float64
	Icon  string
	Color string
}

// CategoryUpdate is a partial update; nil fields are left untouched.
type CategoryUpdate struct {
	Name  *string
	Limit *float64
	Icon  *string
	Color *string
}

// CategoryView is the listing projection: Spent is month-to-date spend,
// Remaining is limit minus spend, unclamped (negative means over budget).
type CategoryView struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Limit     float64 `json:"limit"`
	Icon      string  `json:"icon,omitempty"`
	Color     string  `json:"color,omitempty"`
	Spent     float64 `json:"spent"`
	Remaining float64 `json:"remaining"`
}

func (s *Service) CreateCategory(userID uint, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "required"}
	}
	// optimistic duplicate check; the unique index catches the race
	if _, err := s.store.FindCategoryByName(userID, name); err == nil {
		return nil, models.ErrDuplicateName
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	cat := &models.Category{
		UserID: userID,
		Name:   name,
		Limit:  in.Limit,
		Icon:   in.Icon,
		Color:  in.Color,
	}
	if err := s.store.CreateCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) UpdateCategory(userID, categoryID uint, in CategoryUpdate) (*models.Category, error) {
	cat, err := s.store.FindCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, &ValidationError{Field: "name", Message: "required"}
		}
		if name != cat.Name {
			if _, err := s.store.FindCategoryByName(userID, name); err == nil {
				return nil, models.ErrDuplicateName
			} else if !errors.Is(err, models.ErrNotFound) {
				return nil, err
			}
		}
		cat.Name = name
	}
	if in.Limit != nil {
		cat.Limit = *in.Limit
	}
	if in.Icon != nil {
		cat.Icon = *in.Icon
	}
	if in.Color != nil {
		cat.Color = *in.Color
	}
	if err := s.store.SaveCategory(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// DeleteCategory removes the category only. Its expenses keep their
// category_id and become dangling references; the listing projection handles
// the missing join.
func (s *Service) DeleteCategory(userID, categoryID uint) error {
	cat, err := s.store.FindCategory(userID, categoryID)
	if err != nil {
		return err
	}
	return s.store.DeleteCategory(cat.ID)
}

// ListCategories returns the user's categories ordered by name with the
// remaining-budget projection recomputed from storage on every call. It
// never writes back to the persisted flags.
func (s *Service) ListCategories(userID uint) ([]CategoryView, error) {
	cats, err := s.store.ListCategories(userID)
	if err != nil {
		return nil, err
	}
	from := monthStart(s.now())
	views := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		total, err := s.store.SumExpenseAmounts(userID, c.ID, from)
		if err != nil {
			return nil, err
		}
		views = append(views, CategoryView{
			ID:        c.ID,
			Name:      c.Name,
			Limit:     c.Limit,
			Icon:      c.Icon,
			Color:     c.Color,
			Spent:     total,
			Remaining: c.Limit - total,
		})
	}
	return views, nil
}
