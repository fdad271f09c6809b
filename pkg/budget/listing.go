package budget

import (
	"time"

	"expenzaar/models"
)

// CategoryRef is the category projection embedded in an expense listing.
// Nil when the expense references a deleted category.
type CategoryRef struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Limit float64 `json:"limit"`
	Icon  string  `json:"icon,omitempty"`
	Color string  `json:"color,omitempty"`
}

// ExpenseView is the read-side listing projection. TotalSpent is the
// (month, category) bucket total the expense belongs to, and IsOverLimit is
// recomputed for display from that bucket. That is a different rule than the
// persisted flag, which is a bulk per-category verdict; the two projections
// are kept deliberately separate.
type ExpenseView struct {
	ID          uint         `json:"id"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	TotalSpent  float64      `json:"total_spent"`
	IsOverLimit bool         `json:"is_over_limit"`
	Category    *CategoryRef `json:"category"`
}

type monthBucket struct {
	year       int
	month      time.Month
	categoryID uint
}

// ListExpenses returns the user's expenses newest-first. Bucket totals are
// computed over ALL the user's expenses grouped by (month, category), not
// filtered to the current month, so historical rows display the verdict of
// their own month.
func (s *Service) ListExpenses(userID uint) ([]ExpenseView, error) {
	exps, err := s.store.ListExpenses(userID)
	if err != nil {
		return nil, err
	}
	cats, err := s.store.ListCategories(userID)
	if err != nil {
		return nil, err
	}
	catByID := make(map[uint]models.Category, len(cats))
	for _, c := range cats {
		catByID[c.ID] = c
	}
	totals := make(map[monthBucket]float64)
	for _, e := range exps {
		b := monthBucket{e.CreatedAt.Year(), e.CreatedAt.Month(), e.CategoryID}
		totals[b] += e.Amount
	}
	views := make([]ExpenseView, 0, len(exps))
	for _, e := range exps {
		total := totals[monthBucket{e.CreatedAt.Year(), e.CreatedAt.Month(), e.CategoryID}]
		v := ExpenseView{
			ID:          e.ID,
			Amount:      e.Amount,
			Description: e.Description,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
			TotalSpent:  total,
		}
		if c, ok := catByID[e.CategoryID]; ok {
			v.Category = &CategoryRef{ID: c.ID, Name: c.Name, Limit: c.Limit, Icon: c.Icon, Color: c.Color}
			v.IsOverLimit = c.Limit > 0 && total > c.Limit
		}
		views = append(views, v)
	}
	return views, nil
}
