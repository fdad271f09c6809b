package store

import (
	"time"

	"expenzaar/models"
)

func (s *Store) FindExpense(userID, expenseID uint) (*models.Expense, error) {
	var e models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&e).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (s *Store) CreateExpense(e *models.Expense) error {
	return s.db.Create(e).Error
}

func (s *Store) SaveExpense(e *models.Expense) error {
	return s.db.Save(e).Error
}

func (s *Store) DeleteExpense(expenseID uint) error {
	return s.db.Delete(&models.Expense{}, expenseID).Error
}

// ListExpenses returns all of the user's expenses, newest first.
func (s *Store) ListExpenses(userID uint) ([]models.Expense, error) {
	var exps []models.Expense
	if err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&exps).Error; err != nil {
		return nil, err
	}
	return exps, nil
}

// SumExpenseAmounts totals the user's spend in one category from the given
// instant onward. Zero when no rows match.
func (s *Store) SumExpenseAmounts(userID, categoryID uint, from time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND category_id = ? AND created_at >= ?", userID, categoryID, from).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// SetOverLimitForCategory applies one verdict to every expense in the
// category in a single bulk update, regardless of which month each expense
// belongs to.
func (s *Store) SetOverLimitForCategory(categoryID uint, over bool) error {
	return s.db.Model(&models.Expense{}).
		Where("category_id = ?", categoryID).
		Update("is_over_limit", over).Error
}
