package budget

import (
	"errors"

	"expenzaar/models"

	"golang.org/x/sync/errgroup"
)

// ExpenseInput carries the fields accepted when adding or updating an
// expense. Amount and CategoryID are mandatory; Description is optional.
type ExpenseInput struct {
	Amount      float64
	CategoryID  uint
	Description string
}

func (in ExpenseInput) validate() error {
	if in.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	if in.CategoryID == 0 {
		return &ValidationError{Field: "category_id", Message: "required"}
	}
	return nil
}

// CreateExpense verifies category ownership, computes the over-limit flag
// inline from the pre-insert month total plus the new amount, and stores it
// on the new row. No recompute pass follows: the new row's flag is already
// correct and the category's other rows keep whatever flag their own last
// mutation wrote. The add path and the update path are deliberately
// asymmetric.
func (s *Service) CreateExpense(userID uint, in ExpenseInput) (*models.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	cat, err := s.store.FindCategory(userID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	total, err := s.store.SumExpenseAmounts(userID, cat.ID, monthStart(s.now()))
	if err != nil {
		return nil, err
	}
	e := &models.Expense{
		UserID:      userID,
		CategoryID:  cat.ID,
		Amount:      in.Amount,
		Description: in.Description,
		IsOverLimit: cat.Limit > 0 && total+in.Amount > cat.Limit,
	}
	if err := s.store.CreateExpense(e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateExpense persists the new field values, then recomputes the original
// and the destination category. Both recomputes run, concurrently, even when
// the category did not change; each only touches its own category's rows, so
// there is no ordering dependency. A failed recompute is returned to the
// caller but the expense update is never rolled back: flags left stale
// self-correct on the next mutation.
func (s *Service) UpdateExpense(userID, expenseID uint, in ExpenseInput) (*models.Expense, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e, err := s.store.FindExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindCategory(userID, in.CategoryID); err != nil {
		return nil, err
	}
	oldCategoryID := e.CategoryID
	e.Amount = in.Amount
	e.CategoryID = in.CategoryID
	e.Description = in.Description
	if err := s.store.SaveExpense(e); err != nil {
		return nil, err
	}
	var g errgroup.Group
	for _, categoryID := range []uint{oldCategoryID, in.CategoryID} {
		categoryID := categoryID
		g.Go(func() error {
			err := s.Recalculate(userID, categoryID)
			if errors.Is(err, models.ErrNotFound) {
				// the original category may have been deleted out from
				// under its expenses; nothing left to flag
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteExpense removes the row and nothing else. The delete path performs
// no recompute, so the remaining expenses in the category keep their current
// flags until their own next mutation.
func (s *Service) DeleteExpense(userID, expenseID uint) error {
	e, err := s.store.FindExpense(userID, expenseID)
	if err != nil {
		return err
	}
	return s.store.DeleteExpense(e.ID)
}
