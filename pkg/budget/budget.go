// Package budget implements the category limit reconciliation rules: the
// month-to-date spend recomputation that keeps the cached over-limit flag on
// expenses consistent across expense mutations, and the read-side projections
// (remaining budget per category, per-month spend per expense listing).
package budget

import (
	"time"

	"expenzaar/models"
)

// Store is the persistence contract the engine needs. The GORM store
// satisfies it; tests use an in-memory fake. Every lookup is scoped by the
// owning user id; that filter is the sole authorization mechanism.
type Store interface {
	FindCategory(userID, categoryID uint) (*models.Category, error)
	FindCategoryByName(userID uint, name string) (*models.Category, error)
	CreateCategory(c *models.Category) error
	SaveCategory(c *models.Category) error
	DeleteCategory(categoryID uint) error
	ListCategories(userID uint) ([]models.Category, error)

	FindExpense(userID, expenseID uint) (*models.Expense, error)
	CreateExpense(e *models.Expense) error
	SaveExpense(e *models.Expense) error
	DeleteExpense(expenseID uint) error
	ListExpenses(userID uint) ([]models.Expense, error)
	SumExpenseAmounts(userID, categoryID uint, from time.Time) (float64, error)
	SetOverLimitForCategory(categoryID uint, over bool) error
}

// FlagPolicy persists an over-limit verdict onto a category's expenses.
type FlagPolicy func(st Store, categoryID uint, over bool) error

// FlagAllExpenses is the default policy: one bulk write applying the current
// month's verdict to every expense in the category, regardless of which month
// each expense belongs to. This matches the long-standing persisted behavior;
// a month-scoped policy can be swapped in via WithFlagPolicy without touching
// the mutation paths.
func FlagAllExpenses(st Store, categoryID uint, over bool) error {
	return st.SetOverLimitForCategory(categoryID, over)
}

// ValidationError marks a rejected input field. Detected before any write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Service carries the budget engine, the expense mutation coordinator and
// the category/expense read projections.
type Service struct {
	store Store
	flag  FlagPolicy
	now   func() time.Time
}

type Option func(*Service)

func WithFlagPolicy(p FlagPolicy) Option {
	return func(s *Service) { s.flag = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(st Store, opts ...Option) *Service {
	s := &Service{store: st, flag: FlagAllExpenses, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// monthStart returns the first instant of the calendar month containing t,
// in t's location. The window is open-ended: everything from here to now
// counts as month-to-date.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Recalculate recomputes the category's month-to-date spend from storage and
// persists the derived over-limit verdict through the flag policy. A zero
// limit means "no limit enforced", never "always over"; spend exactly equal
// to the limit is not over. The aggregate is always re-read fresh, so the
// call is idempotent and safe to repeat after races.
func (s *Service) Recalculate(userID, categoryID uint) error {
	cat, err := s.store.FindCategory(userID, categoryID)
	if err != nil {
		return err
	}
	total, err := s.store.SumExpenseAmounts(userID, categoryID, monthStart(s.now()))
	if err != nil {
		return err
	}
	over := cat.Limit > 0 && total > cat.Limit
	return s.flag(s.store, categoryID, over)
}
