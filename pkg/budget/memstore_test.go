package budget

import (
	"sort"
	"sync"
	"time"

	"expenzaar/models"
)

// memStore is an in-memory Store for tests. It enforces the same
// owning-user scoping and per-user name uniqueness as the real store, and is
// mutex-guarded because the update path recomputes two categories
// concurrently.
type memStore struct {
	mu     sync.Mutex
	nextID uint
	cats   map[uint]*models.Category
	exps   map[uint]*models.Expense
	now    func() time.Time
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{
		cats: make(map[uint]*models.Category),
		exps: make(map[uint]*models.Expense),
		now:  now,
	}
}

func (m *memStore) FindCategory(userID, categoryID uint) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cats[categoryID]
	if !ok || c.UserID != userID {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) FindCategoryByName(userID uint, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cats {
		if c.UserID == userID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memStore) CreateCategory(c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.cats {
		if existing.UserID == c.UserID && existing.Name == c.Name {
			return models.ErrDuplicateName
		}
	}
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = m.now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.cats[c.ID] = &cp
	return nil
}

func (m *memStore) SaveCategory(c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.cats {
		if existing.ID != c.ID && existing.UserID == c.UserID && existing.Name == c.Name {
			return models.ErrDuplicateName
		}
	}
	c.UpdatedAt = m.now()
	cp := *c
	m.cats[c.ID] = &cp
	return nil
}

func (m *memStore) DeleteCategory(categoryID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cats, categoryID)
	return nil
}

func (m *memStore) ListCategories(userID uint) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var cats []models.Category
	for _, c := range m.cats {
		if c.UserID == userID {
			cats = append(cats, *c)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
	return cats, nil
}

func (m *memStore) FindExpense(userID, expenseID uint) (*models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exps[expenseID]
	if !ok || e.UserID != userID {
		return nil, models.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) CreateExpense(e *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	e.CreatedAt = m.now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	m.exps[e.ID] = &cp
	return nil
}

// putExpense inserts a row as-is, keeping the caller's CreatedAt. Used to
// seed historical months.
func (m *memStore) putExpense(e models.Expense) *models.Expense {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	cp := e
	m.exps[e.ID] = &cp
	return &cp
}

func (m *memStore) SaveExpense(e *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.exps[e.ID]
	if !ok {
		return models.ErrNotFound
	}
	e.CreatedAt = stored.CreatedAt
	e.UpdatedAt = m.now()
	cp := *e
	m.exps[e.ID] = &cp
	return nil
}

func (m *memStore) DeleteExpense(expenseID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.exps, expenseID)
	return nil
}

func (m *memStore) ListExpenses(userID uint) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var exps []models.Expense
	for _, e := range m.exps {
		if e.UserID == userID {
			exps = append(exps, *e)
		}
	}
	sort.Slice(exps, func(i, j int) bool {
		if !exps[i].CreatedAt.Equal(exps[j].CreatedAt) {
			return exps[i].CreatedAt.After(exps[j].CreatedAt)
		}
		return exps[i].ID > exps[j].ID
	})
	return exps, nil
}

func (m *memStore) SumExpenseAmounts(userID, categoryID uint, from time.Time) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, e := range m.exps {
		if e.UserID == userID && e.CategoryID == categoryID && !e.CreatedAt.Before(from) {
			total += e.Amount
		}
	}
	return total, nil
}

func (m *memStore) SetOverLimitForCategory(categoryID uint, over bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.exps {
		if e.CategoryID == categoryID {
			e.IsOverLimit = over
		}
	}
	return nil
}

// flagOf reads an expense's persisted flag straight from storage.
func (m *memStore) flagOf(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exps[id].IsOverLimit
}

// hasExpense reports whether the row still exists, any owner.
func (m *memStore) hasExpense(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.exps[id]
	return ok
}
