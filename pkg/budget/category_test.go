package budget

import (
	"testing"

	"expenzaar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryNameUniquePerUser(t *testing.T) {
	s, _ := newTestService()
	mustCategory(t, s, 1, "Food", 100)

	_, err := s.CreateCategory(1, CategoryInput{Name: "Food"})
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	// the same name is fine for a different user
	_, err = s.CreateCategory(2, CategoryInput{Name: "Food"})
	assert.NoError(t, err)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	s, _ := newTestService()
	var ve *ValidationError
	_, err := s.CreateCategory(1, CategoryInput{Name: "   "})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestUpdateCategoryPartial(t *testing.T) {
	s, _ := newTestService()
	cat := mustCategory(t, s, 1, "Food", 100)

	limit := 250.0
	updated, err := s.UpdateCategory(1, cat.ID, CategoryUpdate{Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, "Food", updated.Name, "untouched fields survive a partial update")
	assert.Equal(t, 250.0, updated.Limit)

	icon := "cart"
	color := "#ef4444"
	updated, err = s.UpdateCategory(1, cat.ID, CategoryUpdate{Icon: &icon, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "cart", updated.Icon)
	assert.Equal(t, "#ef4444", updated.Color)
	assert.Equal(t, 250.0, updated.Limit)
}

func TestUpdateCategoryRename(t *testing.T) {
	s, _ := newTestService()
	cat := mustCategory(t, s, 1, "Food", 100)
	mustCategory(t, s, 1, "Travel", 100)

	taken := "Travel"
	_, err := s.UpdateCategory(1, cat.ID, CategoryUpdate{Name: &taken})
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	// renaming to its own current name is not a conflict
	same := "Food"
	_, err = s.UpdateCategory(1, cat.ID, CategoryUpdate{Name: &same})
	assert.NoError(t, err)

	free := "Groceries"
	updated, err := s.UpdateCategory(1, cat.ID, CategoryUpdate{Name: &free})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Name)
}

func TestCategoryOwnershipIsolation(t *testing.T) {
	s, _ := newTestService()
	cat := mustCategory(t, s, 1, "Food", 100)

	_, errForeign := s.UpdateCategory(2, cat.ID, CategoryUpdate{})
	_, errMissing := s.UpdateCategory(2, 999, CategoryUpdate{})
	assert.ErrorIs(t, errForeign, models.ErrNotFound)
	assert.Equal(t, errMissing, errForeign)

	assert.ErrorIs(t, s.DeleteCategory(2, cat.ID), models.ErrNotFound)
}

func TestDeleteCategoryLeavesExpensesDangling(t *testing.T) {
	s, st := newTestService()
	cat := mustCategory(t, s, 1, "Food", 100)
	e := mustExpense(t, s, 1, cat.ID, 10)

	require.NoError(t, s.DeleteCategory(1, cat.ID))
	assert.True(t, st.hasExpense(e.ID), "deleting a category never deletes its expenses")

	views, err := s.ListExpenses(1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].Category, "the missing join is handled, not an error")
	assert.False(t, views[0].IsOverLimit)
}

func TestListCategoriesRemaining(t *testing.T) {
	s, _ := newTestService()
	cat := mustCategory(t, s, 1, "Food", 300)
	mustExpense(t, s, 1, cat.ID, 120)

	views, err := s.ListCategories(1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 120.0, views[0].Spent)
	assert.Equal(t, 180.0, views[0].Remaining)

	mustExpense(t, s, 1, cat.ID, 230) // month-to-date 350
	views, err = s.ListCategories(1)
	require.NoError(t, err)
	assert.Equal(t, -50.0, views[0].Remaining, "remaining goes negative, never clamped")
}

func TestListCategoriesScopesSpendToCurrentMonth(t *testing.T) {
	s, st := newTestService()
	cat := mustCategory(t, s, 1, "Food", 300)
	st.putExpense(models.Expense{
		UserID:     1,
		CategoryID: cat.ID,
		Amount:     1000,
		CreatedAt:  testNow.AddDate(0, -1, 0),
	})
	mustExpense(t, s, 1, cat.ID, 120)

	views, err := s.ListCategories(1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 120.0, views[0].Spent, "last month's spend never counts")
	assert.Equal(t, 180.0, views[0].Remaining)
}

func TestListCategoriesOrderedByName(t *testing.T) {
	s, _ := newTestService()
	mustCategory(t, s, 1, "Travel", 0)
	mustCategory(t, s, 1, "Food", 0)
	mustCategory(t, s, 1, "Bills", 0)
	mustCategory(t, s, 2, "Aaa", 0) // another user's category stays invisible

	views, err := s.ListCategories(1)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "Bills", views[0].Name)
	assert.Equal(t, "Food", views[1].Name)
	assert.Equal(t, "Travel", views[2].Name)
}
