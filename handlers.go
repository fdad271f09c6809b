package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"expenzaar/models"
	"expenzaar/pkg/budget"

	"github.com/gin-gonic/gin"
)

func setupRoutes(r *gin.Engine, a *app) {
	r.POST("/register", a.registerHandler)
	r.POST("/login", a.loginHandler)
	r.POST("/refresh", a.refreshHandler)
	r.POST("/revoke_refresh", a.revokeRefreshHandler)
	r.POST("/password/forgot", a.forgotPasswordHandler)
	r.POST("/password/reset", a.resetPasswordHandler)

	authGroup := r.Group("")
	authGroup.Use(a.authMiddleware())
	authGroup.GET("/me", a.meHandler)
	authGroup.PUT("/me", a.updateMeHandler)
	authGroup.DELETE("/me", a.deleteMeHandler)
	authGroup.POST("/categories", a.createCategoryHandler)
	authGroup.GET("/categories", a.listCategoriesHandler)
	authGroup.PUT("/categories/:id", a.updateCategoryHandler)
	authGroup.DELETE("/categories/:id", a.deleteCategoryHandler)
	authGroup.POST("/expenses", a.createExpenseHandler)
	authGroup.GET("/expenses", a.listExpensesHandler)
	authGroup.PUT("/expenses/:id", a.updateExpenseHandler)
	authGroup.DELETE("/expenses/:id", a.deleteExpenseHandler)
}

// writeError maps domain errors onto HTTP statuses. Missing rows and rows
// owned by someone else produce the same 404 body; unexpected storage errors
// are logged and surfaced as a generic failure.
func (a *app) writeError(c *gin.Context, err error) {
	var ve *budget.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrDuplicateName), errors.Is(err, models.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("storage error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (a *app) createCategoryHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name  string  `json:"name" binding:"required"`
		Limit float64 `json:"limit"`
		Icon  string  `json:"icon"`
		Color string  `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := a.budget.CreateCategory(user.ID, budget.CategoryInput{
		Name:  req.Name,
		Limit: req.Limit,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// listCategoriesHandler returns the user's categories ordered by name with
// month-to-date spend and remaining budget.
func (a *app) listCategoriesHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	views, err := a.budget.ListCategories(user.ID)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (a *app) updateCategoryHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Name  *string  `json:"name"`
		Limit *float64 `json:"limit"`
		Icon  *string  `json:"icon"`
		Color *string  `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := a.budget.UpdateCategory(user.ID, id, budget.CategoryUpdate{
		Name:  req.Name,
		Limit: req.Limit,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// deleteCategoryHandler deletes the category and returns the refreshed
// listing so the client can re-render without a second round trip.
func (a *app) deleteCategoryHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := a.budget.DeleteCategory(user.ID, id); err != nil {
		a.writeError(c, err)
		return
	}
	views, err := a.budget.ListCategories(user.ID)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted", "categories": views})
}

func (a *app) createExpenseHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Amount      float64 `json:"amount" binding:"required"`
		CategoryID  uint    `json:"category_id" binding:"required"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := a.budget.CreateExpense(user.ID, budget.ExpenseInput{
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// listExpensesHandler returns the user's expenses newest-first with the
// display-time per-month spend totals and over-limit flags.
func (a *app) listExpensesHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	views, err := a.budget.ListExpenses(user.ID)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (a *app) updateExpenseHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Amount      float64 `json:"amount" binding:"required"`
		CategoryID  uint    `json:"category_id" binding:"required"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := a.budget.UpdateExpense(user.ID, id, budget.ExpenseInput{
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (a *app) deleteExpenseHandler(c *gin.Context) {
	user, ok := a.userFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := a.budget.DeleteExpense(user.ID, id); err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}
