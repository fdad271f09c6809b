package store

import (
	"expenzaar/models"
)

func (s *Store) FindCategory(userID, categoryID uint) (*models.Category, error) {
	var c models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *Store) FindCategoryByName(userID uint, name string) (*models.Category, error) {
	var c models.Category
	if err := s.db.Where("user_id = ? AND name = ?", userID, name).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(c *models.Category) error {
	if err := s.db.Create(c).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the optimistic name check
			return models.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (s *Store) SaveCategory(c *models.Category) error {
	if err := s.db.Save(c).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (s *Store) DeleteCategory(categoryID uint) error {
	// Expenses keep their category_id; dangling references are permitted.
	return s.db.Delete(&models.Category{}, categoryID).Error
}

func (s *Store) ListCategories(userID uint) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name asc").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
