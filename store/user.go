package store

import (
	"expenzaar/models"
)

func (s *Store) CreateUser(u *models.User) error {
	if err := s.db.Create(u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Store) FindUser(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) SaveUser(u *models.User) error {
	return s.db.Save(u).Error
}

// DeleteUser removes the user and everything it owns. Expenses and categories
// are hard-deleted; the user row itself is soft-deleted.
func (s *Store) DeleteUser(id uint) error {
	if err := s.db.Where("user_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("user_id = ?", id).Delete(&models.Category{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
		return err
	}
	if err := s.db.Where("user_id = ?", id).Delete(&models.PasswordReset{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.User{}, id).Error
}
