package store

import (
	"expenzaar/models"
)

func (s *Store) CreateRefreshToken(rt *models.RefreshToken) error {
	return s.db.Create(rt).Error
}

func (s *Store) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.Where("token_hash = ?", hash).First(&rt).Error; err != nil {
		return nil, notFound(err)
	}
	return &rt, nil
}

func (s *Store) SaveRefreshToken(rt *models.RefreshToken) error {
	return s.db.Save(rt).Error
}

func (s *Store) CreatePasswordReset(pr *models.PasswordReset) error {
	return s.db.Create(pr).Error
}

// FindActivePasswordReset returns the newest unused reset row matching the
// code hash; expiry is checked by the caller.
func (s *Store) FindActivePasswordReset(userID uint, codeHash string) (*models.PasswordReset, error) {
	var pr models.PasswordReset
	err := s.db.Where("user_id = ? AND code_hash = ? AND used = ?", userID, codeHash, false).
		Order("id desc").First(&pr).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &pr, nil
}

func (s *Store) SavePasswordReset(pr *models.PasswordReset) error {
	return s.db.Save(pr).Error
}
