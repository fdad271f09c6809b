package store

import (
	"errors"
	"log"
	"strings"

	"expenzaar/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store wraps the single long-lived database handle. Open it once at process
// start and inject it into everything that needs persistence.
type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// AutoMigrate migrates models individually so a failure on one doesn't block
// the others. Permission errors are logged and ignored.
func (s *Store) AutoMigrate() {
	if err := s.db.AutoMigrate(&models.User{}); err != nil {
		log.Printf("migration warning (users): %v", err)
	}
	if err := s.db.AutoMigrate(&models.Category{}); err != nil {
		log.Printf("migration warning (categories): %v", err)
	}
	if err := s.db.AutoMigrate(&models.Expense{}); err != nil {
		log.Printf("migration warning (expenses): %v", err)
	}
	if err := s.db.AutoMigrate(&models.RefreshToken{}); err != nil {
		log.Printf("migration warning (refresh_tokens): %v", err)
	}
	if err := s.db.AutoMigrate(&models.PasswordReset{}); err != nil {
		log.Printf("migration warning (password_resets): %v", err)
	}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// notFound maps gorm's sentinel onto the domain one so callers never depend
// on the ORM.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
