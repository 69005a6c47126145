// Package users provides database operations for the user directory.
//
// Users are created lazily on first reference: self-registration, being named
// as the owner of an added book, or being named as a lending recipient.
package users

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/viraatdas/lendy/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Normalize trims surrounding whitespace and lower-cases a username.
// The normalized form is the sole identity of a user.
func Normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// GetOrCreate looks up a user by normalized username, inserting a new record
// if none exists. Two concurrent calls for the same new username race at the
// storage layer; the losing insert surfaces its uniqueness violation as-is.
func (r *Repository) GetOrCreate(username string) (*entities.User, error) {
	normalized := Normalize(username)
	if normalized == "" {
		return nil, fmt.Errorf("username is required")
	}

	var user entities.User
	err := r.db.Where("username = ?", normalized).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = entities.User{Username: normalized}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByUsername retrieves a user by normalized username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", Normalize(username)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
