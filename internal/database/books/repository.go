// Package books provides database operations for the book store and the
// lending state machine.
//
// A book moves between two states: available (lent_to_name NULL) and lent out
// (lent_to_name set). Lend and Return are the only transitions.
package books

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/viraatdas/lendy/internal/database/users"
	"github.com/viraatdas/lendy/internal/entities"
)

// DefaultAuthor is used when a book is added without an author.
const DefaultAuthor = "Unknown Author"

// ErrNotFound signals that a book does not exist, or, for owner-scoped
// operations, that the requesting user does not own it. The two cases are
// deliberately indistinguishable.
var ErrNotFound = errors.New("book not found")

// Collections are the three derived book listings for a user. A book is never
// in both owned and lending; borrowed is independent of the other two.
type Collections struct {
	Owned    []entities.Book `json:"owned"`
	Lending  []entities.Book `json:"lending"`
	Borrowed []entities.Book `json:"borrowed"`
}

// Repository handles all book database operations.
type Repository struct {
	db    *gorm.DB
	users *users.Repository
}

// NewRepository creates a new books repository. The users repository is used
// for lazy user creation when owners or borrowers are first referenced.
func NewRepository(db *gorm.DB, users *users.Repository) *Repository {
	return &Repository{db: db, users: users}
}

// Add inserts a new book owned by the given user, creating the user record if
// this is its first reference. The book starts available.
func (r *Repository) Add(owner, title, author, coverURL, catalogKey string) (*entities.Book, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if author == "" {
		author = DefaultAuthor
	}

	user, err := r.users.GetOrCreate(owner)
	if err != nil {
		return nil, err
	}

	book := &entities.Book{
		ID:            uuid.NewString(),
		Title:         title,
		Author:        author,
		CoverURL:      coverURL,
		CatalogKey:    catalogKey,
		OwnerUsername: user.Username,
	}

	if err := r.db.Create(book).Error; err != nil {
		return nil, err
	}

	return book, nil
}

// GetByID retrieves a single book.
func (r *Repository) GetByID(id string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListForUser returns the owned, lending and borrowed collections for a user,
// each ordered most-recently-created first.
func (r *Repository) ListForUser(username string) (*Collections, error) {
	normalized := users.Normalize(username)

	collections := &Collections{
		Owned:    make([]entities.Book, 0),
		Lending:  make([]entities.Book, 0),
		Borrowed: make([]entities.Book, 0),
	}

	err := r.db.
		Where("owner_username = ? AND lent_to_name IS NULL", normalized).
		Order("created_at DESC").
		Find(&collections.Owned).Error
	if err != nil {
		return nil, fmt.Errorf("list owned books: %w", err)
	}

	err = r.db.
		Where("owner_username = ? AND lent_to_name IS NOT NULL", normalized).
		Order("created_at DESC").
		Find(&collections.Lending).Error
	if err != nil {
		return nil, fmt.Errorf("list lent books: %w", err)
	}

	err = r.db.
		Where("borrower_username = ?", normalized).
		Order("created_at DESC").
		Find(&collections.Borrowed).Error
	if err != nil {
		return nil, fmt.Errorf("list borrowed books: %w", err)
	}

	return collections, nil
}

// Lend marks a book as lent out to a named recipient. When the recipient is a
// registered (or newly referenced) username, the book is linked to them as
// borrower; otherwise borrower_username stays NULL.
//
// Lending an already-lent book overwrites the previous recipient. Ownership is
// not checked here; callers scope by owner.
func (r *Repository) Lend(id, lentToName, borrowerUsername string) (*entities.Book, error) {
	if lentToName == "" {
		return nil, fmt.Errorf("recipient name is required")
	}

	updates := map[string]any{
		"lent_to_name":      lentToName,
		"borrower_username": nil,
	}
	if normalized := users.Normalize(borrowerUsername); normalized != "" {
		borrower, err := r.users.GetOrCreate(normalized)
		if err != nil {
			return nil, err
		}
		updates["borrower_username"] = borrower.Username
	}

	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(id)
}

// Return transitions a book back to available by clearing both lend fields.
// Returning a book that is not lent out is a no-op in effect.
func (r *Repository) Return(id string) (*entities.Book, error) {
	result := r.db.Model(&entities.Book{}).Where("id = ?", id).Updates(map[string]any{
		"lent_to_name":      nil,
		"borrower_username": nil,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(id)
}

// Delete removes a book, but only when the requesting user owns it. A missing
// book and a non-owned book both return ErrNotFound.
func (r *Repository) Delete(id, requestingUsername string) error {
	owner := users.Normalize(requestingUsername)

	result := r.db.Where("id = ? AND owner_username = ?", id, owner).Delete(&entities.Book{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
