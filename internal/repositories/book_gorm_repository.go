package repositories

import (
	"errors"
	"fmt"

	"pustaka/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{
		db: db,
	}
}

// ListByOwner retrieves all books of one owner, most recently added first.
func (r *GORMBookRepository) ListByOwner(ownerID string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Where("user_id = ?", ownerID).Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to list books for owner %s: %w", ownerID, err)
	}
	return books, nil
}

// GetByIDForOwner retrieves a single book by id, scoped to the owner in
// one query. A mismatch on either predicate is ErrNotFound.
func (r *GORMBookRepository) GetByIDForOwner(id, ownerID string) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book %s: %w", id, err)
	}
	return &book, nil
}

// Create inserts a new book.
func (r *GORMBookRepository) Create(book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// Update persists all fields of the book, including cleared (nil) optional
// columns. Save is used on purpose: a partial Updates call would skip the
// NULLs that an explicit-clear update needs to write.
func (r *GORMBookRepository) Update(book *models.Book) error {
	res := r.db.Save(book)
	if res.Error != nil {
		return fmt.Errorf("failed to update book %s: %w", book.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a book by id, scoped to the owner. The delete is
// immediate and irreversible.
func (r *GORMBookRepository) Delete(id, ownerID string) error {
	res := r.db.Delete(&models.Book{}, "id = ? AND user_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete book %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
