package repositories

import "pustaka/internal/models"

// BookRepository defines the interface for book data access. Every read,
// update and delete is keyed by both the book id and its owner; a book
// that exists under a different owner is indistinguishable from one that
// does not exist at all.
type BookRepository interface {
	ListByOwner(ownerID string) ([]models.Book, error)
	GetByIDForOwner(id, ownerID string) (*models.Book, error)
	Create(book *models.Book) error
	Update(book *models.Book) error
	Delete(id, ownerID string) error
}
