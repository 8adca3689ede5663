package repositories

import (
	"sort"
	"sync"

	"pustaka/internal/models"

	"github.com/google/uuid"
)

// MockBookRepository is an in-memory implementation of BookRepository.
type MockBookRepository struct {
	books map[string]models.Book
	mu    sync.RWMutex
}

// NewMockBookRepository creates a new instance of MockBookRepository.
func NewMockBookRepository() *MockBookRepository {
	return &MockBookRepository{
		books: make(map[string]models.Book),
	}
}

// ListByOwner returns the owner's books, most recently added first.
func (r *MockBookRepository) ListByOwner(ownerID string) ([]models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookList := make([]models.Book, 0)
	for _, b := range r.books {
		if b.UserID == ownerID {
			bookList = append(bookList, b)
		}
	}
	sort.Slice(bookList, func(i, j int) bool {
		return bookList[i].CreatedAt.After(bookList[j].CreatedAt)
	})
	return bookList, nil
}

// GetByIDForOwner returns a book by id if it belongs to the owner.
func (r *MockBookRepository) GetByIDForOwner(id, ownerID string) (*models.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.books[id]
	if !ok || book.UserID != ownerID {
		return nil, ErrNotFound
	}
	return &book, nil
}

// Create adds a new book.
func (r *MockBookRepository) Create(book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	r.books[book.ID] = *book
	return nil
}

// Update modifies an existing book.
func (r *MockBookRepository) Update(book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.books[book.ID]
	if !ok {
		return ErrNotFound
	}
	r.books[book.ID] = *book
	return nil
}

// Delete removes a book by id if it belongs to the owner.
func (r *MockBookRepository) Delete(id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok || book.UserID != ownerID {
		return ErrNotFound
	}
	delete(r.books, id)
	return nil
}
