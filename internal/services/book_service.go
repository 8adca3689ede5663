package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pustaka/internal/models"
	"pustaka/internal/repositories"
	"pustaka/pkg/events"
)

var (
	// ErrBookNotFound covers both a missing id and a book owned by someone
	// else. The two cases are deliberately indistinguishable so that a
	// non-owner cannot learn whether an id exists.
	ErrBookNotFound = errors.New("book not found")
	// ErrInvalidDate means publishedAt could not be parsed.
	ErrInvalidDate = errors.New("publishedAt must be an RFC3339 timestamp or a YYYY-MM-DD date")
)

// BookService handles owner-scoped CRUD over books. Lifecycle events are
// published best-effort after each successful write.
type BookService struct {
	books     repositories.BookRepository
	publisher events.Publisher
}

// NewBookService creates a new BookService.
func NewBookService(books repositories.BookRepository, publisher events.Publisher) *BookService {
	return &BookService{
		books:     books,
		publisher: publisher,
	}
}

// List returns all of the owner's books, most recently added first.
func (s *BookService) List(ownerID string) ([]models.Book, error) {
	return s.books.ListByOwner(ownerID)
}

// Get returns a single book if it belongs to the owner.
func (s *BookService) Get(ownerID, id string) (*models.Book, error) {
	book, err := s.books.GetByIDForOwner(id, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// Create stores a new book owned by ownerID. The owner always comes from
// the authenticated identity, never from the request body.
func (s *BookService) Create(ownerID string, req *models.CreateBookRequest) (*models.Book, error) {
	publishedAt, err := parsePublishedAt(req.PublishedAt)
	if err != nil {
		return nil, err
	}

	book := &models.Book{
		UserID:      ownerID,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       optionalString(req.Genre),
		Pages:       optionalInt(req.Pages),
		ISBN:        optionalString(req.ISBN),
		CoverURL:    optionalString(req.CoverURL),
		Summary:     optionalString(req.Summary),
		PublishedAt: publishedAt,
	}
	if err := s.books.Create(book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.emit("book.created", book)
	return book, nil
}

// Update applies a partial update to the owner's book. Per field: nil
// leaves the stored value unchanged, an empty value clears the column,
// a non-empty value overwrites it. Title and author are never blanked.
func (s *BookService) Update(ownerID, id string, req *models.UpdateBookRequest) (*models.Book, error) {
	book, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		book.Title = *req.Title
	}
	if req.Author != nil && *req.Author != "" {
		book.Author = *req.Author
	}
	if req.Genre != nil {
		book.Genre = optionalString(req.Genre)
	}
	if req.Pages != nil {
		book.Pages = optionalInt(req.Pages)
	}
	if req.ISBN != nil {
		book.ISBN = optionalString(req.ISBN)
	}
	if req.CoverURL != nil {
		book.CoverURL = optionalString(req.CoverURL)
	}
	if req.Summary != nil {
		book.Summary = optionalString(req.Summary)
	}
	if req.PublishedAt != nil {
		publishedAt, err := parsePublishedAt(req.PublishedAt)
		if err != nil {
			return nil, err
		}
		book.PublishedAt = publishedAt
	}

	if err := s.books.Update(book); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	s.emit("book.updated", book)
	return book, nil
}

// Delete removes the owner's book. The deletion is irreversible.
func (s *BookService) Delete(ownerID, id string) error {
	book, err := s.Get(ownerID, id)
	if err != nil {
		return err
	}

	if err := s.books.Delete(id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.emit("book.deleted", book)
	return nil
}

// emit publishes a lifecycle event. Publishing is best-effort: a failure
// is logged and never surfaced to the API client.
func (s *BookService) emit(event string, book *models.Book) {
	err := s.publisher.Publish(event, map[string]interface{}{
		"book_id": book.ID,
		"user_id": book.UserID,
		"title":   book.Title,
		"at":      time.Now().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("failed to publish %s event for book %s: %v", event, book.ID, err)
	}
}

// optionalString maps an empty or absent input string to a NULL column.
func optionalString(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// optionalInt maps an absent or zero input to a NULL column.
func optionalInt(n *int) *int {
	if n == nil || *n == 0 {
		return nil
	}
	v := *n
	return &v
}

// parsePublishedAt parses the wire date. An empty string clears the value;
// accepted formats are RFC3339 and plain YYYY-MM-DD.
func parsePublishedAt(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", *s); err == nil {
		return &t, nil
	}
	return nil, ErrInvalidDate
}
