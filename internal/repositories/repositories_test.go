package repositories_test

import (
	"testing"
	"time"

	"pustaka/internal/models"
	"pustaka/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockUserRepository_UniqueEmail(t *testing.T) {
	repo := repositories.NewMockUserRepository()

	require.NoError(t, repo.Create(&models.User{Email: "alice@example.com"}))

	// The email collides like the database unique index would.
	err := repo.Create(&models.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestMockUserRepository_Lookups(t *testing.T) {
	repo := repositories.NewMockUserRepository()

	user := &models.User{Email: "alice@example.com"}
	require.NoError(t, repo.Create(user))
	require.NotEmpty(t, user.ID)

	byEmail, err := repo.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	_, err = repo.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repo.GetByID("no-such-id")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMockBookRepository_OwnerScoping(t *testing.T) {
	repo := repositories.NewMockBookRepository()

	book := &models.Book{UserID: "alice", Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, repo.Create(book))

	// The owner sees the book; anyone else gets not-found.
	got, err := repo.GetByIDForOwner(book.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)

	_, err = repo.GetByIDForOwner(book.ID, "bob")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Delete(book.ID, "bob")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, repo.Delete(book.ID, "alice"))
	_, err = repo.GetByIDForOwner(book.ID, "alice")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMockBookRepository_ListByOwnerOrder(t *testing.T) {
	repo := repositories.NewMockBookRepository()

	now := time.Now()
	require.NoError(t, repo.Create(&models.Book{UserID: "alice", Title: "Old", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, repo.Create(&models.Book{UserID: "alice", Title: "New", CreatedAt: now}))
	require.NoError(t, repo.Create(&models.Book{UserID: "bob", Title: "Other", CreatedAt: now}))

	books, err := repo.ListByOwner("alice")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "New", books[0].Title)
	assert.Equal(t, "Old", books[1].Title)
}

func TestMockBookRepository_Update(t *testing.T) {
	repo := repositories.NewMockBookRepository()

	book := &models.Book{UserID: "alice", Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, repo.Create(book))

	book.Title = "Dune Messiah"
	require.NoError(t, repo.Update(book))

	got, err := repo.GetByIDForOwner(book.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)

	err = repo.Update(&models.Book{ID: "no-such-id"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
