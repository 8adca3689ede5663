package models

import "time"

// Book represents a single entry in a user's library. Every book belongs
// to exactly one user; the owner reference is set server-side at creation
// and never exposed in responses.
type Book struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string     `json:"-" gorm:"index;type:varchar(36);not null"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Author      string     `json:"author" gorm:"type:varchar(255);not null"`
	Genre       *string    `json:"genre" gorm:"type:varchar(100)"`
	Pages       *int       `json:"pages"`
	ISBN        *string    `json:"isbn" gorm:"type:varchar(32)"`
	CoverURL    *string    `json:"coverUrl" gorm:"type:varchar(512)"`
	Summary     *string    `json:"summary" gorm:"type:text"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateBookRequest is the validated input for creating a book. Optional
// fields are pointers so that absent input stays distinguishable from an
// explicit empty value.
type CreateBookRequest struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Genre       *string `json:"genre"`
	Pages       *int    `json:"pages" validate:"omitempty,gte=0"`
	ISBN        *string `json:"isbn"`
	CoverURL    *string `json:"coverUrl"`
	Summary     *string `json:"summary"`
	PublishedAt *string `json:"publishedAt"`
}

// UpdateBookRequest is the partial-update input for a book. For every
// field: nil leaves the stored value unchanged, an empty value clears the
// column, a non-empty value overwrites it. Title and author are never
// blanked: an empty string for either is ignored.
type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Genre       *string `json:"genre"`
	Pages       *int    `json:"pages" validate:"omitempty,gte=0"`
	ISBN        *string `json:"isbn"`
	CoverURL    *string `json:"coverUrl"`
	Summary     *string `json:"summary"`
	PublishedAt *string `json:"publishedAt"`
}
