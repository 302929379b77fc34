// Package store is the data-access layer for book records.
package store

import (
	"context"

	"library_catalog/pkg/models"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("book not found")
	ErrDuplicateISBN = errors.New("isbn already exists")
)

// BookStore is everything the HTTP layer needs from persistence.
//
// Save inserts the book when its ID is zero and otherwise overwrites the
// stored row with the same ID. On insert the store assigns ID and CreatedAt
// and writes them back into the argument.
type BookStore interface {
	FindAll(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id uint) (*models.Book, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Save(ctx context.Context, book *models.Book) error
	DeleteByID(ctx context.Context, id uint) error
	FindAvailable(ctx context.Context) ([]models.Book, error)
	FindByTitleContaining(ctx context.Context, fragment string) ([]models.Book, error)
	FindByAuthorContaining(ctx context.Context, fragment string) ([]models.Book, error)
}
