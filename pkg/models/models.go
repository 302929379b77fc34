package models

import (
	"time"
)

// Book is a row of the libros table.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"column:titulo;not null" json:"titulo"`
	Author          string    `gorm:"column:autor;not null" json:"autor"`
	ISBN            *string   `gorm:"column:isbn;uniqueIndex" json:"isbn"`
	PublicationYear *int      `gorm:"column:año_publicacion" json:"añoPublicacion"`
	Available       bool      `gorm:"column:disponible;not null" json:"disponible"`
	CreatedAt       time.Time `gorm:"column:fecha_creacion;autoCreateTime" json:"fechaCreacion"`
}

func (Book) TableName() string { return "libros" }

// Now is the clock for fecha_creacion. Postgres timestamps keep microseconds,
// so the value returned on create matches what a later read returns.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Overwrite copies the mutable fields of src into b. ID and CreatedAt are kept.
func (b *Book) Overwrite(src Book) {
	b.Title = src.Title
	b.Author = src.Author
	b.ISBN = src.ISBN
	b.PublicationYear = src.PublicationYear
	b.Available = src.Available
}

// Clone returns a deep copy so callers never share the nullable fields.
func (b Book) Clone() Book {
	if b.ISBN != nil {
		isbn := *b.ISBN
		b.ISBN = &isbn
	}
	if b.PublicationYear != nil {
		year := *b.PublicationYear
		b.PublicationYear = &year
	}
	return b
}
