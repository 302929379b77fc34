package store

import (
	"context"
	"strings"

	"library_catalog/pkg/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindAll(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}
	if err := s.db.WithContext(ctx).Order("id").Find(&books).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := s.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &book, nil
}

func (s *GormStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.WithStack(err)
	}
	return count > 0, nil
}

func (s *GormStore) Save(ctx context.Context, book *models.Book) error {
	var err error
	if book.ID == 0 {
		err = s.db.WithContext(ctx).Create(book).Error
	} else {
		err = s.db.WithContext(ctx).Save(book).Error
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrap(ErrDuplicateISBN, err.Error())
	}
	return errors.WithStack(err)
}

func (s *GormStore) DeleteByID(ctx context.Context, id uint) error {
	return errors.WithStack(s.db.WithContext(ctx).Delete(&models.Book{}, id).Error)
}

func (s *GormStore) FindAvailable(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}
	err := s.db.WithContext(ctx).Where("disponible = ?", true).Order("id").Find(&books).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}

func (s *GormStore) FindByTitleContaining(ctx context.Context, fragment string) ([]models.Book, error) {
	return s.findContaining(ctx, "titulo", fragment)
}

func (s *GormStore) FindByAuthorContaining(ctx context.Context, fragment string) ([]models.Book, error) {
	return s.findContaining(ctx, "autor", fragment)
}

// findContaining matches fragment literally; LIKE wildcards in it are escaped.
// Case folding is the database's LOWER: postgres folds Unicode, sqlite only
// ASCII, so "MÁRQUEZ" finds "Márquez" on postgres but not on sqlite.
func (s *GormStore) findContaining(ctx context.Context, column, fragment string) ([]models.Book, error) {
	books := []models.Book{}
	pattern := "%" + likeEscaper.Replace(fragment) + "%"
	err := s.db.WithContext(ctx).
		Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '\\'", pattern).
		Order("id").
		Find(&books).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(sqlDB.PingContext(ctx))
}
