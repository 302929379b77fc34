package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"library_catalog/pkg/models"
)

// MemoryStore keeps books in a map. It enforces the same id and isbn rules
// as the SQL table.
type MemoryStore struct {
	books  map[uint]models.Book
	nextID uint
	now    func() time.Time
	mu     sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:  make(map[uint]models.Book),
		nextID: 1,
		now:    models.Now,
	}
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]models.Book, error) {
	return s.filter(func(models.Book) bool { return true }), nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id uint) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := book.Clone()
	return &clone, nil
}

func (s *MemoryStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.books[id]
	return ok, nil
}

func (s *MemoryStore) Save(ctx context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if book.ISBN != nil {
		for id, other := range s.books {
			if id != book.ID && other.ISBN != nil && *other.ISBN == *book.ISBN {
				return ErrDuplicateISBN
			}
		}
	}

	if book.ID == 0 {
		book.ID = s.nextID
		s.nextID++
		if book.CreatedAt.IsZero() {
			book.CreatedAt = s.now()
		}
	} else if book.ID >= s.nextID {
		s.nextID = book.ID + 1
	}

	s.books[book.ID] = book.Clone()
	return nil
}

func (s *MemoryStore) DeleteByID(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.books, id)
	return nil
}

func (s *MemoryStore) FindAvailable(ctx context.Context) ([]models.Book, error) {
	return s.filter(func(b models.Book) bool { return b.Available }), nil
}

func (s *MemoryStore) FindByTitleContaining(ctx context.Context, fragment string) ([]models.Book, error) {
	fragment = strings.ToLower(fragment)
	return s.filter(func(b models.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), fragment)
	}), nil
}

func (s *MemoryStore) FindByAuthorContaining(ctx context.Context, fragment string) ([]models.Book, error) {
	fragment = strings.ToLower(fragment)
	return s.filter(func(b models.Book) bool {
		return strings.Contains(strings.ToLower(b.Author), fragment)
	}), nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) filter(keep func(models.Book) bool) []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Book, 0, len(s.books))
	for _, book := range s.books {
		if keep(book) {
			result = append(result, book.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
