// Package record provides transactional CRUD operations over a single gorm model.
package record

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrNilRecord is returned when a nil record is passed to a mutation.
	ErrNilRecord = errors.New("record is nil")
)

// Store is the CRUD store for model T.
type Store[T any] struct {
	db    *gorm.DB
	order string
}

// New returns a store for T listing records in the given order, e.g. "created_at DESC".
func New[T any](db *gorm.DB, order string) *Store[T] {
	if order == "" {
		order = "id DESC"
	}

	return &Store[T]{db: db, order: order}
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Count returns the number of records.
func (s *Store[T]) Count(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, ErrDBNil
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

// List returns the requested page. Out of range pages are clamped.
func (s *Store[T]) List(ctx context.Context, page, pageSize int) (Page[T], error) {
	if s.db == nil {
		return Page[T]{}, ErrDBNil
	}

	if pageSize < 1 {
		pageSize = 1
	}

	total, err := s.Count(ctx)
	if err != nil {
		return Page[T]{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}

	if page > totalPages {
		page = totalPages
	}

	items := make([]T, 0, pageSize)

	err = s.db.WithContext(ctx).
		Order(s.order).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error
	if err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// Get retrieves a record by its ID.
func (s *Store[T]) Get(ctx context.Context, id uint64) (*T, error) {
	if s.db == nil {
		return nil, ErrDBNil
	}

	rec := new(T)

	if err := s.db.WithContext(ctx).First(rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return rec, nil
}

// Create inserts the record in its own transaction.
func (s *Store[T]) Create(ctx context.Context, rec *T) error {
	return s.transaction(ctx, rec, func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
}

// Update saves all fields of the record in its own transaction.
func (s *Store[T]) Update(ctx context.Context, rec *T) error {
	return s.transaction(ctx, rec, func(tx *gorm.DB) error {
		return tx.Save(rec).Error
	})
}

// Delete removes the record with the given ID.
func (s *Store[T]) Delete(ctx context.Context, id uint64) error {
	if s.db == nil {
		return ErrDBNil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func (s *Store[T]) transaction(ctx context.Context, rec *T, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return ErrDBNil
	}

	if rec == nil {
		return ErrNilRecord
	}

	return s.db.WithContext(ctx).Transaction(fn)
}
