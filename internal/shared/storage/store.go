package storage

import (
	"context"

	"gorm.io/gorm"
)

// Scope narrows a query. Scopes compose left to right and ride gorm's
// Scopes mechanism, so soft-deleted rows stay filtered out implicitly for
// every entity that carries a gorm.DeletedAt column.
type Scope = func(*gorm.DB) *gorm.DB

// Where builds a scope from a raw condition.
func Where(query string, args ...any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// OrderBy builds an ordering scope.
func OrderBy(expr string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(expr)
	}
}

// Store is the shared persistence accessor. One generic type replaces the
// per-entity repository copies: feature repositories embed a Store for the
// uniform operations and keep only their bespoke queries.
type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) *Store[T] {
	return &Store[T]{db: db}
}

// WithTx rebinds the store to a transaction handle.
func (s *Store[T]) WithTx(tx *gorm.DB) *Store[T] {
	return &Store[T]{db: tx}
}

func (s *Store[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var out T
	err := s.db.WithContext(ctx).First(&out, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store[T]) Find(ctx context.Context, scopes ...Scope) ([]T, error) {
	var out []T
	err := s.db.WithContext(ctx).Scopes(scopes...).Find(&out).Error
	return out, err
}

// First returns the first row matching the scopes, or gorm.ErrRecordNotFound.
func (s *Store[T]) First(ctx context.Context, scopes ...Scope) (*T, error) {
	var out T
	err := s.db.WithContext(ctx).Scopes(scopes...).First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store[T]) Insert(ctx context.Context, v *T) error {
	return s.db.WithContext(ctx).Create(v).Error
}

// Replace writes the full record back.
func (s *Store[T]) Replace(ctx context.Context, v *T) error {
	return s.db.WithContext(ctx).Save(v).Error
}

// SoftDelete marks the row deleted. For entities with gorm.DeletedAt this
// sets the flag; it never removes the row.
func (s *Store[T]) SoftDelete(ctx context.Context, id string) error {
	var model T
	return s.db.WithContext(ctx).Delete(&model, "id = ?", id).Error
}
