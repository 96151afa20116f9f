package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository — общий CRUD для справочников (корпуса, аудитории,
// должности, роли, дисциплины, типы занятий, формы обучения, факультеты,
// направления). У справочников нет агрегатной логики, поэтому репозиторий
// параметризован типом модели.
type CatalogRepository[T any] struct{ db *gorm.DB }

func NewCatalogRepository[T any](db *gorm.DB) *CatalogRepository[T] {
	return &CatalogRepository[T]{db: db}
}

func (r *CatalogRepository[T]) List() ([]T, error) {
	var items []T
	err := r.db.Order("id").Find(&items).Error
	return items, err
}

func (r *CatalogRepository[T]) GetByID(id uint) (*T, error) {
	var item T
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository[T]) Create(item *T) error { return r.db.Create(item).Error }

func (r *CatalogRepository[T]) Update(item *T) error {
	return r.db.Omit(clause.Associations).Save(item).Error
}

func (r *CatalogRepository[T]) Delete(id uint) error {
	return r.db.Delete(new(T), id).Error
}

func (r *CatalogRepository[T]) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(new(T)).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// IsNotFound сообщает, что запись отсутствует в базе.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
