package apperrors

import (
	"errors"
	"fmt"
)

// Kind классифицирует ошибки предметной области. Клиент ветвится по этому
// полю в теле ответа, а не только по HTTP-статусу.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindConsistency Kind = "consistency"
	KindRange       Kind = "range"
)

// ValidationError — отсутствующее или некорректное обязательное поле одной сущности.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// NotFoundError — ссылка на несуществующую сущность.
type NotFoundError struct {
	Entity string
	ID     uint
}

func NewNotFoundError(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// ConsistencyError — нарушение межсущностного инварианта. Отличается от
// ValidationError тем, что для обнаружения требуется соединение нескольких
// сущностей (группа вне учебного плана, студент вне групп занятия).
type ConsistencyError struct {
	Message string
}

func NewConsistencyError(format string, args ...any) *ConsistencyError {
	return &ConsistencyError{Message: fmt.Sprintf(format, args...)}
}

func (e *ConsistencyError) Error() string {
	return "consistency: " + e.Message
}

// RangeError — некорректный временной диапазон в отчетном запросе.
type RangeError struct {
	Message string
}

func NewRangeError(format string, args ...any) *RangeError {
	return &RangeError{Message: fmt.Sprintf(format, args...)}
}

func (e *RangeError) Error() string {
	return "range: " + e.Message
}

// KindOf возвращает классификацию ошибки или пустую строку для
// инфраструктурных ошибок, которые наружу не расшифровываются.
func KindOf(err error) Kind {
	var ve *ValidationError
	var nf *NotFoundError
	var ce *ConsistencyError
	var re *RangeError
	switch {
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &nf):
		return KindNotFound
	case errors.As(err, &ce):
		return KindConsistency
	case errors.As(err, &re):
		return KindRange
	}
	return ""
}
