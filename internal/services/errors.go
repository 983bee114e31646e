package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Sentinels matched by the typed errors through errors.Is
var (
	ErrValidation  = errors.New("dados inválidos")
	ErrDuplicate   = errors.New("registro duplicado")
	ErrNotFound    = errors.New("registro não encontrado")
	ErrForbidden   = errors.New("acesso negado")
	ErrAuthFailure = errors.New("usuário ou senha inválidos")

	// ErrSessionEnded rejects a token that was revoked or whose user no longer exists
	ErrSessionEnded = errors.New("sessão encerrada")
)

// ValidationError lists every problem found in the input
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// newValidationError returns nil when there are no problems
func newValidationError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// DuplicateError reports a unique constraint violation
type DuplicateError struct {
	Entity string
	Value  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q já existe", e.Entity, e.Value)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// NotFoundError reports a reference to a missing identifier
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d não encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ForbiddenError reports a failed role check
type ForbiddenError struct {
	Role string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("acesso restrito ao perfil %s", e.Role)
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// notFound converts gorm.ErrRecordNotFound into a NotFoundError
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
