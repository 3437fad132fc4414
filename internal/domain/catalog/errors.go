package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrDuplicateSlug     = errors.New("duplicate slug")
)

// ValidationError carries one message per failing field.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// CategoryInUseError is returned when a category still has equipment.
type CategoryInUseError struct {
	Name  string
	Count int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("cannot delete category '%s' because it is associated with %d equipment item(s)", e.Name, e.Count)
}
