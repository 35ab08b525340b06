package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ciby9833/xspace-sub002/model"
)

// The error kinds the core can fail with. Handlers branch on these with
// errors.Is / errors.As and map each kind to a stable response code, so
// callers never parse free text.
var (
	ErrNotFound         = errors.New("record not found")
	ErrPermissionDenied = errors.New("insufficient permission")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SlotConflictError carries the overlapping orders so the caller can pick
// another room or time.
type SlotConflictError struct {
	Conflicts []model.Order
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("room slot conflicts with %d existing order(s)", len(e.Conflicts))
}

// DuplicateSequenceError lists the player_order values that collide.
type DuplicateSequenceError struct {
	Duplicates []int
}

func (e *DuplicateSequenceError) Error() string {
	parts := make([]string, len(e.Duplicates))
	for i, d := range e.Duplicates {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "duplicate player sequence: " + strings.Join(parts, ", ")
}
