package service

import (
	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
)

// CheckOwnership rejects access to a todo by anyone but its owner.
// The check is explicit so the failure mode is visible at the call site.
func CheckOwnership(t *entity.Todo, userID string) error {
	if !t.IsOwnedBy(userID) {
		return entity.NewForbidden("todo belongs to another user")
	}
	return nil
}

// CompletionRate returns the completed fraction of the given todos in
// the range [0, 1]. An empty collection has a rate of zero.
func CompletionRate(todos []*entity.Todo) float64 {
	if len(todos) == 0 {
		return 0
	}
	completed := 0
	for _, t := range todos {
		if t.Completed() {
			completed++
		}
	}
	return float64(completed) / float64(len(todos))
}
