package service

import (
	"testing"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
)

func newTodo(t *testing.T, userID string, completed bool) *entity.Todo {
	t.Helper()
	todo, err := entity.NewTodo("task", "", userID)
	if err != nil {
		t.Fatalf("NewTodo: %v", err)
	}
	if completed {
		if err := todo.MarkAsCompleted(); err != nil {
			t.Fatalf("MarkAsCompleted: %v", err)
		}
	}
	return todo
}

func TestCheckOwnership(t *testing.T) {
	todo := newTodo(t, "owner-1", false)

	if err := CheckOwnership(todo, "owner-1"); err != nil {
		t.Fatalf("owner must pass: %v", err)
	}
	if err := CheckOwnership(todo, "owner-2"); !entity.IsKind(err, entity.KindForbidden) {
		t.Fatalf("non-owner must be forbidden, got %v", err)
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      float64
	}{
		{"empty", 0, 0, 0},
		{"none completed", 0, 4, 0},
		{"half completed", 2, 4, 0.5},
		{"all completed", 3, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todos := make([]*entity.Todo, 0, tt.total)
			for i := 0; i < tt.total; i++ {
				todos = append(todos, newTodo(t, "U1", i < tt.completed))
			}
			if got := CompletionRate(todos); got != tt.want {
				t.Fatalf("CompletionRate = %v, want %v", got, tt.want)
			}
		})
	}
}
