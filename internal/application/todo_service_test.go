package application

import (
	"context"
	"strings"
	"testing"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
	"github.com/ymgta/go-todo-clean-architecture/pkg/helpers"
)

func newTestTodoService(t *testing.T) (*TodoService, *entity.User) {
	t.Helper()
	users := &memUserRepo{}
	hash, err := helpers.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	owner, err := entity.NewUser("taro", "taro@example.com", "Taro", "タロウ", "Yamada", "ヤマダ", hash, entity.RoleUser)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if _, err := users.Save(context.Background(), owner); err != nil {
		t.Fatalf("save owner: %v", err)
	}
	svc := NewTodoService(&memTodoRepo{}, users, nil, nil, nil, "", nil)
	return svc, owner
}

func createTodo(t *testing.T, svc *TodoService, ownerID, title string) *TodoResult {
	t.Helper()
	res, err := svc.CreateTodo(context.Background(), CreateTodoCommand{Title: title, UserID: ownerID})
	if err != nil {
		t.Fatalf("CreateTodo(%q): %v", title, err)
	}
	return res
}

func TestCreateTodo(t *testing.T) {
	svc, owner := newTestTodoService(t)
	ctx := context.Background()

	res, err := svc.CreateTodo(ctx, CreateTodoCommand{Title: "Buy milk", Descriptions: "2 liters", UserID: owner.ID()})
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if res.ID == "" || res.Title != "Buy milk" || res.Completed {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.UserID != owner.ID() {
		t.Fatalf("user id = %q", res.UserID)
	}
}

func TestCreateTodoUnknownOwner(t *testing.T) {
	svc, _ := newTestTodoService(t)

	_, err := svc.CreateTodo(context.Background(), CreateTodoCommand{Title: "task", UserID: "missing"})
	if !entity.IsKind(err, entity.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateTodoInvalidTitle(t *testing.T) {
	svc, owner := newTestTodoService(t)

	_, err := svc.CreateTodo(context.Background(), CreateTodoCommand{Title: strings.Repeat("a", 33), UserID: owner.ID()})
	if !entity.IsKind(err, entity.KindInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestUpdateTodoPartialFields(t *testing.T) {
	svc, owner := newTestTodoService(t)
	ctx := context.Background()
	created := createTodo(t, svc, owner.ID(), "before")

	title := "after"
	res, err := svc.UpdateTodo(ctx, UpdateTodoCommand{ID: created.ID, UserID: owner.ID(), Title: &title})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if res.Title != "after" {
		t.Fatalf("title = %q", res.Title)
	}
	if res.Descriptions != created.Descriptions {
		t.Fatal("descriptions must stay untouched when nil")
	}
}

func TestCompleteAndIncompleteTodo(t *testing.T) {
	svc, owner := newTestTodoService(t)
	ctx := context.Background()
	created := createTodo(t, svc, owner.ID(), "task")

	res, err := svc.CompleteTodo(ctx, created.ID, owner.ID())
	if err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}
	if !res.Completed {
		t.Fatal("expected completed=true")
	}

	if _, err := svc.CompleteTodo(ctx, created.ID, owner.ID()); !entity.IsKind(err, entity.KindInvalidState) {
		t.Fatalf("re-completion must fail with invalid state, got %v", err)
	}

	res, err = svc.IncompleteTodo(ctx, created.ID, owner.ID())
	if err != nil {
		t.Fatalf("IncompleteTodo: %v", err)
	}
	if res.Completed {
		t.Fatal("expected completed=false after revert")
	}
}

func TestTodoOwnershipEnforced(t *testing.T) {
	svc, owner := newTestTodoService(t)
	ctx := context.Background()
	created := createTodo(t, svc, owner.ID(), "task")

	hash, _ := helpers.HashPassword("password123")
	other, err := entity.NewUser("hanako", "", "", "", "", "", hash, entity.RoleUser)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if _, err := svc.Users.Save(ctx, other); err != nil {
		t.Fatalf("save other: %v", err)
	}

	if _, err := svc.GetTodo(ctx, created.ID, other.ID()); !entity.IsKind(err, entity.KindForbidden) {
		t.Fatalf("GetTodo by non-owner must be forbidden, got %v", err)
	}
	if _, err := svc.CompleteTodo(ctx, created.ID, other.ID()); !entity.IsKind(err, entity.KindForbidden) {
		t.Fatalf("CompleteTodo by non-owner must be forbidden, got %v", err)
	}
	if err := svc.DeleteTodo(ctx, created.ID, other.ID()); !entity.IsKind(err, entity.KindForbidden) {
		t.Fatalf("DeleteTodo by non-owner must be forbidden, got %v", err)
	}
}

func TestDeleteTodoHidesIt(t *testing.T) {
	svc, owner := newTestTodoService(t)
	ctx := context.Background()
	created := createTodo(t, svc, owner.ID(), "task")

	if err := svc.DeleteTodo(ctx, created.ID, owner.ID()); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	if _, err := svc.GetTodo(ctx, created.ID, owner.ID()); !entity.IsKind(err, entity.KindNotFound) {
		t.Fatalf("deleted todo must be invisible, got %v", err)
	}
	if err := svc.DeleteTodo(ctx, created.ID, owner.ID()); !entity.IsKind(err, entity.KindNotFound) {
		t.Fatalf("second delete must report not found, got %v", err)
	}
	if err := svc.Todos.Delete(ctx, created.ID); !entity.IsKind(err, entity.KindNotFound) {
		t.Fatalf("repository delete on a hidden row must report not found, got %v", err)
	}

	list, err := svc.ListTodos(ctx, owner.ID(), nil)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted todo still listed: %d entries", len(list))
	}
}

func TestListTodosFilter(t *testing.T) {
	svc, owner := newTestTodoService(t)
	ctx := context.Background()

	first := createTodo(t, svc, owner.ID(), "first")
	createTodo(t, svc, owner.ID(), "second")
	if _, err := svc.CompleteTodo(ctx, first.ID, owner.ID()); err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}

	all, err := svc.ListTodos(ctx, owner.ID(), nil)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d, want 2", len(all))
	}
	if all[0].Title != "first" || all[1].Title != "second" {
		t.Fatalf("order not preserved: %q then %q", all[0].Title, all[1].Title)
	}

	done := true
	completed, err := svc.ListTodos(ctx, owner.ID(), &done)
	if err != nil {
		t.Fatalf("ListTodos(completed): %v", err)
	}
	if len(completed) != 1 || completed[0].ID != first.ID {
		t.Fatalf("completed filter wrong: %+v", completed)
	}

	pending := false
	open, err := svc.ListTodos(ctx, owner.ID(), &pending)
	if err != nil {
		t.Fatalf("ListTodos(pending): %v", err)
	}
	if len(open) != 1 || open[0].Title != "second" {
		t.Fatalf("pending filter wrong: %+v", open)
	}
}

func TestStats(t *testing.T) {
	svc, owner := newTestTodoService(t)
	ctx := context.Background()

	stats, err := svc.Stats(ctx, owner.ID())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 0 || stats.CompletionRate != 0 {
		t.Fatalf("empty stats wrong: %+v", stats)
	}

	a := createTodo(t, svc, owner.ID(), "a")
	createTodo(t, svc, owner.ID(), "b")
	if _, err := svc.CompleteTodo(ctx, a.ID, owner.ID()); err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}

	stats, err = svc.Stats(ctx, owner.ID())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 2 || stats.Completed != 1 || stats.CompletionRate != 0.5 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestSearchTodosFallback(t *testing.T) {
	svc, owner := newTestTodoService(t)
	ctx := context.Background()

	createTodo(t, svc, owner.ID(), "Buy milk")
	createTodo(t, svc, owner.ID(), "Walk the dog")

	hits, err := svc.SearchTodos(ctx, owner.ID(), "milk", 10)
	if err != nil {
		t.Fatalf("SearchTodos: %v", err)
	}
	if len(hits) != 1 || hits[0]["title"] != "Buy milk" {
		t.Fatalf("hits = %+v", hits)
	}

	none, err := svc.SearchTodos(ctx, owner.ID(), "groceries", 10)
	if err != nil {
		t.Fatalf("SearchTodos: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no hits, got %+v", none)
	}
}

func TestTodoLifecycleEndToEnd(t *testing.T) {
	svc, owner := newTestTodoService(t)
	ctx := context.Background()

	created := createTodo(t, svc, owner.ID(), "Buy milk")

	desc := "low fat"
	updated, err := svc.UpdateTodo(ctx, UpdateTodoCommand{ID: created.ID, UserID: owner.ID(), Descriptions: &desc})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if updated.Descriptions != "low fat" {
		t.Fatalf("descriptions = %q", updated.Descriptions)
	}

	if _, err := svc.CompleteTodo(ctx, created.ID, owner.ID()); err != nil {
		t.Fatalf("CompleteTodo: %v", err)
	}
	got, err := svc.GetTodo(ctx, created.ID, owner.ID())
	if err != nil {
		t.Fatalf("GetTodo: %v", err)
	}
	if !got.Completed {
		t.Fatal("expected completed=true")
	}

	if err := svc.DeleteTodo(ctx, created.ID, owner.ID()); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	if _, err := svc.GetTodo(ctx, created.ID, owner.ID()); !entity.IsKind(err, entity.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
