package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxTitleLen        = 32
	maxDescriptionsLen = 128
)

// Todo is the aggregate root for the todo domain. Fields are private so
// every mutation goes through an invariant-enforcing method; rows are
// never removed physically, Delete flips a logical flag.
type Todo struct {
	id           string
	title        string
	descriptions string
	completed    bool
	userID       string
	createdAt    time.Time
	updatedAt    time.Time
	deleted      bool
}

// NewTodo creates a fresh todo owned by userID.
func NewTodo(title, descriptions, userID string) (*Todo, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescriptions(descriptions); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, NewInvalidArgument("user id is required")
	}
	now := time.Now()
	return &Todo{
		id:           uuid.NewString(),
		title:        title,
		descriptions: descriptions,
		completed:    false,
		userID:       userID,
		createdAt:    now,
		updatedAt:    now,
		deleted:      false,
	}, nil
}

// ReconstructTodo rehydrates a todo from storage, preserving identity
// and timestamps.
func ReconstructTodo(id, title, descriptions string, completed bool, userID string, createdAt, updatedAt time.Time, deleted bool) (*Todo, error) {
	if id == "" {
		return nil, NewInvalidArgument("id is required")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescriptions(descriptions); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, NewInvalidArgument("user id is required")
	}
	return &Todo{
		id:           id,
		title:        title,
		descriptions: descriptions,
		completed:    completed,
		userID:       userID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		deleted:      deleted,
	}, nil
}

func validateTitle(title string) error {
	if title == "" {
		return NewInvalidArgument("title must not be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return NewInvalidArgument("title must be at most 32 characters long")
	}
	return nil
}

func validateDescriptions(descriptions string) error {
	if utf8.RuneCountInString(descriptions) > maxDescriptionsLen {
		return NewInvalidArgument("descriptions must be at most 128 characters long")
	}
	return nil
}

func (t *Todo) ID() string           { return t.id }
func (t *Todo) Title() string        { return t.title }
func (t *Todo) Descriptions() string { return t.descriptions }
func (t *Todo) Completed() bool      { return t.completed }
func (t *Todo) UserID() string       { return t.userID }
func (t *Todo) CreatedAt() time.Time { return t.createdAt }
func (t *Todo) UpdatedAt() time.Time { return t.updatedAt }
func (t *Todo) Deleted() bool        { return t.deleted }

// MarkAsCompleted transitions the todo to completed. Re-completing is
// rejected rather than treated as a no-op.
func (t *Todo) MarkAsCompleted() error {
	if t.deleted {
		return NewInvalidState("todo is deleted")
	}
	if t.completed {
		return NewInvalidState("todo is already completed")
	}
	t.completed = true
	t.touch()
	return nil
}

// MarkAsIncomplete transitions the todo back to incomplete.
func (t *Todo) MarkAsIncomplete() error {
	if t.deleted {
		return NewInvalidState("todo is deleted")
	}
	if !t.completed {
		return NewInvalidState("todo is not completed")
	}
	t.completed = false
	t.touch()
	return nil
}

func (t *Todo) UpdateTitle(title string) error {
	if t.deleted {
		return NewInvalidState("todo is deleted")
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	t.title = title
	t.touch()
	return nil
}

func (t *Todo) UpdateDescriptions(descriptions string) error {
	if t.deleted {
		return NewInvalidState("todo is deleted")
	}
	if err := validateDescriptions(descriptions); err != nil {
		return err
	}
	t.descriptions = descriptions
	t.touch()
	return nil
}

// Delete flips the logical-delete flag. The transition is one-way.
func (t *Todo) Delete() error {
	if t.deleted {
		return NewInvalidState("todo is already deleted")
	}
	t.deleted = true
	t.touch()
	return nil
}

// IsOwnedBy reports whether userID owns this todo.
func (t *Todo) IsOwnedBy(userID string) bool {
	return t.userID == userID
}

func (t *Todo) touch() {
	t.updatedAt = time.Now()
}
