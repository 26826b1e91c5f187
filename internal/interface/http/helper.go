package handlers

import (
	"net/http"

	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
)

// statusForError translates a domain error kind to an HTTP status.
// Anything that is not a DomainError is treated as an internal failure.
func statusForError(err error) int {
	switch entity.KindOf(err) {
	case entity.KindInvalidArgument:
		return http.StatusBadRequest
	case entity.KindUnauthorized:
		return http.StatusUnauthorized
	case entity.KindForbidden:
		return http.StatusForbidden
	case entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindInvalidState, entity.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
