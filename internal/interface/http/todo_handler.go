package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ymgta/go-todo-clean-architecture/internal/application"
	"github.com/ymgta/go-todo-clean-architecture/pkg/response"
	"github.com/ymgta/go-todo-clean-architecture/pkg/validation"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Title        string `json:"title" binding:"required,max=32"`
	Descriptions string `json:"descriptions" binding:"max=128"`
}

type updateTodoRequest struct {
	Title        *string `json:"title"`
	Descriptions *string `json:"descriptions"`
}

func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.CreateTodo(c.Request.Context(), application.CreateTodoCommand{
		Title:        req.Title,
		Descriptions: req.Descriptions,
		UserID:       c.GetString("userID"),
	})
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusCreated, res, "todo created", nil)
}

func (h *TodoHandler) Update(c *gin.Context) {
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.UpdateTodo(c.Request.Context(), application.UpdateTodoCommand{
		ID:           c.Param("id"),
		UserID:       c.GetString("userID"),
		Title:        req.Title,
		Descriptions: req.Descriptions,
	})
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "todo updated", nil)
}

func (h *TodoHandler) Complete(c *gin.Context) {
	res, err := h.Svc.CompleteTodo(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "todo completed", nil)
}

func (h *TodoHandler) Incomplete(c *gin.Context) {
	res, err := h.Svc.IncompleteTodo(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "todo marked incomplete", nil)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteTodo(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "todo deleted", nil)
}

func (h *TodoHandler) Get(c *gin.Context) {
	res, err := h.Svc.GetTodo(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "todo", nil)
}

func (h *TodoHandler) List(c *gin.Context) {
	var completed *bool
	if v := c.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "completed must be a boolean", nil)
			return
		}
		completed = &b
	}

	res, err := h.Svc.ListTodos(c.Request.Context(), c.GetString("userID"), completed)
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "todos", map[string]any{"count": len(res)})
}

func (h *TodoHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	res, err := h.Svc.SearchTodos(c.Request.Context(), c.GetString("userID"), q, size)
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "search results", map[string]any{"count": len(res)})
}

func (h *TodoHandler) Stats(c *gin.Context) {
	res, err := h.Svc.Stats(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "todo stats", nil)
}
