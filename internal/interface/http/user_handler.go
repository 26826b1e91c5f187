package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ymgta/go-todo-clean-architecture/internal/application"
	"github.com/ymgta/go-todo-clean-architecture/pkg/response"
	"github.com/ymgta/go-todo-clean-architecture/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username      string `json:"username" binding:"required,max=50"`
	Email         string `json:"email" binding:"omitempty,email"`
	FirstName     string `json:"first_name" binding:"max=50"`
	FirstNameRuby string `json:"first_name_ruby" binding:"max=50"`
	LastName      string `json:"last_name" binding:"max=50"`
	LastNameRuby  string `json:"last_name_ruby" binding:"max=50"`
	Password      string `json:"password" binding:"required,pwd"`
}

type updateProfileRequest struct {
	FirstName     string `json:"first_name" binding:"max=50"`
	FirstNameRuby string `json:"first_name_ruby" binding:"max=50"`
	LastName      string `json:"last_name" binding:"max=50"`
	LastNameRuby  string `json:"last_name_ruby" binding:"max=50"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

type initializePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

type changeRoleRequest struct {
	RoleCode int `json:"role_code" binding:"rolecode"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterUserCommand{
		Username:      req.Username,
		Email:         req.Email,
		FirstName:     req.FirstName,
		FirstNameRuby: req.FirstNameRuby,
		LastName:      req.LastName,
		LastNameRuby:  req.LastNameRuby,
		Password:      req.Password,
	})
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusCreated, res, "user registered", nil)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	res, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.UpdateProfile(c.Request.Context(), application.UpdateProfileCommand{
		UserID:        c.GetString("userID"),
		FirstName:     req.FirstName,
		FirstNameRuby: req.FirstNameRuby,
		LastName:      req.LastName,
		LastNameRuby:  req.LastNameRuby,
	})
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "profile updated", nil)
}

func (h *UserHandler) InitializePassword(c *gin.Context) {
	var req initializePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.InitializePassword(c.Request.Context(), application.InitializePasswordCommand{
		UserID:      c.GetString("userID"),
		NewPassword: req.NewPassword,
	})
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "password initialized", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.ChangePassword(c.Request.Context(), application.ChangePasswordCommand{
		UserID:          c.GetString("userID"),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "password changed", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	res, err := h.Svc.ListUsers(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "users", map[string]any{"count": len(res)})
}

func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.ChangeRole(c.Request.Context(), application.ChangeRoleCommand{
		ActorID:  c.GetString("userID"),
		TargetID: c.Param("id"),
		RoleCode: req.RoleCode,
	})
	if err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, res, "role changed", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		response.Error[any](c, statusForError(err), err.Error(), nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "user deleted", nil)
}
