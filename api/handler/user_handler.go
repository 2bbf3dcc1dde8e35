package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bozor/api/middleware"
	"bozor/internal/authz"
	"bozor/internal/dto"
	"bozor/internal/entity"
	"bozor/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Service  *service.UserService
	Auth     *AuthHandler
	Validate *validator.Validate
}

func NewUserHandler(svc *service.UserService, auth *AuthHandler, validate *validator.Validate) *UserHandler {
	return &UserHandler{Service: svc, Auth: auth, Validate: validate}
}

func (h *UserHandler) CreateAdmin(c echo.Context) error {
	requester, ok := middleware.RoleFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	input, err := h.Auth.bindSignup(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	message, err := h.Service.CreateAdmin(c.Request().Context(), *input, requester)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: message})
}

func (h *UserHandler) List(c echo.Context) error {
	requester, ok := middleware.RoleFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	users, err := h.Service.List(c.Request().Context(), requester)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromEntities(users))
}

func (h *UserHandler) Get(c echo.Context) error {
	requester, ok := middleware.RoleFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	user, err := h.Service.Get(c.Request().Context(), id, requester)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) Update(c echo.Context) error {
	requesterID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	requesterRole, _ := middleware.RoleFromContext(c)
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	// Users edit themselves; admins and the owner edit anyone.
	if !authz.IsSelf(requesterID, id) && !authz.AdminOrOwner(requesterRole) {
		return writeError(c, http.StatusForbidden, errors.New("forbidden"))
	}

	var req dto.UpdateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			return writeError(c, http.StatusBadRequest, err)
		}
	}

	input := service.UpdateUserInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Gender:   req.Gender,
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.Service.Update(c.Request().Context(), id, input, requesterRole)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *UserHandler) Delete(c echo.Context) error {
	requester, ok := middleware.RoleFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := parseID(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.Delete(c.Request().Context(), id, requester); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
