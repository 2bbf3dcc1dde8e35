package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bozor/api/middleware"
	"bozor/internal/dto"
	"bozor/internal/entity"
	"bozor/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service           *service.AuthService
	Validate          *validator.Validate
	RefreshCookieName string
	CookieDomain      string
	CookieMaxAge      time.Duration
	SecureCookies     bool
	SameSite          http.SameSite
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:           svc,
		Validate:          validate,
		RefreshCookieName: "refreshToken",
		SecureCookies:     true,
		SameSite:          http.SameSiteStrictMode,
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	input, err := h.bindSignup(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	message, err := h.Service.SignUp(c.Request().Context(), *input, entity.RoleUser)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: message})
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req dto.VerifyOTPRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	message, err := h.Service.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *AuthHandler) Signin(c echo.Context) error {
	var req dto.SigninRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	result, err := h.Service.SignIn(c.Request().Context(), service.SigninInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: stringPtr(c.RealIP()),
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	h.setRefreshCookie(c, result.RefreshToken)
	return c.JSON(http.StatusOK, dto.SigninResponse{
		Message:     "User signed in",
		UserID:      result.UserID,
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	result, err := h.Service.Refresh(c.Request().Context(), h.readRefreshCookie(c), stringPtr(c.RealIP()))
	if err != nil {
		return writeServiceError(c, err)
	}
	h.setRefreshCookie(c, result.RefreshToken)
	return c.JSON(http.StatusOK, dto.SigninResponse{
		Message:     "Access token refreshed",
		UserID:      result.UserID,
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) Signout(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	if err := h.Service.SignOut(c.Request().Context(), userID, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, err)
	}
	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User signed out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	user, err := h.Service.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *AuthHandler) bindSignup(c echo.Context) (*service.SignupInput, error) {
	var req dto.SignupRequest
	if err := decodeJSON(c, &req); err != nil {
		return nil, err
	}
	if err := h.validate(req); err != nil {
		return nil, err
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, errors.New("invalid birth date")
	}
	return &service.SignupInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		Gender:    req.Gender,
		BirthDate: birthDate,
	}, nil
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	if token == "" {
		return
	}
	maxAge := h.CookieMaxAge
	if maxAge <= 0 {
		maxAge = 15 * 24 * time.Hour
	}
	c.SetCookie(&http.Cookie{
		Name:     h.RefreshCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: h.SameSite,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.RefreshCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: h.SameSite,
	})
}

func (h *AuthHandler) readRefreshCookie(c echo.Context) string {
	cookie, err := c.Cookie(h.RefreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrOTPNotPending),
		errors.Is(err, service.ErrOwnerUndeletable):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUserExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrOTPInvalid),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNoRefreshToken),
		errors.Is(err, service.ErrInvalidTokenPayload),
		errors.Is(err, service.ErrAccessDenied):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrRefreshTokenMismatch),
		errors.Is(err, service.ErrNotAllowed),
		errors.Is(err, service.ErrOnlyOwnerCreatesAdmin),
		errors.Is(err, service.ErrOnlyOwnerAssignsRoles),
		errors.Is(err, service.ErrAdminDeletesAdmin):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrOTPDeliveryFailed):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		// Lower-layer failures carry wrapped context for the logs but
		// must not leak it to the caller.
		c.Logger().Error(err)
		return writeError(c, status, errors.New("internal server error"))
	}
	return writeError(c, status, err)
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
