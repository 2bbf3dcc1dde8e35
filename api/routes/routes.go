package routes

import (
	"time"

	"bozor/api/handler"
	"bozor/api/middleware"
	"bozor/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	SigninRate     *middleware.RateLimiter
}

func NewRouter(e *echo.Echo, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Users:          userHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		SigninRate:     middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/auth/user/signup", r.Auth.Signup, r.AuthRate.Middleware())
	e.POST("/auth/verify-otp", r.Auth.VerifyOTP, r.AuthRate.Middleware())
	e.POST("/auth/user/signin", r.Auth.Signin, r.SigninRate.Middleware())
	e.POST("/auth/user/refresh", r.Auth.Refresh, r.AuthRate.Middleware())
	e.POST("/auth/user/signout", r.Auth.Signout, r.AuthMiddleware.RequireAuth)
	e.GET("/auth/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)

	users := e.Group("/users", r.AuthMiddleware.RequireAuth, middleware.RequireActive)
	users.POST("/admin", r.Users.CreateAdmin, middleware.RequireRole(entity.RoleOwner))
	users.GET("", r.Users.List, middleware.RequireRole(entity.RoleAdmin, entity.RoleOwner))
	users.GET("/:id", r.Users.Get, middleware.RequireRole(entity.RoleAdmin, entity.RoleOwner))
	users.PATCH("/:id", r.Users.Update)
	users.DELETE("/:id", r.Users.Delete, middleware.RequireRole(entity.RoleAdmin, entity.RoleOwner))
}
