// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bistro/internal/delivery/http/middleware"
	"bistro/internal/delivery/http/router/handler"
	"bistro/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	MenuHandler    *handler.MenuHandler
	ReviewHandler  *handler.ReviewHandler
	AdminHandler   *handler.AdminHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	menuHandler    *handler.MenuHandler
	reviewHandler  *handler.ReviewHandler
	adminHandler   *handler.AdminHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		menuHandler:    params.MenuHandler,
		reviewHandler:  params.ReviewHandler,
		adminHandler:   params.AdminHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	authenticate := r.authMiddleware.Authenticate
	requireAdmin := r.authMiddleware.RequireRole(string(entity.RoleAdmin))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, authenticate)
		authGroup.GET("/admin", r.authHandler.AdminPing, authenticate, requireAdmin)
	}

	// Catalogue routes: reads are public, writes are admin-only
	menuGroup := e.Group("/menu")
	{
		menuGroup.GET("", r.menuHandler.List)
		menuGroup.GET("/:id", r.menuHandler.Get)
		menuGroup.POST("", r.menuHandler.Create, authenticate, requireAdmin)
		menuGroup.PUT("/:id", r.menuHandler.Update, authenticate, requireAdmin)
		menuGroup.DELETE("/:id", r.menuHandler.Delete, authenticate, requireAdmin)

		// Reviews hang off the dish they rate
		menuGroup.GET("/:id/reviews", r.reviewHandler.List)
		menuGroup.POST("/:id/reviews", r.reviewHandler.Submit, authenticate)
		menuGroup.DELETE("/:id/reviews", r.reviewHandler.Delete, authenticate)
	}

	// Self-service account routes
	userGroup := e.Group("/users/me")
	userGroup.Use(authenticate)
	{
		userGroup.GET("", r.userHandler.GetProfile)
		userGroup.PATCH("", r.userHandler.UpdateProfile)
		userGroup.GET("/preferences", r.userHandler.GetPreferences)
		userGroup.PUT("/preferences/dietary-tags", r.userHandler.UpdateDietaryTags)
		userGroup.POST("/favorites/:itemID", r.userHandler.AddFavorite)
		userGroup.DELETE("/favorites/:itemID", r.userHandler.RemoveFavorite)
	}

	// Administration routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(authenticate)
	adminGroup.Use(requireAdmin)
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PATCH("/users/:id/status", r.adminHandler.UpdateUserStatus)
		adminGroup.PATCH("/users/:id/roles", r.adminHandler.UpdateUserRoles)
		adminGroup.GET("/dashboard", r.adminHandler.Dashboard)
	}
}
