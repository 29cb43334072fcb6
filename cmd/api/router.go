package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore-admin/internal/shared/middleware"
	"bookstore-admin/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Session(c.Sessions, c.Config.Session.CookieName),
	)

	router.GET("/health", healthCheckHandler(c))

	setupAuthRoutes(router, c)

	dashboard := router.Group("/dashboard", middleware.RequireUser())
	{
		dashboard.GET("", c.UserHandler.Me)
		setupAuthorRoutes(dashboard, c)
		setupBookRoutes(dashboard, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/", c.UserHandler.LoginPage)
	router.POST("/", c.UserHandler.Login)
	router.POST("/register", c.UserHandler.Register)
	router.POST("/logout", c.UserHandler.Logout)
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(dashboard *gin.RouterGroup, c *container.Container) {
	authors := dashboard.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.Get)
		authors.POST("/:id", c.AuthorHandler.Submit)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(dashboard *gin.RouterGroup, c *container.Container) {
	books := dashboard.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/export", c.BookHandler.Export)
		books.GET("/:isbn", c.BookHandler.Get)
		books.POST("/:isbn", c.BookHandler.Submit)
		books.DELETE("/:isbn", c.BookHandler.Delete)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}

		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = "error: " + err.Error()
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
		}
		c.JSON(status, health)
	}
}
