package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"hostel-desk.backend/internal/interfaces/http/handlers"
	"hostel-desk.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	studentHandler  *handlers.StudentHandler
	adminHandler    *handlers.AdminHandler
	evidenceHandler *handlers.EvidenceHandler
	sessionAuth     gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	r.GET("/", d.authHandler.Landing)
	r.GET("/register", d.authHandler.RegisterForm)
	r.POST("/register", d.authHandler.Register)
	r.GET("/login", d.authHandler.LoginForm)
	r.POST("/login", d.authHandler.Login)
	r.GET("/logout", d.authHandler.Logout)
	r.GET("/uploads/:filename", d.evidenceHandler.Serve)

	// Authenticated routes
	authed := r.Group("/", d.sessionAuth, middleware.CSRF())

	student := authed.Group("/student", middleware.RequireStudent())
	{
		student.GET("/dashboard", d.studentHandler.Dashboard)
		student.POST("/dashboard", middleware.SubmitDedup(), d.studentHandler.Submit)
		student.GET("/complaint/edit/:id", d.studentHandler.EditForm)
		student.POST("/complaint/edit/:id", d.studentHandler.Edit)
		student.POST("/complaint/delete/:id", d.studentHandler.Delete)
	}

	admin := authed.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/dashboard", d.adminHandler.Dashboard)
		admin.GET("/update/:id/:status", d.adminHandler.UpdateStatus)
		admin.POST("/complaint/delete/:id", d.adminHandler.Delete)
	}
}
