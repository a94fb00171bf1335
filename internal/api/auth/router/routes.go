// Package router đăng ký các route thuộc domain auth: System, Auth, Admin, User.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/handler"
	models "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/models"
	basehdl "github.com/Muslimceek/fastfoodmuslim/internal/api/base/handler"
	"github.com/Muslimceek/fastfoodmuslim/internal/api/middleware"
	apirouter "github.com/Muslimceek/fastfoodmuslim/internal/api/router"
)

// Register đăng ký tất cả route auth (system, auth, admin, user) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	if err := registerAdminRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler := basehdl.NewSystemHandler()
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	router.Post("/auth/register", userHandler.HandleRegister)
	router.Post("/auth/login", userHandler.HandleLogin)

	authOnlyMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/logout", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/profile", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/profile", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleUpdateProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/password", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleChangePassword)
	return nil
}

func registerAdminRoutes(router fiber.Router, r *apirouter.Router) error {
	adminHandler, err := authhdl.NewAdminHandler()
	if err != nil {
		return fmt.Errorf("failed to create admin handler: %w", err)
	}

	adminMiddleware := middleware.AuthMiddleware(models.RoleAdmin)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/role", []fiber.Handler{adminMiddleware}, adminHandler.HandleSetRole)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/block", []fiber.Handler{adminMiddleware}, adminHandler.HandleBlockUser)
	apirouter.RegisterRouteWithMiddleware(router, "/admin/user", "POST", "/unblock", []fiber.Handler{adminMiddleware}, adminHandler.HandleUnBlockUser)

	// CRUD người dùng cho dashboard quản trị (chỉ đọc, ghi qua các route admin ở trên)
	r.RegisterCRUDRoutes(router, "/user", adminHandler, apirouter.ReadOnlyConfig,
		[]string{models.RoleAdmin, models.RoleManager}, []string{models.RoleAdmin})
	return nil
}
