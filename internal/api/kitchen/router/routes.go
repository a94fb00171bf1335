// Package router đăng ký các route thuộc domain kitchen.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/models"
	kitchenhdl "github.com/Muslimceek/fastfoodmuslim/internal/api/kitchen/handler"
	"github.com/Muslimceek/fastfoodmuslim/internal/api/middleware"
	apirouter "github.com/Muslimceek/fastfoodmuslim/internal/api/router"
)

// Register đăng ký tất cả route kitchen lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	kitchenHandler, err := kitchenhdl.NewKitchenHandler()
	if err != nil {
		return fmt.Errorf("failed to create kitchen handler: %w", err)
	}

	// Màn hình bếp dành cho nhân viên bếp và quản lý
	kitchenMiddleware := middleware.AuthMiddleware(authmodels.RoleKitchen, authmodels.RoleManager)
	apirouter.RegisterRouteWithMiddleware(v1, "/kitchen", "GET", "/board", []fiber.Handler{kitchenMiddleware}, kitchenHandler.HandleGetBoard)
	apirouter.RegisterRouteWithMiddleware(v1, "/kitchen", "GET", "/board/stream", []fiber.Handler{kitchenMiddleware}, kitchenHandler.HandleStream)
	apirouter.RegisterRouteWithMiddleware(v1, "/kitchen", "POST", "/board/alert/clear", []fiber.Handler{kitchenMiddleware}, kitchenHandler.HandleClearAlert)
	apirouter.RegisterRouteWithMiddleware(v1, "/kitchen", "POST", "/orders/:id/advance", []fiber.Handler{kitchenMiddleware}, kitchenHandler.HandleAdvance)
	apirouter.RegisterRouteWithMiddleware(v1, "/kitchen", "POST", "/orders/:id/complete", []fiber.Handler{kitchenMiddleware}, kitchenHandler.HandleComplete)
	return nil
}
