// Package router đăng ký các route thuộc domain menu.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/models"
	menuhdl "github.com/Muslimceek/fastfoodmuslim/internal/api/menu/handler"
	"github.com/Muslimceek/fastfoodmuslim/internal/api/middleware"
	apirouter "github.com/Muslimceek/fastfoodmuslim/internal/api/router"
)

// Register đăng ký tất cả route menu lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	productHandler, err := menuhdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("failed to create product handler: %w", err)
	}

	// Khách xem thực đơn không cần đăng nhập
	v1.Get("/menu/available", productHandler.HandleFindAvailable)

	// Bếp và quản lý bật/tắt món
	toggleMiddleware := middleware.AuthMiddleware(authmodels.RoleManager, authmodels.RoleKitchen)
	apirouter.RegisterRouteWithMiddleware(v1, "/menu/products", "PATCH", "/:id/availability", []fiber.Handler{toggleMiddleware}, productHandler.HandleSetAvailability)

	// CRUD thực đơn cho dashboard quản trị
	r.RegisterCRUDRoutes(v1, "/menu/products", productHandler, apirouter.ReadWriteConfig,
		[]string{authmodels.RoleManager, authmodels.RoleKitchen}, []string{authmodels.RoleManager})
	return nil
}
