// Package router đăng ký các route thuộc domain order.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/models"
	"github.com/Muslimceek/fastfoodmuslim/internal/api/middleware"
	orderhdl "github.com/Muslimceek/fastfoodmuslim/internal/api/order/handler"
	apirouter "github.com/Muslimceek/fastfoodmuslim/internal/api/router"
)

// Register đăng ký tất cả route order lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("failed to create order handler: %w", err)
	}

	// Khách đặt đơn, xem và hủy đơn của mình
	customerMiddleware := middleware.AuthMiddleware(authmodels.RoleCustomer)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/checkout", []fiber.Handler{customerMiddleware}, orderHandler.HandleCheckout)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "GET", "/my", []fiber.Handler{customerMiddleware}, orderHandler.HandleFindMyOrders)
	apirouter.RegisterRouteWithMiddleware(v1, "/order", "POST", "/:id/cancel", []fiber.Handler{customerMiddleware}, orderHandler.HandleCancelOrder)

	// CRUD đơn hàng cho dashboard quản trị (chỉ đọc, mọi thay đổi đi qua
	// checkout/advance/cancel để giữ nguyên quy tắc trạng thái)
	r.RegisterCRUDRoutes(v1, "/order", orderHandler, apirouter.ReadOnlyConfig,
		[]string{authmodels.RoleManager, authmodels.RoleKitchen}, []string{authmodels.RoleAdmin})
	return nil
}
