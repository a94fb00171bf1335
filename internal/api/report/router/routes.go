// Package router đăng ký các route thuộc domain report.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authmodels "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/models"
	"github.com/Muslimceek/fastfoodmuslim/internal/api/middleware"
	reporthdl "github.com/Muslimceek/fastfoodmuslim/internal/api/report/handler"
	apirouter "github.com/Muslimceek/fastfoodmuslim/internal/api/router"
)

// Register đăng ký tất cả route report lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	reportHandler, err := reporthdl.NewReportHandler()
	if err != nil {
		return fmt.Errorf("failed to create report handler: %w", err)
	}

	// Thống kê chỉ dành cho dashboard quản trị
	managerMiddleware := middleware.AuthMiddleware(authmodels.RoleManager)
	apirouter.RegisterRouteWithMiddleware(v1, "/report/dashboard", "GET", "/today", []fiber.Handler{managerMiddleware}, reportHandler.HandleDailyStats)
	apirouter.RegisterRouteWithMiddleware(v1, "/report/dashboard", "GET", "/top-products", []fiber.Handler{managerMiddleware}, reportHandler.HandleTopProducts)
	return nil
}
