// Package router đăng ký các route thuộc domain profile.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/Muslimceek/fastfoodmuslim/internal/api/middleware"
	profilehdl "github.com/Muslimceek/fastfoodmuslim/internal/api/profile/handler"
	apirouter "github.com/Muslimceek/fastfoodmuslim/internal/api/router"
)

// Register đăng ký tất cả route profile lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	profileHandler, err := profilehdl.NewProfileHandler()
	if err != nil {
		return fmt.Errorf("failed to create profile handler: %w", err)
	}

	// Hồ sơ cá nhân: mọi người dùng đã đăng nhập đều xem và sửa được hồ sơ của mình
	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/profile", "GET", "/me", []fiber.Handler{authMiddleware}, profileHandler.HandleGetMyProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/profile", "PUT", "/me", []fiber.Handler{authMiddleware}, profileHandler.HandleUpdateMyProfile)
	apirouter.RegisterRouteWithMiddleware(v1, "/profile", "POST", "/favorite", []fiber.Handler{authMiddleware}, profileHandler.HandleAddFavorite)
	apirouter.RegisterRouteWithMiddleware(v1, "/profile", "DELETE", "/favorite", []fiber.Handler{authMiddleware}, profileHandler.HandleRemoveFavorite)
	return nil
}
