// Package authhdl - handler quản trị người dùng (admin).
package authhdl

import (
	"fmt"

	authdto "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/dto"
	models "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/models"
	authsvc "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/service"
	basehdl "github.com/Muslimceek/fastfoodmuslim/internal/api/base/handler"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// AdminHandler xử lý các route quản trị người dùng
type AdminHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput]
	UserService *authsvc.UserService
}

// NewAdminHandler tạo mới AdminHandler
func NewAdminHandler() (*AdminHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	return &AdminHandler{
		BaseHandler: basehdl.NewBaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput](userService),
		UserService: userService,
	}, nil
}

// HandleSetRole gán vai trò cho người dùng theo email
func (h *AdminHandler) HandleSetRole(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.SetRoleInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.UserService.SetRole(c.Context(), &input)
		if err == nil {
			logger.LogAction("admin_set_role", c, map[string]interface{}{"email": input.Email, "role": input.Role})
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleBlockUser khóa tài khoản người dùng theo email
func (h *AdminHandler) HandleBlockUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.BlockUserInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.UserService.BlockUser(c.Context(), &input)
		if err == nil {
			logger.LogAction("admin_block_user", c, map[string]interface{}{"email": input.Email, "note": input.Note})
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleUnBlockUser mở khóa tài khoản người dùng theo email
func (h *AdminHandler) HandleUnBlockUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UnBlockUserInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.UserService.UnBlockUser(c.Context(), &input)
		if err == nil {
			logger.LogAction("admin_unblock_user", c, map[string]interface{}{"email": input.Email})
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}
