// Package authhdl - handler người dùng thuộc domain auth.
package authhdl

import (
	"fmt"

	authdto "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/dto"
	models "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/models"
	authsvc "github.com/Muslimceek/fastfoodmuslim/internal/api/auth/service"
	basehdl "github.com/Muslimceek/fastfoodmuslim/internal/api/base/handler"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// UserHandler xử lý các route liên quan đến người dùng
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput]
	UserService *authsvc.UserService
}

// NewUserHandler tạo mới UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	return &UserHandler{
		BaseHandler: basehdl.NewBaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput](userService),
		UserService: userService,
	}, nil
}

// HandleRegister đăng ký tài khoản khách hàng mới
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserRegisterInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.UserService.Register(c.Context(), &input)
		if err == nil {
			logger.LogAuth("register", c, map[string]interface{}{"email": input.Email})
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleLogin đăng nhập bằng email + mật khẩu
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserLoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.UserService.Login(c.Context(), &input)
		if err == nil {
			logger.LogAuth("login", c, map[string]interface{}{"email": input.Email})
		}
		h.HandleResponse(c, user, err)
		return nil
	})
}

// HandleLogout đăng xuất thiết bị hiện tại (xóa token theo hwid)
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userIDStr, ok := c.Locals("user_id").(string)
		if !ok || userIDStr == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		var input authdto.UserLogoutInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err := h.UserService.Logout(c.Context(), utility.String2ObjectID(userIDStr), &input)
		if err == nil {
			logger.LogAuth("logout", c, nil)
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleGetProfile trả về thông tin người dùng đang đăng nhập
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleUpdateProfile cập nhật thông tin cá nhân (tên, số điện thoại)
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userIDStr, ok := c.Locals("user_id").(string)
		if !ok || userIDStr == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		var input authdto.UserChangeInfoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := h.TransformUpdateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		updateData, err := h.BuildSetData(model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if len(updateData.Set) == 0 {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		data, err := h.BaseService.UpdateById(c.Context(), utility.String2ObjectID(userIDStr), updateData)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// HandleChangePassword đổi mật khẩu của người dùng đang đăng nhập
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userIDStr, ok := c.Locals("user_id").(string)
		if !ok || userIDStr == "" {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		var input authdto.UserChangePasswordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err := h.UserService.ChangePassword(c.Context(), utility.String2ObjectID(userIDStr), &input)
		if err == nil {
			logger.LogAuth("change_password", c, nil)
		}
		h.HandleResponse(c, nil, err)
		return nil
	})
}
