// Package profilehdl - handler hồ sơ khách hàng.
package profilehdl

import (
	"fmt"

	basehdl "github.com/Muslimceek/fastfoodmuslim/internal/api/base/handler"
	basesvc "github.com/Muslimceek/fastfoodmuslim/internal/api/base/service"
	profiledto "github.com/Muslimceek/fastfoodmuslim/internal/api/profile/dto"
	models "github.com/Muslimceek/fastfoodmuslim/internal/api/profile/models"
	profilesvc "github.com/Muslimceek/fastfoodmuslim/internal/api/profile/service"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileHandler xử lý các route hồ sơ khách hàng
type ProfileHandler struct {
	*basehdl.BaseHandler[models.UserProfile, profiledto.ProfileUpdateInput, profiledto.ProfileUpdateInput]
	ProfileService *profilesvc.ProfileService
}

// NewProfileHandler tạo mới ProfileHandler
func NewProfileHandler() (*ProfileHandler, error) {
	profileService, err := profilesvc.NewProfileService()
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}
	return &ProfileHandler{
		BaseHandler:    basehdl.NewBaseHandler[models.UserProfile, profiledto.ProfileUpdateInput, profiledto.ProfileUpdateInput](profileService),
		ProfileService: profileService,
	}, nil
}

// currentUserID lấy ObjectID của người dùng đang đăng nhập từ context
func currentUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	return utility.String2ObjectID(userIDStr), nil
}

// HandleGetMyProfile trả về hồ sơ của khách đang đăng nhập, tự tạo nếu chưa có
func (h *ProfileHandler) HandleGetMyProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		profile, err := h.ProfileService.FindOrCreate(c.Context(), userID)
		h.HandleResponse(c, profile, err)
		return nil
	})
}

// HandleUpdateMyProfile cập nhật thông tin hiển thị của hồ sơ
func (h *ProfileHandler) HandleUpdateMyProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input profiledto.ProfileUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		setData := &basesvc.UpdateData{Set: map[string]interface{}{}}
		if input.DisplayName != "" {
			setData.Set["displayName"] = input.DisplayName
		}
		if input.Note != "" {
			setData.Set["note"] = input.Note
		}
		if len(setData.Set) == 0 {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		profile, err := h.ProfileService.UpdateInfo(c.Context(), userID, setData)
		h.HandleResponse(c, profile, err)
		return nil
	})
}

// parseFavoriteInput đọc và kiểm tra dữ liệu thêm/xóa món yêu thích
func (h *ProfileHandler) parseFavoriteInput(c fiber.Ctx) (*profiledto.FavoriteInput, error) {
	var input profiledto.FavoriteInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return nil, err
	}
	if err := h.ValidateInput(&input); err != nil {
		return nil, err
	}
	return &input, nil
}

// HandleAddFavorite thêm món vào danh sách yêu thích
func (h *ProfileHandler) HandleAddFavorite(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input, err := h.parseFavoriteInput(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		profile, err := h.ProfileService.AddFavorite(c.Context(), userID, utility.String2ObjectID(input.ProductID))
		h.HandleResponse(c, profile, err)
		return nil
	})
}

// HandleRemoveFavorite xóa món khỏi danh sách yêu thích
func (h *ProfileHandler) HandleRemoveFavorite(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		input, err := h.parseFavoriteInput(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		profile, err := h.ProfileService.RemoveFavorite(c.Context(), userID, utility.String2ObjectID(input.ProductID))
		h.HandleResponse(c, profile, err)
		return nil
	})
}
