// Package menuhdl - handler thực đơn.
package menuhdl

import (
	"fmt"

	basehdl "github.com/Muslimceek/fastfoodmuslim/internal/api/base/handler"
	menudto "github.com/Muslimceek/fastfoodmuslim/internal/api/menu/dto"
	models "github.com/Muslimceek/fastfoodmuslim/internal/api/menu/models"
	menusvc "github.com/Muslimceek/fastfoodmuslim/internal/api/menu/service"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductHandler xử lý các route liên quan đến thực đơn
type ProductHandler struct {
	*basehdl.BaseHandler[models.Product, menudto.ProductCreateInput, menudto.ProductUpdateInput]
	ProductService *menusvc.ProductService
}

// NewProductHandler tạo mới ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := menusvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}
	return &ProductHandler{
		BaseHandler:    basehdl.NewBaseHandler[models.Product, menudto.ProductCreateInput, menudto.ProductUpdateInput](productService),
		ProductService: productService,
	}, nil
}

// HandleFindAvailable trả về các món đang mở bán cho khách đặt.
// Query param category (tùy chọn) để lọc theo danh mục.
func (h *ProductHandler) HandleFindAvailable(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		category := c.Query("category", "")
		products, err := h.ProductService.FindAvailable(c.Context(), category)
		h.HandleResponse(c, products, err)
		return nil
	})
}

// HandleSetAvailability bật/tắt món trong thực đơn (bếp hoặc quản lý)
func (h *ProductHandler) HandleSetAvailability(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id := c.Params("id")
		if !primitive.IsValidObjectID(id) {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		var input menudto.ProductSetAvailabilityInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		product, err := h.ProductService.SetAvailability(c.Context(), utility.String2ObjectID(id), *input.IsAvailable)
		if err == nil {
			logger.LogAction("product_toggle", c, map[string]interface{}{
				"product_id":  id,
				"isAvailable": *input.IsAvailable,
			})
		}
		h.HandleResponse(c, product, err)
		return nil
	})
}
