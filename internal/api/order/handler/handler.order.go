// Package orderhdl - handler đơn hàng.
package orderhdl

import (
	"fmt"

	basehdl "github.com/Muslimceek/fastfoodmuslim/internal/api/base/handler"
	orderdto "github.com/Muslimceek/fastfoodmuslim/internal/api/order/dto"
	models "github.com/Muslimceek/fastfoodmuslim/internal/api/order/models"
	ordersvc "github.com/Muslimceek/fastfoodmuslim/internal/api/order/service"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderHandler xử lý các route liên quan đến đơn hàng
type OrderHandler struct {
	*basehdl.BaseHandler[models.Order, orderdto.CheckoutInput, orderdto.OrderUpdateInput]
	OrderService *ordersvc.OrderService
}

// NewOrderHandler tạo mới OrderHandler
func NewOrderHandler() (*OrderHandler, error) {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %w", err)
	}
	return &OrderHandler{
		BaseHandler:  basehdl.NewBaseHandler[models.Order, orderdto.CheckoutInput, orderdto.OrderUpdateInput](orderService),
		OrderService: orderService,
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

// HandleCheckout đặt đơn hàng mới từ giỏ của khách
func (h *OrderHandler) HandleCheckout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input orderdto.CheckoutInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		order, err := h.OrderService.Checkout(c.Context(), userID, &input)
		if err == nil {
			logger.LogOrderAction("checkout", order.ID.Hex(), c, map[string]interface{}{
				"ticket": order.TicketNumber,
				"total":  order.TotalPrice,
			})
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleFindMyOrders trả về đơn hàng của khách đang đăng nhập
func (h *OrderHandler) HandleFindMyOrders(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		orders, err := h.OrderService.FindMyOrders(c.Context(), userID)
		h.HandleResponse(c, orders, err)
		return nil
	})
}

// HandleCancelOrder hủy đơn hàng đang chờ của khách
func (h *OrderHandler) HandleCancelOrder(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := currentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

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

		order, err := h.OrderService.CancelOrder(c.Context(), utility.String2ObjectID(id), userID)
		if err == nil {
			logger.LogOrderAction("cancel", id, c, nil)
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}
