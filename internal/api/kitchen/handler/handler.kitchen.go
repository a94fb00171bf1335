// Package kitchenhdl - handler màn hình bếp: bảng đơn, stream realtime
// và các nút chuyển trạng thái.
package kitchenhdl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	basehdl "github.com/Muslimceek/fastfoodmuslim/internal/api/base/handler"
	kitchensvc "github.com/Muslimceek/fastfoodmuslim/internal/api/kitchen/service"
	orderdto "github.com/Muslimceek/fastfoodmuslim/internal/api/order/dto"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// streamHeartbeatInterval là chu kỳ gửi comment giữ kết nối SSE
const streamHeartbeatInterval = 15 * time.Second

// KitchenHandler xử lý các route của màn hình bếp
type KitchenHandler struct {
	KitchenService *kitchensvc.KitchenService
}

// NewKitchenHandler tạo mới KitchenHandler
func NewKitchenHandler() (*KitchenHandler, error) {
	kitchenService, err := kitchensvc.GetKitchenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get kitchen service: %w", err)
	}
	return &KitchenHandler{KitchenService: kitchenService}, nil
}

// parseOrderIDParam đọc và kiểm tra param :id của route
func parseOrderIDParam(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}

// HandleGetBoard trả về trạng thái bảng bếp hiện tại
func (h *KitchenHandler) HandleGetBoard(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		basehdl.HandleSuccess(c, h.KitchenService.View())
		return nil
	})
}

// HandleAdvance chuyển trạng thái đơn theo intent (Cook, Ready, Problem)
func (h *KitchenHandler) HandleAdvance(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		orderID, err := parseOrderIDParam(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		var input orderdto.AdvanceStatusInput
		if err := json.Unmarshal(c.Body(), &input); err != nil {
			basehdl.HandleError(c, common.NewError(
				common.ErrCodeValidationFormat,
				"Dữ liệu gửi lên không đúng định dạng JSON",
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := basehdl.ValidateStruct(&input); err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		order, err := h.KitchenService.Advance(c.Context(), orderID, &input)
		if err == nil {
			logger.LogOrderAction("advance", orderID.Hex(), c, map[string]interface{}{
				"intent": input.Intent,
				"status": order.Status,
			})
		}
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, order)
		return nil
	})
}

// HandleComplete đánh dấu đơn Ready đã được khách nhận
func (h *KitchenHandler) HandleComplete(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		orderID, err := parseOrderIDParam(c)
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}

		order, err := h.KitchenService.Complete(c.Context(), orderID)
		if err == nil {
			logger.LogOrderAction("complete", orderID.Hex(), c, nil)
		}
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, order)
		return nil
	})
}

// HandleClearAlert tắt chuông báo đơn mới sau khi màn hình bếp đã phát
func (h *KitchenHandler) HandleClearAlert(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		h.KitchenService.ClearAlert()
		basehdl.HandleSuccess(c, h.KitchenService.View())
		return nil
	})
}

// HandleStream mở kết nối SSE đẩy trạng thái bảng bếp theo thời gian thực.
// Client nhận ngay snapshot hiện tại khi kết nối, sau đó nhận mỗi lần bảng
// thay đổi và mỗi nhịp đồng hồ dùng chung của bếp.
func (h *KitchenHandler) HandleStream(c fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	subscriberID, eventCh := h.KitchenService.Hub.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.KitchenService.Hub.Unsubscribe(subscriberID)

		// Snapshot đầu tiên gửi ngay khi kết nối
		initial, err := json.Marshal(h.KitchenService.View())
		if err == nil {
			if writeErr := writeSSEEvent(w, initial); writeErr != nil {
				return
			}
		}

		heartbeat := time.NewTicker(streamHeartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case payload, ok := <-eventCh:
				if !ok {
					return
				}
				if err := writeSSEEvent(w, payload); err != nil {
					logrus.WithFields(logrus.Fields{
						"subscriber_id": subscriberID,
					}).Debug("KitchenHandler: Client đã ngắt kết nối stream")
					return
				}
			case <-heartbeat.C:
				// Comment SSE giữ kết nối qua proxy, client bỏ qua dòng này
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

// writeSSEEvent ghi một event SSE hoàn chỉnh và flush xuống client
func writeSSEEvent(w *bufio.Writer, payload []byte) error {
	if _, err := fmt.Fprintf(w, "event: board\ndata: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
