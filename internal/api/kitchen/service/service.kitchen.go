package kitchensvc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Muslimceek/fastfoodmuslim/internal/api/events"
	"github.com/Muslimceek/fastfoodmuslim/internal/api/kitchen/engine"
	orderdto "github.com/Muslimceek/fastfoodmuslim/internal/api/order/dto"
	ordermodels "github.com/Muslimceek/fastfoodmuslim/internal/api/order/models"
	ordersvc "github.com/Muslimceek/fastfoodmuslim/internal/api/order/service"
	"github.com/Muslimceek/fastfoodmuslim/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Giới hạn backoff khi kết nối lại change stream
const (
	watchBackoffInitial = 1 * time.Second
	watchBackoffMax     = 30 * time.Second
)

// KitchenService giữ trạng thái bảng bếp trong bộ nhớ và phát realtime
// cho các màn hình bếp đang kết nối
type KitchenService struct {
	Board        *engine.Board
	Hub          *Hub
	orderService *ordersvc.OrderService
}

var (
	kitchenService     *KitchenService
	kitchenServiceOnce sync.Once
	kitchenServiceErr  error
)

// GetKitchenService trả về instance singleton của KitchenService.
// Bảng bếp là trạng thái chia sẻ: handler, worker đồng hồ và watcher
// đều phải nhìn cùng một Board.
func GetKitchenService() (*KitchenService, error) {
	kitchenServiceOnce.Do(func() {
		orderService, err := ordersvc.NewOrderService()
		if err != nil {
			kitchenServiceErr = fmt.Errorf("failed to create order service: %w", err)
			return
		}

		kitchenService = &KitchenService{
			Board:        engine.NewBoard(),
			Hub:          NewHub(),
			orderService: orderService,
		}

		// Ghi trong cùng process (checkout, hủy đơn, chuyển trạng thái) làm
		// mới bảng ngay qua event nội bộ, không cần chờ change stream
		events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
			if e.CollectionName != global.MongoDB_ColNames.Orders {
				return
			}
			if err := kitchenService.RefreshSnapshot(context.Background()); err != nil {
				logrus.WithError(err).Warn("KitchenService: Làm mới bảng bếp theo event thất bại")
			}
		})
	})
	return kitchenService, kitchenServiceErr
}

// View trả về trạng thái bảng bếp tại thời điểm hiện tại
func (s *KitchenService) View() engine.BoardView {
	return s.Board.View(time.Now())
}

// RefreshSnapshot truy vấn lại toàn bộ đơn active, thay thế snapshot
// trên bảng và phát trạng thái mới cho các màn hình đang kết nối
func (s *KitchenService) RefreshSnapshot(ctx context.Context) error {
	orders, err := s.orderService.FindActive(ctx)
	if err != nil {
		return err
	}
	s.Board.ApplySnapshot(orders)
	s.BroadcastBoard()
	return nil
}

// BroadcastBoard phát trạng thái bảng hiện tại đến mọi subscriber
func (s *KitchenService) BroadcastBoard() {
	view := s.View()
	payload, err := json.Marshal(view)
	if err != nil {
		logrus.WithError(err).Error("KitchenService: Marshal trạng thái bảng thất bại")
		return
	}
	s.Hub.Broadcast(payload)
}

// Advance chuyển trạng thái đơn theo intent từ màn hình bếp.
// Trạng thái lạc quan được ghi lên bảng ngay khi nhân viên bấm nút,
// trước khi server xác nhận. Nếu server từ chối thì không rollback,
// snapshot đầy đủ kế tiếp sẽ đưa đơn về trạng thái thật.
func (s *KitchenService) Advance(ctx context.Context, orderID primitive.ObjectID, input *orderdto.AdvanceStatusInput) (*ordermodels.Order, error) {
	order, err := s.orderService.FindOneById(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if nextStatus, transitionErr := ordermodels.NextStatus(order.Status, input.Intent); transitionErr == nil {
		if ordermodels.ValidateIntentConfirm(input.Intent, input.Confirm) == nil {
			s.Board.ApplyLocal(orderID.Hex(), nextStatus)
			s.BroadcastBoard()
		}
	}

	return s.orderService.AdvanceStatus(ctx, orderID, input)
}

// Complete đánh dấu đơn Ready đã được khách nhận
func (s *KitchenService) Complete(ctx context.Context, orderID primitive.ObjectID) (*ordermodels.Order, error) {
	updated, err := s.orderService.MarkCompleted(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.Board.ApplyLocal(orderID.Hex(), ordermodels.StatusCompleted)
	s.BroadcastBoard()
	return updated, nil
}

// ClearAlert tắt chuông báo đơn mới sau khi màn hình bếp đã phát
func (s *KitchenService) ClearAlert() {
	s.Board.ClearAlert()
	s.BroadcastBoard()
}

// WatchOrders theo dõi change stream của collection orders và làm mới
// bảng bếp mỗi khi có thay đổi. Mất kết nối thì đánh dấu Disconnected,
// giữ nguyên snapshot cuối cùng và thử kết nối lại với backoff.
// Hàm chạy blocking, gọi trong goroutine riêng và dừng khi ctx bị hủy.
func (s *KitchenService) WatchOrders(ctx context.Context) {
	backoff := watchBackoffInitial

	for {
		if ctx.Err() != nil {
			return
		}

		stream, err := s.openStream(ctx)
		if err != nil {
			s.markDisconnected(err, backoff)
			if !sleepWithContext(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}

		// Kết nối thành công: đồng bộ lại toàn bộ trước khi nghe event
		backoff = watchBackoffInitial
		if err := s.RefreshSnapshot(ctx); err != nil {
			logrus.WithError(err).Warn("KitchenService: Đồng bộ snapshot sau khi kết nối thất bại")
		}
		logrus.Info("KitchenService: Đang theo dõi thay đổi đơn hàng qua change stream")

		for stream.Next(ctx) {
			if err := s.RefreshSnapshot(ctx); err != nil {
				logrus.WithError(err).Warn("KitchenService: Làm mới bảng bếp theo change stream thất bại")
			}
		}

		streamErr := stream.Err()
		_ = stream.Close(context.Background())

		if ctx.Err() != nil {
			return
		}

		s.markDisconnected(streamErr, backoff)
		if !sleepWithContext(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff)
	}
}

// openStream mở change stream trên collection orders, chỉ nghe các thao tác
// làm thay đổi nội dung bảng bếp
func (s *KitchenService) openStream(ctx context.Context) (*mongo.ChangeStream, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"operationType": bson.M{"$in": bson.A{"insert", "update", "replace", "delete"}},
		}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	return s.orderService.GetCollection().Watch(ctx, pipeline, opts)
}

// markDisconnected bật cờ Disconnected trên bảng và phát cho client biết
func (s *KitchenService) markDisconnected(err error, backoff time.Duration) {
	logrus.WithFields(logrus.Fields{
		"error":       err,
		"retry_after": backoff.String(),
	}).Warn("KitchenService: Mất kết nối change stream, sẽ thử lại")

	s.Board.SetDisconnected(true)
	s.BroadcastBoard()
}

// sleepWithContext chờ hết duration, trả về false nếu ctx bị hủy trước đó
func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// nextBackoff nhân đôi thời gian chờ, chạm trần thì giữ nguyên
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > watchBackoffMax {
		return watchBackoffMax
	}
	return next
}
