package worker

import (
	"context"

	kitchensvc "github.com/Muslimceek/fastfoodmuslim/internal/api/kitchen/service"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
)

// KitchenWatchWorker theo dõi change stream của collection orders và làm mới
// bảng bếp mỗi khi đơn hàng thay đổi. Mất kết nối thì bảng chuyển sang trạng
// thái Disconnected và worker tự kết nối lại với backoff.
type KitchenWatchWorker struct {
	kitchenService *kitchensvc.KitchenService
}

// NewKitchenWatchWorker tạo mới KitchenWatchWorker
func NewKitchenWatchWorker() (*KitchenWatchWorker, error) {
	kitchenService, err := kitchensvc.GetKitchenService()
	if err != nil {
		return nil, err
	}
	return &KitchenWatchWorker{kitchenService: kitchenService}, nil
}

// Start chạy worker blocking cho đến khi ctx bị hủy
func (w *KitchenWatchWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()
	log.Info("👁️ [KITCHEN_WATCH] Starting Kitchen Watch Worker...")

	w.kitchenService.WatchOrders(ctx)

	log.Info("👁️ [KITCHEN_WATCH] Kitchen Watch Worker stopped")
}
