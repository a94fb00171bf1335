package worker

import (
	"context"
	"time"

	kitchensvc "github.com/Muslimceek/fastfoodmuslim/internal/api/kitchen/service"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
)

// KitchenClockWorker là đồng hồ dùng chung của bảng bếp: mỗi nhịp phát lại
// trạng thái bảng cho mọi màn hình đang kết nối để độ khẩn cấp và thời gian
// chờ của tất cả đơn cùng nhảy một lúc, không lệch nhau giữa các màn hình.
type KitchenClockWorker struct {
	kitchenService *kitchensvc.KitchenService
	interval       time.Duration // Chu kỳ nhịp đồng hồ (mặc định: 1 giây)
}

// NewKitchenClockWorker tạo mới KitchenClockWorker.
// Tham số:
//   - interval: Chu kỳ nhịp đồng hồ (mặc định: 1 giây)
func NewKitchenClockWorker(interval time.Duration) (*KitchenClockWorker, error) {
	kitchenService, err := kitchensvc.GetKitchenService()
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &KitchenClockWorker{
		kitchenService: kitchenService,
		interval:       interval,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi nhịp phát trạng thái bảng hiện tại.
// Không có màn hình nào kết nối thì bỏ qua nhịp, không marshal vô ích.
func (w *KitchenClockWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("⏱️ [KITCHEN_CLOCK] Starting Kitchen Clock Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("⏱️ [KITCHEN_CLOCK] Kitchen Clock Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("⏱️ [KITCHEN_CLOCK] Panic khi phát nhịp đồng hồ, sẽ tiếp tục ở nhịp tiếp theo")
					}
				}()

				if w.kitchenService.Hub.Count() == 0 {
					return
				}
				w.kitchenService.BroadcastBoard()
			}()
		}
	}
}
