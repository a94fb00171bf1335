package worker

import (
	"context"
	"time"

	reportsvc "github.com/Muslimceek/fastfoodmuslim/internal/api/report/service"
	"github.com/Muslimceek/fastfoodmuslim/internal/logger"
)

// StatsRefreshWorker giữ cache thống kê dashboard luôn ấm: mỗi chu kỳ
// kiểm tra cờ dirty do event đơn hàng bật lên và tính lại số liệu nếu cần.
type StatsRefreshWorker struct {
	reportService *reportsvc.ReportService
	interval      time.Duration // Khoảng thời gian giữa các lần kiểm tra
}

// NewStatsRefreshWorker tạo mới StatsRefreshWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần kiểm tra (mặc định: 15 giây)
func NewStatsRefreshWorker(interval time.Duration) (*StatsRefreshWorker, error) {
	reportService, err := reportsvc.GetReportService()
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &StatsRefreshWorker{
		reportService: reportService,
		interval:      interval,
	}, nil
}

// Start chạy worker trong vòng lặp: mỗi chu kỳ tính lại số liệu nếu dirty
func (w *StatsRefreshWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("📊 [STATS_REFRESH] Starting Stats Refresh Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("📊 [STATS_REFRESH] Stats Refresh Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("📊 [STATS_REFRESH] Panic khi tính lại thống kê, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				if err := w.reportService.RefreshIfDirty(ctx); err != nil {
					log.WithError(err).Warn("📊 [STATS_REFRESH] Tính lại thống kê thất bại, sẽ thử lại")
				}
			}()
		}
	}
}
