// Package reporthdl - handler thống kê cho dashboard quản trị.
package reporthdl

import (
	"fmt"

	basehdl "github.com/Muslimceek/fastfoodmuslim/internal/api/base/handler"
	reportsvc "github.com/Muslimceek/fastfoodmuslim/internal/api/report/service"

	"github.com/gofiber/fiber/v3"
)

// ReportHandler xử lý các route thống kê
type ReportHandler struct {
	ReportService *reportsvc.ReportService
}

// NewReportHandler tạo mới ReportHandler
func NewReportHandler() (*ReportHandler, error) {
	reportService, err := reportsvc.GetReportService()
	if err != nil {
		return nil, fmt.Errorf("failed to get report service: %w", err)
	}
	return &ReportHandler{ReportService: reportService}, nil
}

// HandleDailyStats trả về số liệu tổng hợp của ngày hôm nay
func (h *ReportHandler) HandleDailyStats(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		stats, err := h.ReportService.DailyStats(c.Context())
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, stats)
		return nil
	})
}

// HandleTopProducts trả về các món bán chạy nhất hôm nay
func (h *ReportHandler) HandleTopProducts(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		products, err := h.ReportService.TopProducts(c.Context())
		if err != nil {
			basehdl.HandleError(c, err)
			return nil
		}
		basehdl.HandleSuccess(c, products)
		return nil
	})
}
