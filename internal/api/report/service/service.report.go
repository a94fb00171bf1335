// Package reportsvc - service thống kê cho dashboard quản trị.
package reportsvc

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Muslimceek/fastfoodmuslim/internal/api/events"
	ordermodels "github.com/Muslimceek/fastfoodmuslim/internal/api/order/models"
	models "github.com/Muslimceek/fastfoodmuslim/internal/api/report/models"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/global"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Số liệu được cache trong bộ nhớ, đơn hàng thay đổi thì cache bị xóa
// qua event nội bộ nên dashboard luôn thấy số mới sau mỗi thao tác ghi
const (
	statsCacheTTL    = 30 * time.Second
	statsCacheKey    = "report:daily_stats"
	topProductsKey   = "report:top_products"
	topProductsLimit = 10
)

// ReportService là cấu trúc chứa các phương thức thống kê đơn hàng
type ReportService struct {
	orderCollection *mongo.Collection
	cache           *utility.Cache
	dirty           atomic.Bool // Đơn hàng đã thay đổi từ lần tính gần nhất
}

var (
	reportService     *ReportService
	reportServiceOnce sync.Once
	reportServiceErr  error
)

// GetReportService trả về instance singleton của ReportService
func GetReportService() (*ReportService, error) {
	reportServiceOnce.Do(func() {
		orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
		if !exist {
			reportServiceErr = fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
			return
		}

		reportService = &ReportService{
			orderCollection: orderCollection,
			cache:           utility.NewCache(statsCacheTTL, statsCacheTTL),
		}

		// Đơn hàng thay đổi thì số liệu cũ không còn đúng nữa
		events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
			if e.CollectionName != global.MongoDB_ColNames.Orders {
				return
			}
			reportService.cache.Delete(statsCacheKey)
			reportService.cache.Delete(topProductsKey)
			reportService.dirty.Store(true)
		})
	})
	return reportService, reportServiceErr
}

// startOfToday trả về UnixMilli của 0h hôm nay theo giờ local
func startOfToday(now time.Time) int64 {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).UnixMilli()
}

// DailyStats trả về số liệu tổng hợp của ngày hôm nay.
// Kết quả được cache, đọc lại trong TTL không chạm database.
func (s *ReportService) DailyStats(ctx context.Context) (*models.DailyStats, error) {
	if cached, ok := s.cache.Get(statsCacheKey); ok {
		if stats, ok := cached.(*models.DailyStats); ok {
			return stats, nil
		}
	}

	now := time.Now()
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"createdAt": bson.M{"$gte": startOfToday(now)},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$status",
			"count":      bson.M{"$sum": 1},
			"totalPrice": bson.M{"$sum": "$totalPrice"},
		}}},
	}

	cursor, err := s.orderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status     string `bson:"_id"`
		Count      int64  `bson:"count"`
		TotalPrice int64  `bson:"totalPrice"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	stats := &models.DailyStats{
		Date:        now.Format("2006-01-02"),
		GeneratedAt: now.UnixMilli(),
	}
	for _, row := range rows {
		stats.TotalOrders += row.Count
		switch row.Status {
		case ordermodels.StatusPending, ordermodels.StatusCooking:
			stats.PendingOrders += row.Count
		case ordermodels.StatusCompleted:
			stats.CompletedOrders += row.Count
			stats.TotalRevenue += row.TotalPrice
		case ordermodels.StatusCancelled:
			stats.ProblemOrders += row.Count
		}
	}
	if stats.CompletedOrders > 0 {
		stats.AvgOrderValue = float64(stats.TotalRevenue) / float64(stats.CompletedOrders)
	}

	s.cache.Set(statsCacheKey, stats)

	logrus.WithFields(logrus.Fields{
		"total_orders":  stats.TotalOrders,
		"total_revenue": stats.TotalRevenue,
	}).Debug("ReportService: Tính lại số liệu trong ngày")
	return stats, nil
}

// TopProducts trả về các món bán chạy nhất hôm nay theo số phần đã bán,
// chỉ tính đơn Completed
func (s *ReportService) TopProducts(ctx context.Context) ([]models.TopProduct, error) {
	if cached, ok := s.cache.Get(topProductsKey); ok {
		if products, ok := cached.([]models.TopProduct); ok {
			return products, nil
		}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"createdAt": bson.M{"$gte": startOfToday(time.Now())},
			"status":    ordermodels.StatusCompleted,
		}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      "$items.productId",
			"name":     bson.M{"$first": "$items.name"},
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "quantity", Value: -1}}}},
		bson.D{{Key: "$limit", Value: topProductsLimit}},
	}

	cursor, err := s.orderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	products := make([]models.TopProduct, 0, topProductsLimit)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	s.cache.Set(topProductsKey, products)
	return products, nil
}

// RefreshIfDirty tính lại số liệu khi có đơn hàng thay đổi từ lần tính
// gần nhất, để dashboard đọc cache ấm thay vì chờ aggregation.
// Worker thống kê gọi định kỳ.
func (s *ReportService) RefreshIfDirty(ctx context.Context) error {
	if !s.dirty.Swap(false) {
		return nil
	}
	if _, err := s.DailyStats(ctx); err != nil {
		s.dirty.Store(true)
		return err
	}
	if _, err := s.TopProducts(ctx); err != nil {
		s.dirty.Store(true)
		return err
	}
	return nil
}
