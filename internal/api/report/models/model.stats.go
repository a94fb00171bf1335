// Package models chứa các model thuộc domain report.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DailyStats là số liệu tổng hợp trong ngày cho dashboard quản trị
type DailyStats struct {
	Date            string  `json:"date"`            // Ngày thống kê, định dạng YYYY-MM-DD
	TotalOrders     int64   `json:"totalOrders"`     // Tổng số đơn đặt trong ngày
	TotalRevenue    int64   `json:"totalRevenue"`    // Doanh thu, chỉ tính đơn Completed
	PendingOrders   int64   `json:"pendingOrders"`   // Số đơn đang chờ hoặc đang nấu
	CompletedOrders int64   `json:"completedOrders"` // Số đơn đã hoàn tất
	ProblemOrders   int64   `json:"problemOrders"`   // Số đơn gặp sự cố (đã hủy)
	AvgOrderValue   float64 `json:"avgOrderValue"`   // Giá trị trung bình của đơn Completed
	GeneratedAt     int64   `json:"generatedAt"`     // Thời điểm tính số liệu (UnixMilli)
}

// TopProduct là một món trong bảng xếp hạng bán chạy
type TopProduct struct {
	ProductID primitive.ObjectID `json:"productId" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	Revenue   int64              `json:"revenue" bson:"revenue"`
}
