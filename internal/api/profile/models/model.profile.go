// Package models chứa các model thuộc domain profile.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserProfile là hồ sơ mở rộng của khách hàng: món yêu thích và
// thông tin giao nhận. Tách khỏi User để collection users chỉ giữ
// thông tin đăng nhập và phân quyền.
type UserProfile struct {
	ID                 primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	UserID             primitive.ObjectID   `json:"userId" bson:"userId" index:"unique"`              // Chủ hồ sơ, mỗi user một hồ sơ
	FavoriteProductIDs []primitive.ObjectID `json:"favoriteProductIds" bson:"favoriteProductIds"`     // Danh sách món yêu thích
	DisplayName        string               `json:"displayName,omitempty" bson:"displayName,omitempty"` // Tên hiển thị trên vé
	Note               string               `json:"note,omitempty" bson:"note,omitempty"`             // Ghi chú mặc định cho đơn (dị ứng, khẩu vị)
	CreatedAt          int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt          int64                `json:"updatedAt" bson:"updatedAt"`
}
