// Package dto chứa các cấu trúc vào/ra của domain profile.
package dto

// ProfileUpdateInput là dữ liệu cập nhật hồ sơ khách hàng
type ProfileUpdateInput struct {
	DisplayName string `json:"displayName,omitempty" validate:"omitempty,max=100,no_xss"`
	Note        string `json:"note,omitempty" validate:"omitempty,max=500,no_xss"`
}

// FavoriteInput là dữ liệu thêm/xóa món yêu thích
type FavoriteInput struct {
	ProductID string `json:"productId" validate:"required,exists=products"`
}
