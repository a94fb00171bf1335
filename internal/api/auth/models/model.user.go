// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các vai trò trong hệ thống
const (
	RoleAdmin    = "admin"    // Quản trị viên toàn hệ thống
	RoleManager  = "manager"  // Quản lý cửa hàng (dashboard, menu, báo cáo)
	RoleKitchen  = "kitchen"  // Nhân viên bếp (màn hình bếp, cập nhật trạng thái đơn)
	RoleCustomer = "customer" // Khách hàng (đặt món, theo dõi đơn)
)

// AllRoles danh sách tất cả vai trò hợp lệ
var AllRoles = []string{RoleAdmin, RoleManager, RoleKitchen, RoleCustomer}

// User định nghĩa mô hình người dùng
// Token chứa token xác thực mới nhất của người dùng
// Tokens chứa danh sách các token, mỗi thiết bị khác nhau sẽ có một token riêng để xác thực (bằng hwid)
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email" index:"unique"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Salt      string             `json:"-" bson:"salt,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty" index:"unique,sparse"`
	Role      string             `json:"role" bson:"role" index:"single"`
	Token     string             `json:"token" bson:"token"`
	Tokens    []Token            `json:"-" bson:"tokens"`
	IsBlock   bool               `json:"-" bson:"isBlock"`
	BlockNote string             `json:"-" bson:"blockNote"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
