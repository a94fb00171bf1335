// Package models - model sản phẩm (Product) thuộc domain menu.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductModifier là một tùy chọn thêm mà khách có thể chọn cho món.
// Price là phần cộng thêm vào đơn giá khi khách chọn tùy chọn này.
type ProductModifier struct {
	Name  string `json:"name" bson:"name"`
	Price int64  `json:"price" bson:"price"`
}

// Product định nghĩa một món trong thực đơn.
// IsAvailable điều khiển món có hiển thị cho khách đặt hay không,
// bếp tắt món khi hết nguyên liệu mà không cần xóa khỏi thực đơn.
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"text"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       int64              `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category" index:"single"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Modifiers   []ProductModifier  `json:"modifiers,omitempty" bson:"modifiers,omitempty"`
	IsAvailable bool               `json:"isAvailable" bson:"isAvailable" index:"single"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// FindModifier tìm tùy chọn theo tên trong danh sách tùy chọn của món
func (p *Product) FindModifier(name string) (ProductModifier, bool) {
	for _, modifier := range p.Modifiers {
		if modifier.Name == name {
			return modifier, true
		}
	}
	return ProductModifier{}, false
}
