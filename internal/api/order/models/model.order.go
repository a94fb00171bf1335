// Package models - model đơn hàng (Order) thuộc domain order.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Muslimceek/fastfoodmuslim/internal/common"
)

// Các trạng thái của đơn hàng
const (
	StatusPending   = "Pending"   // Đã đặt, chờ bếp nhận
	StatusCooking   = "Cooking"   // Bếp đang chế biến
	StatusReady     = "Ready"     // Sẵn sàng giao cho khách
	StatusCompleted = "Completed" // Khách đã nhận, hoàn tất
	StatusCancelled = "Cancelled" // Đã hủy
)

// ActiveStatuses là các trạng thái hiển thị trên bảng bếp
var ActiveStatuses = []string{StatusPending, StatusCooking}

// Các intent chuyển trạng thái từ màn hình bếp
const (
	IntentCook    = "Cook"    // Nhận đơn vào chế biến
	IntentReady   = "Ready"   // Hoàn tất chế biến
	IntentProblem = "Problem" // Báo sự cố, trả đơn về hàng chờ
)

// Hình thức phục vụ của đơn hàng
const (
	OrderTypeDineIn   = "Dine-in"  // Ăn tại chỗ
	OrderTypeTakeaway = "Takeaway" // Mang đi
)

// Modifier là một tùy chọn thêm vào món (thêm phô mai, size lớn, ...).
// Price là phần cộng thêm vào đơn giá, snapshot tại thời điểm đặt.
type Modifier struct {
	Name  string `json:"name" bson:"name"`
	Price int64  `json:"price" bson:"price"`
}

// OrderItem là một món trong đơn hàng.
// Name và Price là snapshot tại thời điểm đặt, không đổi khi thực đơn thay đổi.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Price     int64              `json:"price" bson:"price"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	Modifiers []Modifier         `json:"modifiers,omitempty" bson:"modifiers,omitempty"`
	Note      string             `json:"note,omitempty" bson:"note,omitempty"`
}

// UnitPrice trả về đơn giá của món đã cộng các tùy chọn thêm
func (i *OrderItem) UnitPrice() int64 {
	price := i.Price
	for _, modifier := range i.Modifiers {
		price += modifier.Price
	}
	return price
}

// Order định nghĩa một đơn hàng.
// Version tăng mỗi lần chuyển trạng thái, dùng làm điều kiện ghi để hai
// nhân viên bếp không thể cùng nhận một đơn.
type Order struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TicketNumber int64              `json:"ticketNumber" bson:"ticketNumber" index:"single"`
	UserID       primitive.ObjectID `json:"userId" bson:"userId" index:"single"`
	OrderType    string             `json:"orderType" bson:"orderType"`
	Status       string             `json:"status" bson:"status" index:"compound:board"`
	Items        []OrderItem        `json:"items" bson:"items"`
	TotalPrice   int64              `json:"totalPrice" bson:"totalPrice"`
	Note         string             `json:"note,omitempty" bson:"note,omitempty"`
	Version      int64              `json:"version" bson:"version"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt" index:"compound:board"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}

// TotalQuantity trả về tổng số phần ăn trong đơn
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// IsActive kiểm tra đơn có đang nằm trên bảng bếp không
func (o *Order) IsActive() bool {
	return o.Status == StatusPending || o.Status == StatusCooking
}

// NextStatus trả về trạng thái đích của một intent từ trạng thái hiện tại.
// Trả về ErrInvalidTransition nếu intent không hợp lệ với trạng thái hiện tại.
func NextStatus(current string, intent string) (string, error) {
	switch intent {
	case IntentCook:
		if current == StatusPending {
			return StatusCooking, nil
		}
	case IntentReady:
		// Bếp có thể hoàn tất trực tiếp từ hàng chờ khi món làm sẵn
		if current == StatusPending || current == StatusCooking {
			return StatusReady, nil
		}
	case IntentProblem:
		// Sự cố trả đơn về hàng chờ để làm lại
		if current == StatusCooking || current == StatusReady {
			return StatusPending, nil
		}
	}
	return "", common.ErrInvalidTransition
}

// ValidateIntentConfirm kiểm tra yêu cầu xác nhận của intent.
// Problem trả đơn về hàng chờ nên bắt buộc confirm=true trước khi thực hiện.
func ValidateIntentConfirm(intent string, confirm bool) error {
	if intent == IntentProblem && !confirm {
		return common.ErrConfirmRequired
	}
	return nil
}

// ClassifyWriteConflict phân loại lý do một thao tác ghi có điều kiện thất bại:
// trạng thái trong DB đã khác trạng thái client thấy thì là chuyển trạng thái
// không hợp lệ, trạng thái vẫn vậy thì chỉ lệch version.
func ClassifyWriteConflict(seenStatus string, currentStatus string) error {
	if currentStatus != seenStatus {
		return common.ErrInvalidTransition
	}
	return common.ErrVersionConflict
}
