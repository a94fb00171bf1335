package orderdto

// OrderItemInput một món trong giỏ khi checkout.
// Chỉ nhận productId + quantity + tên tùy chọn, giá được lấy từ thực đơn
// phía server.
type OrderItemInput struct {
	ProductID string   `json:"productId" validate:"required,exists=products"`
	Quantity  int64    `json:"quantity" validate:"required,gt=0,lte=50"`
	Modifiers []string `json:"modifiers,omitempty" validate:"omitempty,max=20,dive,required"`
	Note      string   `json:"note,omitempty" validate:"omitempty,no_xss"`
}

// CheckoutInput đầu vào đặt đơn hàng.
type CheckoutInput struct {
	Items     []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	OrderType string           `json:"orderType" validate:"required,oneof=Dine-in Takeaway"`
	Note      string           `json:"note,omitempty" validate:"omitempty,no_xss"`
}

// AdvanceStatusInput đầu vào chuyển trạng thái đơn từ màn hình bếp.
// Version là version của đơn mà client đang thấy, dùng làm điều kiện ghi.
// Confirm bắt buộc true với intent Problem.
type AdvanceStatusInput struct {
	Intent  string `json:"intent" validate:"required,oneof=Cook Ready Problem"`
	Version int64  `json:"version" validate:"gte=0"`
	Confirm bool   `json:"confirm"`
}

// OrderUpdateInput đầu vào cập nhật ghi chú đơn hàng (CRUD quản trị).
type OrderUpdateInput struct {
	Note string `json:"note,omitempty" validate:"omitempty,no_xss"`
}
