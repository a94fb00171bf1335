package menudto

// ProductModifierInput một tùy chọn thêm của món (thêm phô mai, size lớn, ...).
// Price là phần cộng thêm vào đơn giá, cho phép 0 với tùy chọn miễn phí.
type ProductModifierInput struct {
	Name  string `json:"name" validate:"required,no_xss"`
	Price int64  `json:"price" validate:"gte=0"`
}

// ProductCreateInput đầu vào tạo món mới trong thực đơn.
type ProductCreateInput struct {
	Name        string                 `json:"name" validate:"required,no_xss"`
	Description string                 `json:"description,omitempty" validate:"omitempty,no_xss"`
	Price       int64                  `json:"price" validate:"required,gt=0"`
	Category    string                 `json:"category" validate:"required,no_xss"`
	ImageURL    string                 `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Modifiers   []ProductModifierInput `json:"modifiers,omitempty" validate:"omitempty,max=20,dive"`
	IsAvailable bool                   `json:"isAvailable"`
}

// ProductUpdateInput đầu vào cập nhật món trong thực đơn.
type ProductUpdateInput struct {
	Name        string                 `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description string                 `json:"description,omitempty" validate:"omitempty,no_xss"`
	Price       int64                  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category    string                 `json:"category,omitempty" validate:"omitempty,no_xss"`
	ImageURL    string                 `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Modifiers   []ProductModifierInput `json:"modifiers,omitempty" validate:"omitempty,max=20,dive"`
}

// ProductSetAvailabilityInput đầu vào bật/tắt món.
// Dùng con trỏ để phân biệt false với không gửi field.
type ProductSetAvailabilityInput struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}
