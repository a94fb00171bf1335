package ordersvc

import (
	"testing"

	menumodels "github.com/Muslimceek/fastfoodmuslim/internal/api/menu/models"
)

func TestNewTicketNumber_TrongKhoang(t *testing.T) {
	// Số vé luôn là 4 chữ số để khách dễ đối chiếu khi nhận món
	for i := 0; i < 1000; i++ {
		n := newTicketNumber()
		if n < 1000 || n > 9999 {
			t.Fatalf("newTicketNumber() = %d, muốn trong khoảng [1000, 9999]", n)
		}
	}
}

func TestResolveModifiers(t *testing.T) {
	product := &menumodels.Product{
		Name:  "Burger bò",
		Price: 48000,
		Modifiers: []menumodels.ProductModifier{
			{Name: "Thêm phô mai", Price: 8000},
			{Name: "Thêm trứng", Price: 6000},
		},
	}

	// Giá tùy chọn lấy từ thực đơn, không tin giá do client gửi
	modifiers, err := resolveModifiers(product, []string{"Thêm phô mai", "Thêm trứng"})
	if err != nil {
		t.Fatalf("resolveModifiers() lỗi không mong muốn: %v", err)
	}
	if len(modifiers) != 2 {
		t.Fatalf("resolveModifiers() trả về %d tùy chọn, muốn 2", len(modifiers))
	}
	if modifiers[0].Name != "Thêm phô mai" || modifiers[0].Price != 8000 {
		t.Errorf("resolveModifiers()[0] = %+v, muốn {Thêm phô mai 8000}", modifiers[0])
	}
	if modifiers[1].Name != "Thêm trứng" || modifiers[1].Price != 6000 {
		t.Errorf("resolveModifiers()[1] = %+v, muốn {Thêm trứng 6000}", modifiers[1])
	}

	// Tùy chọn không có trong thực đơn của món bị từ chối
	if _, err := resolveModifiers(product, []string{"Thêm tôm hùm"}); err == nil {
		t.Error("resolveModifiers() với tùy chọn không tồn tại phải trả lỗi")
	}

	// Không chọn tùy chọn nào là hợp lệ
	modifiers, err = resolveModifiers(product, nil)
	if err != nil {
		t.Fatalf("resolveModifiers(nil) lỗi không mong muốn: %v", err)
	}
	if modifiers != nil {
		t.Errorf("resolveModifiers(nil) = %+v, muốn nil", modifiers)
	}
}
