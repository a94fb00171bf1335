// Package models - test quy tắc chuyển trạng thái đơn hàng.
package models

import (
	"errors"
	"testing"

	"github.com/Muslimceek/fastfoodmuslim/internal/common"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		intent  string
		want    string
		wantErr bool
	}{
		{"nhận đơn vào chế biến", StatusPending, IntentCook, StatusCooking, false},
		{"không nhận lại đơn đang nấu", StatusCooking, IntentCook, "", true},
		{"không nhận đơn đã xong", StatusReady, IntentCook, "", true},
		{"hoàn tất từ đang nấu", StatusCooking, IntentReady, StatusReady, false},
		{"hoàn tất trực tiếp từ hàng chờ", StatusPending, IntentReady, StatusReady, false},
		{"không hoàn tất đơn đã xong", StatusReady, IntentReady, "", true},
		{"sự cố trả đơn đang nấu về hàng chờ", StatusCooking, IntentProblem, StatusPending, false},
		{"sự cố trả đơn đã xong về hàng chờ", StatusReady, IntentProblem, StatusPending, false},
		{"không báo sự cố đơn đang chờ", StatusPending, IntentProblem, "", true},
		{"không chuyển đơn đã hoàn tất", StatusCompleted, IntentCook, "", true},
		{"không chuyển đơn đã hủy", StatusCancelled, IntentReady, "", true},
		{"intent không tồn tại", StatusPending, "Refund", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStatus(tt.current, tt.intent)
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidTransition) {
					t.Errorf("NextStatus(%q, %q) err = %v, muốn ErrInvalidTransition", tt.current, tt.intent, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextStatus(%q, %q) lỗi không mong muốn: %v", tt.current, tt.intent, err)
			}
			if got != tt.want {
				t.Errorf("NextStatus(%q, %q) = %q, muốn %q", tt.current, tt.intent, got, tt.want)
			}
		})
	}
}

func TestValidateIntentConfirm(t *testing.T) {
	// Problem trả đơn về hàng chờ nên không có xác nhận thì bị từ chối
	if err := ValidateIntentConfirm(IntentProblem, false); !errors.Is(err, common.ErrConfirmRequired) {
		t.Errorf("ValidateIntentConfirm(Problem, false) err = %v, muốn ErrConfirmRequired", err)
	}
	if err := ValidateIntentConfirm(IntentProblem, true); err != nil {
		t.Errorf("ValidateIntentConfirm(Problem, true) err = %v, muốn nil", err)
	}

	// Cook và Ready không cần xác nhận
	if err := ValidateIntentConfirm(IntentCook, false); err != nil {
		t.Errorf("ValidateIntentConfirm(Cook, false) err = %v, muốn nil", err)
	}
	if err := ValidateIntentConfirm(IntentReady, false); err != nil {
		t.Errorf("ValidateIntentConfirm(Ready, false) err = %v, muốn nil", err)
	}
}

func TestClassifyWriteConflict(t *testing.T) {
	// Trạng thái trong DB đã khác: người khác chuyển đơn trước, không phải lỗi version
	if err := ClassifyWriteConflict(StatusPending, StatusCooking); !errors.Is(err, common.ErrInvalidTransition) {
		t.Errorf("ClassifyWriteConflict(Pending, Cooking) err = %v, muốn ErrInvalidTransition", err)
	}

	// Trạng thái vẫn vậy, chỉ lệch version: client đang nhìn bản cũ
	if err := ClassifyWriteConflict(StatusPending, StatusPending); !errors.Is(err, common.ErrVersionConflict) {
		t.Errorf("ClassifyWriteConflict(Pending, Pending) err = %v, muốn ErrVersionConflict", err)
	}
}

func TestUnitPrice_CongTuyChon(t *testing.T) {
	item := OrderItem{
		Price: 48000,
		Modifiers: []Modifier{
			{Name: "Thêm phô mai", Price: 8000},
			{Name: "Size lớn", Price: 12000},
		},
	}
	if got := item.UnitPrice(); got != 68000 {
		t.Errorf("UnitPrice() = %d, muốn 68000", got)
	}

	plain := OrderItem{Price: 30000}
	if got := plain.UnitPrice(); got != 30000 {
		t.Errorf("UnitPrice() món không tùy chọn = %d, muốn 30000", got)
	}
}

func TestTotalQuantity(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Quantity: 3},
		{Quantity: 5},
		{Quantity: 4},
	}}
	if got := order.TotalQuantity(); got != 12 {
		t.Errorf("TotalQuantity() = %d, muốn 12", got)
	}

	empty := Order{}
	if got := empty.TotalQuantity(); got != 0 {
		t.Errorf("TotalQuantity() đơn rỗng = %d, muốn 0", got)
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPending, true},
		{StatusCooking, true},
		{StatusReady, false},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}
	for _, tt := range tests {
		order := Order{Status: tt.status}
		if got := order.IsActive(); got != tt.want {
			t.Errorf("IsActive() với status %q = %v, muốn %v", tt.status, got, tt.want)
		}
	}
}
