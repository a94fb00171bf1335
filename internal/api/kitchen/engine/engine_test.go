// Package engine - test logic thuần của bảng bếp: độ khẩn cấp, tải,
// sắp xếp, cảnh báo và overlay lạc quan.
package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	ordermodels "github.com/Muslimceek/fastfoodmuslim/internal/api/order/models"
)

// newOrder tạo đơn test với thời gian đặt lùi về quá khứ elapsed giây so với now
func newOrder(now time.Time, elapsed time.Duration, status string, quantities ...int64) ordermodels.Order {
	items := make([]ordermodels.OrderItem, 0, len(quantities))
	for _, q := range quantities {
		items = append(items, ordermodels.OrderItem{Quantity: q})
	}
	return ordermodels.Order{
		ID:        primitive.NewObjectID(),
		Status:    status,
		Items:     items,
		CreatedAt: now.Add(-elapsed).UnixMilli(),
	}
}

func TestUrgencyFor(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"vừa đặt xong", 0, UrgencyNormal},
		{"ngay dưới ngưỡng urgent", 419 * time.Second, UrgencyNormal},
		{"chạm ngưỡng urgent", 420 * time.Second, UrgencyUrgent},
		{"giữa khoảng urgent", 500 * time.Second, UrgencyUrgent},
		{"ngay dưới ngưỡng critical", 599 * time.Second, UrgencyUrgent},
		{"chạm ngưỡng critical", 600 * time.Second, UrgencyCritical},
		{"quá ngưỡng critical", 650 * time.Second, UrgencyCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createdAt := now.Add(-tt.elapsed).UnixMilli()
			assert.Equal(t, tt.want, UrgencyFor(createdAt, now))
		})
	}
}

func TestElapsedSeconds_KhongAm(t *testing.T) {
	now := time.Now()
	// Đơn có createdAt trong tương lai (lệch đồng hồ) không trả về số âm
	future := now.Add(5 * time.Second).UnixMilli()
	assert.Equal(t, int64(0), ElapsedSeconds(future, now))
}

func TestComputeLoad(t *testing.T) {
	// Ba đơn với số phần 3, 5, 4: tổng 12 phần trên sức chứa 20 là 60%
	assert.Equal(t, 60, ComputeLoad(12))
	assert.Equal(t, LoadModerate, LoadBand(ComputeLoad(12)))

	assert.Equal(t, 0, ComputeLoad(0))
	assert.Equal(t, 100, ComputeLoad(20))
	assert.Equal(t, 125, ComputeLoad(25))
}

func TestLoadBand(t *testing.T) {
	assert.Equal(t, LoadLow, LoadBand(0))
	assert.Equal(t, LoadLow, LoadBand(30))
	assert.Equal(t, LoadModerate, LoadBand(31))
	assert.Equal(t, LoadModerate, LoadBand(60))
	assert.Equal(t, LoadBusy, LoadBand(61))
	assert.Equal(t, LoadBusy, LoadBand(85))
	assert.Equal(t, LoadCritical, LoadBand(86))
	assert.Equal(t, LoadCritical, LoadBand(125))
}

func TestCapLoad(t *testing.T) {
	assert.Equal(t, 60, CapLoad(60))
	assert.Equal(t, 100, CapLoad(100))
	// Quá tải vẫn chỉ hiển thị 100, band tính trên giá trị thật
	assert.Equal(t, 100, CapLoad(125))
}

func TestSortActive_DonCuTruoc(t *testing.T) {
	now := time.Now()
	orderB := newOrder(now, 1*time.Minute, ordermodels.StatusPending, 1)
	orderA := newOrder(now, 10*time.Minute, ordermodels.StatusPending, 1)

	orders := []ordermodels.Order{orderB, orderA}
	SortActive(orders)

	// Đơn A đặt trước nên phải đứng trước đơn B
	assert.Equal(t, orderA.ID, orders[0].ID)
	assert.Equal(t, orderB.ID, orders[1].ID)
}

func TestShouldAlert(t *testing.T) {
	assert.True(t, ShouldAlert(3, 4), "số đơn tăng phải báo chuông")
	assert.False(t, ShouldAlert(4, 4), "số đơn giữ nguyên không báo chuông")
	assert.False(t, ShouldAlert(4, 3), "số đơn giảm không báo chuông")
	assert.False(t, ShouldAlert(0, 0))
}

func TestBoard_SnapshotDauTienKhongBaoChuong(t *testing.T) {
	now := time.Now()
	board := NewBoard()

	board.ApplySnapshot([]ordermodels.Order{
		newOrder(now, time.Minute, ordermodels.StatusPending, 2),
		newOrder(now, 2*time.Minute, ordermodels.StatusCooking, 3),
	})

	view := board.View(now)
	assert.False(t, view.Alert, "snapshot đầu tiên sau khi mở màn hình không báo chuông")
	assert.Equal(t, 2, view.ActiveCount)
}

func TestBoard_BaoChuongKhiCoDonMoi(t *testing.T) {
	now := time.Now()
	board := NewBoard()

	first := []ordermodels.Order{
		newOrder(now, time.Minute, ordermodels.StatusPending, 1),
		newOrder(now, 2*time.Minute, ordermodels.StatusPending, 1),
		newOrder(now, 3*time.Minute, ordermodels.StatusCooking, 1),
	}
	board.ApplySnapshot(first)

	// Thêm một đơn mới: 3 -> 4 phải báo chuông
	second := append([]ordermodels.Order{}, first...)
	second = append(second, newOrder(now, time.Second, ordermodels.StatusPending, 1))
	board.ApplySnapshot(second)
	assert.True(t, board.View(now).Alert)

	// Snapshot tiếp theo giữ nguyên số đơn: tắt chuông
	board.ApplySnapshot(second)
	assert.False(t, board.View(now).Alert)

	// Bớt đơn: không báo chuông
	board.ApplySnapshot(first)
	assert.False(t, board.View(now).Alert)
}

func TestBoard_OverlayLacQuan(t *testing.T) {
	now := time.Now()
	board := NewBoard()

	pending := newOrder(now, time.Minute, ordermodels.StatusPending, 2)
	cooking := newOrder(now, 2*time.Minute, ordermodels.StatusCooking, 3)
	board.ApplySnapshot([]ordermodels.Order{pending, cooking})

	// Bấm nút Ready: đơn biến mất khỏi bảng ngay, chưa cần server xác nhận
	board.ApplyLocal(cooking.ID.Hex(), ordermodels.StatusReady)

	view := board.View(now)
	require.Equal(t, 1, view.ActiveCount)
	assert.Equal(t, pending.ID, view.Items[0].Order.ID)

	// Tải tính lại trên các đơn còn hiển thị
	assert.Equal(t, ComputeLoad(2), view.Load)
}

func TestBoard_SnapshotXoaOverlay(t *testing.T) {
	now := time.Now()
	board := NewBoard()

	pending := newOrder(now, time.Minute, ordermodels.StatusPending, 2)
	board.ApplySnapshot([]ordermodels.Order{pending})

	// Server từ chối thao tác: overlay không rollback nhưng snapshot
	// đầy đủ kế tiếp đưa đơn về trạng thái thật
	board.ApplyLocal(pending.ID.Hex(), ordermodels.StatusReady)
	require.Equal(t, 0, board.View(now).ActiveCount)

	board.ApplySnapshot([]ordermodels.Order{pending})
	assert.Equal(t, 1, board.View(now).ActiveCount)
}

func TestBoard_Disconnected(t *testing.T) {
	now := time.Now()
	board := NewBoard()

	orders := []ordermodels.Order{newOrder(now, time.Minute, ordermodels.StatusPending, 2)}
	board.ApplySnapshot(orders)

	// Mất kết nối: vẫn hiển thị snapshot cuối cùng kèm cờ Disconnected
	board.SetDisconnected(true)
	view := board.View(now)
	assert.True(t, view.Disconnected)
	assert.Equal(t, 1, view.ActiveCount)

	// Kết nối lại bằng snapshot mới: cờ được hạ
	board.ApplySnapshot(orders)
	assert.False(t, board.View(now).Disconnected)
}

func TestBoard_ViewTinhDoKhanCap(t *testing.T) {
	now := time.Now()
	board := NewBoard()

	board.ApplySnapshot([]ordermodels.Order{
		newOrder(now, 650*time.Second, ordermodels.StatusPending, 1),
		newOrder(now, 500*time.Second, ordermodels.StatusCooking, 1),
		newOrder(now, 30*time.Second, ordermodels.StatusPending, 1),
	})

	view := board.View(now)
	require.Equal(t, 3, view.ActiveCount)

	// Đơn chờ lâu nhất đứng đầu và khẩn cấp nhất
	assert.Equal(t, UrgencyCritical, view.Items[0].Urgency)
	assert.Equal(t, UrgencyUrgent, view.Items[1].Urgency)
	assert.Equal(t, UrgencyNormal, view.Items[2].Urgency)
	assert.GreaterOrEqual(t, view.Items[0].ElapsedSeconds, int64(650))
}

func TestBoard_ViewGiuHinhThucVaTuyChon(t *testing.T) {
	now := time.Now()
	board := NewBoard()

	order := newOrder(now, time.Minute, ordermodels.StatusPending, 2)
	order.OrderType = ordermodels.OrderTypeTakeaway
	order.Items[0].Modifiers = []ordermodels.Modifier{{Name: "Thêm phô mai", Price: 8000}}
	board.ApplySnapshot([]ordermodels.Order{order})

	// Bếp cần biết đơn mang đi hay ăn tại chỗ và các tùy chọn của từng món
	view := board.View(now)
	require.Equal(t, 1, view.ActiveCount)
	assert.Equal(t, ordermodels.OrderTypeTakeaway, view.Items[0].Order.OrderType)
	require.Len(t, view.Items[0].Order.Items, 1)
	assert.Equal(t, "Thêm phô mai", view.Items[0].Order.Items[0].Modifiers[0].Name)
}

func TestBoard_ClearAlert(t *testing.T) {
	now := time.Now()
	board := NewBoard()

	board.ApplySnapshot(nil)
	board.ApplySnapshot([]ordermodels.Order{newOrder(now, time.Second, ordermodels.StatusPending, 1)})
	require.True(t, board.View(now).Alert)

	board.ClearAlert()
	assert.False(t, board.View(now).Alert)
}
