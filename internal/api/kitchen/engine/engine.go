// Package engine chứa toàn bộ logic thuần của bảng bếp: độ khẩn cấp theo
// thời gian chờ, tải bếp theo tổng số phần ăn, sắp xếp hàng đợi, cảnh báo
// đơn mới và overlay trạng thái lạc quan.
//
// Package này không đụng đến database hay transport, mọi thứ tính từ
// snapshot đơn hàng và thời điểm hiện tại nên test được hoàn toàn độc lập.
package engine

import (
	"math"
	"sort"
	"sync"
	"time"

	ordermodels "github.com/Muslimceek/fastfoodmuslim/internal/api/order/models"
)

// Các mức độ khẩn cấp của một đơn trên bảng bếp
const (
	UrgencyNormal   = "Normal"   // Dưới 7 phút
	UrgencyUrgent   = "Urgent"   // Từ 7 đến dưới 10 phút
	UrgencyCritical = "Critical" // Từ 10 phút trở lên
)

// Ngưỡng thời gian chờ (giây) để nâng mức khẩn cấp
const (
	UrgentThresholdSeconds   = 420 // 7 phút
	CriticalThresholdSeconds = 600 // 10 phút
)

// Các mức tải của bếp
const (
	LoadLow      = "Low"      // <= 30
	LoadModerate = "Moderate" // 31 - 60
	LoadBusy     = "Busy"     // 61 - 85
	LoadCritical = "Critical" // > 85
)

// LoadCapacity là số phần ăn tương ứng với 100% tải
const LoadCapacity = 20

// LoadDisplayCap là trần hiển thị của phần trăm tải.
// Mức tải (band) vẫn tính trên giá trị chưa cắt trần.
const LoadDisplayCap = 100

// UrgencyFor trả về mức khẩn cấp của đơn dựa trên thời gian chờ tính đến now.
// createdAtMilli là thời điểm đặt đơn (UnixMilli).
func UrgencyFor(createdAtMilli int64, now time.Time) string {
	elapsed := now.UnixMilli() - createdAtMilli
	elapsedSeconds := elapsed / 1000

	switch {
	case elapsedSeconds >= CriticalThresholdSeconds:
		return UrgencyCritical
	case elapsedSeconds >= UrgentThresholdSeconds:
		return UrgencyUrgent
	default:
		return UrgencyNormal
	}
}

// ElapsedSeconds trả về số giây đã trôi qua kể từ khi đặt đơn
func ElapsedSeconds(createdAtMilli int64, now time.Time) int64 {
	seconds := (now.UnixMilli() - createdAtMilli) / 1000
	if seconds < 0 {
		return 0
	}
	return seconds
}

// ComputeLoad tính phần trăm tải của bếp từ tổng số phần ăn đang chờ.
// Kết quả chưa cắt trần hiển thị.
func ComputeLoad(totalQuantity int64) int {
	return int(math.Round(float64(totalQuantity) / float64(LoadCapacity) * 100))
}

// LoadBand trả về mức tải tương ứng với phần trăm tải chưa cắt trần
func LoadBand(load int) string {
	switch {
	case load <= 30:
		return LoadLow
	case load <= 60:
		return LoadModerate
	case load <= 85:
		return LoadBusy
	default:
		return LoadCritical
	}
}

// CapLoad cắt trần phần trăm tải để hiển thị
func CapLoad(load int) int {
	if load > LoadDisplayCap {
		return LoadDisplayCap
	}
	return load
}

// SortActive sắp xếp các đơn theo thời gian đặt tăng dần, đơn chờ lâu nhất
// nằm trên cùng. Trùng thời gian thì so theo ID để thứ tự ổn định.
func SortActive(orders []ordermodels.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt != orders[j].CreatedAt {
			return orders[i].CreatedAt < orders[j].CreatedAt
		}
		return orders[i].ID.Hex() < orders[j].ID.Hex()
	})
}

// ShouldAlert trả về true khi số đơn active tăng thật sự giữa hai snapshot
// liên tiếp. Giảm hoặc giữ nguyên (kể cả khi nội dung đơn thay đổi) thì không
// báo chuông.
func ShouldAlert(previousCount int, currentCount int) bool {
	return currentCount > previousCount
}

// BoardItem là một đơn trên bảng bếp kèm thông tin tính toán
type BoardItem struct {
	Order          ordermodels.Order `json:"order"`
	Urgency        string            `json:"urgency"`
	ElapsedSeconds int64             `json:"elapsedSeconds"`
}

// BoardView là trạng thái đầy đủ của bảng bếp trả về cho client
type BoardView struct {
	Items        []BoardItem `json:"items"`
	ActiveCount  int         `json:"activeCount"`
	Load         int         `json:"load"`
	LoadBand     string      `json:"loadBand"`
	Alert        bool        `json:"alert"`
	Disconnected bool        `json:"disconnected"`
	GeneratedAt  int64       `json:"generatedAt"`
}

// Board giữ trạng thái bảng bếp trong bộ nhớ: snapshot active hiện tại,
// overlay trạng thái lạc quan và số đơn của snapshot trước để tính cảnh báo.
type Board struct {
	mu sync.RWMutex

	orders       []ordermodels.Order
	overlay      map[string]string // orderID hex -> trạng thái lạc quan
	lastCount    int
	alert        bool
	disconnected bool
	hasSnapshot  bool
}

// NewBoard tạo bảng bếp rỗng
func NewBoard() *Board {
	return &Board{
		overlay: make(map[string]string),
	}
}

// ApplySnapshot thay thế toàn bộ snapshot active và sắp xếp lại.
// Snapshot đầy đủ là nguồn sự thật: overlay lạc quan được xóa sạch,
// cảnh báo được tính bằng cách so số đơn với snapshot trước.
func (b *Board) ApplySnapshot(orders []ordermodels.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	SortActive(orders)

	currentCount := len(orders)
	if b.hasSnapshot {
		b.alert = ShouldAlert(b.lastCount, currentCount)
	} else {
		// Snapshot đầu tiên sau khi mở màn hình không báo chuông
		b.alert = false
	}

	b.orders = orders
	b.lastCount = currentCount
	b.overlay = make(map[string]string)
	b.hasSnapshot = true
	b.disconnected = false
}

// ApplyLocal ghi nhận trạng thái lạc quan cho một đơn ngay khi nhân viên
// bấm nút, trước khi server xác nhận. Không có rollback: nếu server từ chối,
// snapshot đầy đủ kế tiếp sẽ đưa đơn về trạng thái thật.
func (b *Board) ApplyLocal(orderID string, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overlay[orderID] = status
}

// SetDisconnected đánh dấu mất kết nối với nguồn dữ liệu.
// Bảng vẫn hiển thị snapshot cuối cùng kèm trạng thái Disconnected.
func (b *Board) SetDisconnected(disconnected bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnected = disconnected
}

// ClearAlert tắt cờ cảnh báo sau khi đã phát chuông một lần
func (b *Board) ClearAlert() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.alert = false
}

// View trả về trạng thái bảng bếp tại thời điểm now: áp overlay lạc quan,
// loại các đơn overlay đưa ra khỏi active, tính độ khẩn cấp và tải.
func (b *Board) View(now time.Time) BoardView {
	b.mu.RLock()
	defer b.mu.RUnlock()

	items := make([]BoardItem, 0, len(b.orders))
	var totalQuantity int64

	for _, order := range b.orders {
		if status, ok := b.overlay[order.ID.Hex()]; ok {
			order.Status = status
		}
		// Đơn được overlay chuyển sang Ready không còn nằm trên bảng
		if !order.IsActive() {
			continue
		}

		items = append(items, BoardItem{
			Order:          order,
			Urgency:        UrgencyFor(order.CreatedAt, now),
			ElapsedSeconds: ElapsedSeconds(order.CreatedAt, now),
		})
		totalQuantity += order.TotalQuantity()
	}

	load := ComputeLoad(totalQuantity)

	return BoardView{
		Items:        items,
		ActiveCount:  len(items),
		Load:         CapLoad(load),
		LoadBand:     LoadBand(load),
		Alert:        b.alert,
		Disconnected: b.disconnected,
		GeneratedAt:  now.UnixMilli(),
	}
}
