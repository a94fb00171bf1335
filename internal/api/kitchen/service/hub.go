// Package kitchensvc - service bảng bếp: hub phát sự kiện realtime và
// watcher theo dõi thay đổi đơn hàng.
package kitchensvc

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// subscriberBufferSize là kích thước buffer kênh của mỗi subscriber.
// Subscriber chậm bị bỏ qua event thay vì chặn cả hub, snapshot kế tiếp
// sẽ bù lại trạng thái mới nhất.
const subscriberBufferSize = 8

// Hub quản lý các kết nối realtime đang theo dõi bảng bếp
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan []byte
}

// NewHub tạo hub rỗng
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]chan []byte),
	}
}

// Subscribe đăng ký một kết nối mới, trả về ID và kênh nhận event
func (h *Hub) Subscribe() (string, chan []byte) {
	id := uuid.NewString()
	ch := make(chan []byte, subscriberBufferSize)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{"subscriber_id": id}).Debug("Hub: Subscriber mới kết nối")
	return id, ch
}

// Unsubscribe gỡ một kết nối và đóng kênh của nó
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{"subscriber_id": id}).Debug("Hub: Subscriber ngắt kết nối")
}

// Broadcast gửi payload đến tất cả subscriber.
// Gửi non-blocking: kênh đầy thì bỏ qua, không chặn watcher.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- payload:
		default:
		}
	}
}

// Count trả về số subscriber đang kết nối
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
