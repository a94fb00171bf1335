package kitchensvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SubscribeBroadcastUnsubscribe(t *testing.T) {
	hub := NewHub()

	id1, ch1 := hub.Subscribe()
	id2, ch2 := hub.Subscribe()
	require.NotEqual(t, id1, id2)
	assert.Equal(t, 2, hub.Count())

	payload := []byte(`{"activeCount":1}`)
	hub.Broadcast(payload)

	assert.Equal(t, payload, <-ch1)
	assert.Equal(t, payload, <-ch2)

	hub.Unsubscribe(id1)
	assert.Equal(t, 1, hub.Count())

	// Kênh của subscriber đã gỡ phải được đóng
	_, open := <-ch1
	assert.False(t, open)
}

func TestHub_BroadcastKhongChanKhiKenhDay(t *testing.T) {
	hub := NewHub()
	_, ch := hub.Subscribe()

	// Gửi quá buffer: các event thừa bị bỏ qua, Broadcast không được chặn
	for i := 0; i < subscriberBufferSize*2; i++ {
		hub.Broadcast([]byte("x"))
	}

	assert.Len(t, ch, subscriberBufferSize)
}

func TestHub_UnsubscribeHaiLanKhongPanic(t *testing.T) {
	hub := NewHub()
	id, _ := hub.Subscribe()

	hub.Unsubscribe(id)
	hub.Unsubscribe(id)
	assert.Equal(t, 0, hub.Count())
}
