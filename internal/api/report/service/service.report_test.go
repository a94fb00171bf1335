package reportsvc

import (
	"testing"
	"time"
)

func TestStartOfToday(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 123, time.UTC)
	want := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC).UnixMilli()

	if got := startOfToday(now); got != want {
		t.Errorf("startOfToday() = %d, muốn %d", got, want)
	}

	// Ngay sau nửa đêm vẫn thuộc ngày hôm đó
	midnight := time.Date(2026, 8, 31, 0, 0, 0, 1, time.UTC)
	if got := startOfToday(midnight); got != want {
		t.Errorf("startOfToday() lúc nửa đêm = %d, muốn %d", got, want)
	}
}
