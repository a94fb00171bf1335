package utility

import (
	"fmt"
)

// GoProtect là một hàm bao bọc giúp bảo vệ một hàm khác khỏi bị panic.
// Nếu xảy ra panic trong f(), GoProtect bắt lại và in ra lỗi thay vì làm chương trình dừng hẳn.
func GoProtect(f func()) {
	defer func() {
		if err := recover(); err != nil {
			fmt.Printf("Đã bắt lỗi panic: %v\n", err)
		}
	}()

	f()
}

// Contains kiểm tra slice có chứa phần tử không
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
