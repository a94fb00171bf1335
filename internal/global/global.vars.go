// Package global chứa các biến toàn cục của ứng dụng: cấu hình server,
// phiên kết nối MongoDB, validator và các registry.
package global

import (
	"github.com/Muslimceek/fastfoodmuslim/config"
	"github.com/Muslimceek/fastfoodmuslim/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	Users        string // Tên collection cho người dùng
	Products     string // Tên collection cho sản phẩm trong menu
	Orders       string // Tên collection cho đơn hàng
	UserProfiles string // Tên collection cho hồ sơ khách hàng (favorites, địa chỉ)
}

// Các biến toàn cục
var Validate *validator.Validate                         // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                        // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                   // Cấu hình của server
var MongoDB_ColNames CollectionName = *new(CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
