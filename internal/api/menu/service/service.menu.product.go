// Package menusvc - service sản phẩm thực đơn.
package menusvc

import (
	"context"
	"fmt"

	models "github.com/Muslimceek/fastfoodmuslim/internal/api/menu/models"
	basesvc "github.com/Muslimceek/fastfoodmuslim/internal/api/base/service"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductService là cấu trúc chứa các phương thức liên quan đến thực đơn
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[models.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}

	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Product](productCollection),
	}, nil
}

// SetAvailability bật/tắt món trong thực đơn
func (s *ProductService) SetAvailability(ctx context.Context, id primitive.ObjectID, isAvailable bool) (*models.Product, error) {
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isAvailable": isAvailable,
		},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, id, updateData)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// FindAvailable trả về danh sách món đang mở bán, sắp xếp theo danh mục rồi tên.
// Nếu category khác rỗng thì chỉ lấy món thuộc danh mục đó.
func (s *ProductService) FindAvailable(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{"isAvailable": true}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	return s.BaseServiceMongoImpl.Find(ctx, filter, opts)
}
