// Package profilesvc - service hồ sơ khách hàng.
package profilesvc

import (
	"context"
	"errors"
	"fmt"

	basesvc "github.com/Muslimceek/fastfoodmuslim/internal/api/base/service"
	models "github.com/Muslimceek/fastfoodmuslim/internal/api/profile/models"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileService là cấu trúc chứa các phương thức liên quan đến hồ sơ khách hàng
type ProfileService struct {
	*basesvc.BaseServiceMongoImpl[models.UserProfile]
}

// NewProfileService tạo mới ProfileService
func NewProfileService() (*ProfileService, error) {
	profileCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.UserProfiles)
	if !exist {
		return nil, fmt.Errorf("failed to get user profiles collection: %v", common.ErrNotFound)
	}
	return &ProfileService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.UserProfile](profileCollection),
	}, nil
}

// FindOrCreate trả về hồ sơ của user, tự tạo hồ sơ rỗng nếu chưa có
func (s *ProfileService) FindOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.UserProfile, error) {
	profile, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"userId": userID}, nil)
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	created, err := s.BaseServiceMongoImpl.Upsert(ctx, bson.M{"userId": userID}, models.UserProfile{
		UserID:             userID,
		FavoriteProductIDs: []primitive.ObjectID{},
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateInfo cập nhật thông tin hiển thị của hồ sơ
func (s *ProfileService) UpdateInfo(ctx context.Context, userID primitive.ObjectID, data *basesvc.UpdateData) (*models.UserProfile, error) {
	if _, err := s.FindOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	updated, err := s.BaseServiceMongoImpl.UpdateOne(ctx, bson.M{"userId": userID}, data)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddFavorite thêm món vào danh sách yêu thích.
// Dùng $addToSet nên thêm trùng không tạo bản ghi kép.
func (s *ProfileService) AddFavorite(ctx context.Context, userID primitive.ObjectID, productID primitive.ObjectID) (*models.UserProfile, error) {
	if _, err := s.FindOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		AddToSet: map[string]interface{}{
			"favoriteProductIds": productID,
		},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateOne(ctx, bson.M{"userId": userID}, updateData)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveFavorite xóa món khỏi danh sách yêu thích.
// Xóa món không có trong danh sách vẫn thành công, kết quả như nhau.
func (s *ProfileService) RemoveFavorite(ctx context.Context, userID primitive.ObjectID, productID primitive.ObjectID) (*models.UserProfile, error) {
	if _, err := s.FindOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		Pull: map[string]interface{}{
			"favoriteProductIds": productID,
		},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateOne(ctx, bson.M{"userId": userID}, updateData)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
