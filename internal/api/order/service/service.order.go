// Package ordersvc - service đơn hàng.
package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	basesvc "github.com/Muslimceek/fastfoodmuslim/internal/api/base/service"
	menumodels "github.com/Muslimceek/fastfoodmuslim/internal/api/menu/models"
	orderdto "github.com/Muslimceek/fastfoodmuslim/internal/api/order/dto"
	models "github.com/Muslimceek/fastfoodmuslim/internal/api/order/models"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"
	"github.com/Muslimceek/fastfoodmuslim/internal/global"
	"github.com/Muslimceek/fastfoodmuslim/internal/utility"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderService là cấu trúc chứa các phương thức liên quan đến đơn hàng
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[models.Order]
	productService *basesvc.BaseServiceMongoImpl[menumodels.Product]
}

// NewOrderService tạo mới OrderService
func NewOrderService() (*OrderService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}

	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Order](orderCollection),
		productService:       basesvc.NewBaseServiceMongo[menumodels.Product](productCollection),
	}, nil
}

// newTicketNumber sinh số vé 4 chữ số cho khách đối chiếu khi nhận món
func newTicketNumber() int64 {
	return int64(rand.Intn(9000) + 1000)
}

// resolveModifiers đối chiếu tên tùy chọn khách chọn với danh sách tùy chọn
// của món trong thực đơn, trả về snapshot tùy chọn kèm giá cộng thêm.
// Tên không có trong thực đơn bị từ chối, giá do client gửi không được tin.
func resolveModifiers(product *menumodels.Product, names []string) ([]models.Modifier, error) {
	if len(names) == 0 {
		return nil, nil
	}

	modifiers := make([]models.Modifier, 0, len(names))
	for _, name := range names {
		productModifier, ok := product.FindModifier(name)
		if !ok {
			return nil, common.NewError(
				common.ErrCodeBusinessState,
				fmt.Sprintf("Món '%s' không có tùy chọn '%s'", product.Name, name),
				common.StatusBadRequest,
				nil,
			)
		}
		modifiers = append(modifiers, models.Modifier{
			Name:  productModifier.Name,
			Price: productModifier.Price,
		})
	}
	return modifiers, nil
}

// Checkout tạo đơn hàng mới từ giỏ của khách.
// Giá từng món và tổng tiền được tính lại phía server từ thực đơn hiện tại,
// không tin giá do client gửi lên.
func (s *OrderService) Checkout(ctx context.Context, userID primitive.ObjectID, input *orderdto.CheckoutInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, common.ErrEmptyOrder
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	var total int64
	for _, itemInput := range input.Items {
		product, err := s.productService.FindOneById(ctx, utility.String2ObjectID(itemInput.ProductID))
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.ErrProductUnavailable
			}
			return nil, err
		}
		if !product.IsAvailable {
			return nil, common.NewError(
				common.ErrCodeBusinessState,
				fmt.Sprintf("Món '%s' hiện không khả dụng", product.Name),
				common.StatusBadRequest,
				nil,
			)
		}

		modifiers, err := resolveModifiers(&product, itemInput.Modifiers)
		if err != nil {
			return nil, err
		}

		item := models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  itemInput.Quantity,
			Modifiers: modifiers,
			Note:      itemInput.Note,
		}
		items = append(items, item)
		total += item.UnitPrice() * itemInput.Quantity
	}

	order := models.Order{
		TicketNumber: newTicketNumber(),
		UserID:       userID,
		OrderType:    input.OrderType,
		Status:       models.StatusPending,
		Items:        items,
		TotalPrice:   total,
		Note:         input.Note,
		Version:      0,
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, order)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": created.ID.Hex(),
		"ticket":   created.TicketNumber,
		"total":    created.TotalPrice,
	}).Info("Checkout: Tạo đơn hàng thành công")
	return &created, nil
}

// FindMyOrders trả về đơn hàng của một khách, mới nhất trước
func (s *OrderService) FindMyOrders(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(50)
	return s.BaseServiceMongoImpl.Find(ctx, bson.M{"userId": userID}, opts)
}

// FindActive trả về các đơn đang hiển thị trên bảng bếp (Pending, Cooking),
// sắp xếp theo thời gian đặt tăng dần để đơn chờ lâu nhất nằm trên cùng.
func (s *OrderService) FindActive(ctx context.Context) ([]models.Order, error) {
	filter := bson.M{"status": bson.M{"$in": models.ActiveStatuses}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return s.BaseServiceMongoImpl.Find(ctx, filter, opts)
}

// AdvanceStatus chuyển trạng thái đơn theo intent từ màn hình bếp.
// Thao tác ghi có điều kiện theo status + version hiện tại: nếu đơn đã bị
// người khác chuyển trước, điều kiện không khớp và thao tác bị từ chối,
// không bao giờ ghi đè lẫn nhau.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID primitive.ObjectID, input *orderdto.AdvanceStatusInput) (*models.Order, error) {
	// Intent Problem cần xác nhận trước khi trả đơn về hàng chờ
	if err := models.ValidateIntentConfirm(input.Intent, input.Confirm); err != nil {
		return nil, err
	}

	order, err := s.BaseServiceMongoImpl.FindOneById(ctx, orderID)
	if err != nil {
		return nil, err
	}

	nextStatus, err := models.NextStatus(order.Status, input.Intent)
	if err != nil {
		return nil, err
	}

	// Ghi có điều kiện: chỉ thành công khi status và version trong DB
	// vẫn đúng như client đang thấy
	filter := bson.M{
		"_id":     orderID,
		"status":  order.Status,
		"version": input.Version,
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status": nextStatus,
		},
		Inc: map[string]interface{}{
			"version": int64(1),
		},
	}

	updated, err := s.BaseServiceMongoImpl.FindOneAndUpdate(ctx, filter, updateData)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Đọc lại để phân loại: đơn đã đổi trạng thái hay chỉ lệch version
			current, readErr := s.BaseServiceMongoImpl.FindOneById(ctx, orderID)
			if readErr != nil {
				return nil, readErr
			}
			return nil, models.ClassifyWriteConflict(order.Status, current.Status)
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"order_id": orderID.Hex(),
		"intent":   input.Intent,
		"from":     order.Status,
		"to":       nextStatus,
	}).Info("AdvanceStatus: Chuyển trạng thái đơn thành công")
	return &updated, nil
}

// MarkCompleted chuyển đơn từ Ready sang Completed khi khách đã nhận món
func (s *OrderService) MarkCompleted(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	filter := bson.M{
		"_id":    orderID,
		"status": models.StatusReady,
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status": models.StatusCompleted,
		},
		Inc: map[string]interface{}{
			"version": int64(1),
		},
	}

	updated, err := s.BaseServiceMongoImpl.FindOneAndUpdate(ctx, filter, updateData)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Kiểm tra đơn có tồn tại không để trả lỗi chính xác
			if _, readErr := s.BaseServiceMongoImpl.FindOneById(ctx, orderID); readErr != nil {
				return nil, readErr
			}
			return nil, common.ErrInvalidTransition
		}
		return nil, err
	}
	return &updated, nil
}

// CancelOrder hủy đơn hàng của khách. Chỉ hủy được khi đơn còn ở hàng chờ,
// bếp đã nhận đơn thì không hủy được nữa.
func (s *OrderService) CancelOrder(ctx context.Context, orderID primitive.ObjectID, userID primitive.ObjectID) (*models.Order, error) {
	filter := bson.M{
		"_id":    orderID,
		"userId": userID,
		"status": models.StatusPending,
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status": models.StatusCancelled,
		},
		Inc: map[string]interface{}{
			"version": int64(1),
		},
	}

	updated, err := s.BaseServiceMongoImpl.FindOneAndUpdate(ctx, filter, updateData)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Phân loại: đơn không tồn tại / không thuộc user / không còn Pending
			current, readErr := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"_id": orderID, "userId": userID}, nil)
			if readErr != nil {
				return nil, readErr
			}
			if current.Status != models.StatusPending {
				return nil, common.ErrOrderNotCancellable
			}
			return nil, common.ErrVersionConflict
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"order_id": orderID.Hex()}).Info("CancelOrder: Hủy đơn hàng thành công")
	return &updated, nil
}
