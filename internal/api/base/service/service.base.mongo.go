// Package service cung cấp service CRUD generic cho MongoDB.
// Mọi service domain (người dùng, sản phẩm, đơn hàng, hồ sơ) nhúng
// BaseServiceMongoImpl để tái sử dụng logic chung: timestamps, phát event
// thay đổi dữ liệu, chuyển đổi lỗi MongoDB và phân trang.
package service

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/Muslimceek/fastfoodmuslim/internal/api/base/models"
	"github.com/Muslimceek/fastfoodmuslim/internal/api/events"
	"github.com/Muslimceek/fastfoodmuslim/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateData là cấu trúc dữ liệu cập nhật cho MongoDB.
// Map trực tiếp sang các toán tử $set, $setOnInsert, $unset, $push, $addToSet, $pull.
type UpdateData struct {
	Set         map[string]interface{} // Dữ liệu cập nhật ($set)
	SetOnInsert map[string]interface{} // Dữ liệu chỉ set khi insert ($setOnInsert)
	Unset       map[string]interface{} // Các trường cần xóa ($unset)
	Push        map[string]interface{} // Thêm phần tử vào mảng ($push)
	AddToSet    map[string]interface{} // Thêm phần tử vào mảng nếu chưa tồn tại ($addToSet)
	Pull        map[string]interface{} // Xóa phần tử khỏi mảng ($pull)
	Inc         map[string]interface{} // Tăng giá trị số ($inc)
}

// ToUpdateData chuyển struct/map thành UpdateData với các trường trong Set.
func ToUpdateData(data interface{}) (*UpdateData, error) {
	if data == nil {
		return nil, common.ErrInvalidInput
	}

	// Nếu đã là UpdateData thì trả về luôn
	if ud, ok := data.(*UpdateData); ok {
		return ud, nil
	}
	if ud, ok := data.(UpdateData); ok {
		return &ud, nil
	}

	// Chuyển struct/map sang bson map qua marshal/unmarshal
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu cập nhật", common.StatusBadRequest, err)
	}

	var m map[string]interface{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu cập nhật", common.StatusBadRequest, err)
	}

	// Không cho phép cập nhật _id
	delete(m, "_id")

	return &UpdateData{Set: m}, nil
}

// buildUpdateDocument chuyển UpdateData thành document update của MongoDB.
func buildUpdateDocument(data *UpdateData) bson.M {
	update := bson.M{}
	if len(data.Set) > 0 {
		update["$set"] = data.Set
	}
	if len(data.SetOnInsert) > 0 {
		update["$setOnInsert"] = data.SetOnInsert
	}
	if len(data.Unset) > 0 {
		update["$unset"] = data.Unset
	}
	if len(data.Push) > 0 {
		update["$push"] = data.Push
	}
	if len(data.AddToSet) > 0 {
		update["$addToSet"] = data.AddToSet
	}
	if len(data.Pull) > 0 {
		update["$pull"] = data.Pull
	}
	if len(data.Inc) > 0 {
		update["$inc"] = data.Inc
	}
	return update
}

// BaseServiceMongo định nghĩa các hàm CRUD chung cho các service MongoDB
type BaseServiceMongo[Model any] interface {
	InsertOne(ctx context.Context, data Model) (Model, error)
	InsertMany(ctx context.Context, data []Model) ([]Model, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*models.PaginateResult[Model], error)
	UpdateOne(ctx context.Context, filter interface{}, data *UpdateData) (Model, error)
	UpdateMany(ctx context.Context, filter interface{}, data *UpdateData) (int64, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data *UpdateData) (Model, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, data *UpdateData) (Model, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
	Upsert(ctx context.Context, filter interface{}, data Model) (Model, error)
	GetCollection() *mongo.Collection
}

// BaseServiceMongoImpl cung cấp triển khai mặc định của BaseServiceMongo
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo một instance mới của BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// GetCollection trả về collection MongoDB đang sử dụng
func (s *BaseServiceMongoImpl[T]) GetCollection() *mongo.Collection {
	return s.collection
}

// stripEmptyStrings xóa các trường chuỗi rỗng khỏi document trước khi insert.
// Cần thiết cho các unique sparse index (email, phone): chuỗi rỗng vẫn bị
// tính vào index, gây lỗi duplicate khi có nhiều document không có giá trị.
func stripEmptyStrings(doc map[string]interface{}) {
	sparseFields := []string{"email", "phone"}
	for _, f := range sparseFields {
		if v, ok := doc[f]; ok {
			if str, isStr := v.(string); isStr && str == "" {
				delete(doc, f)
			}
		}
	}
}

// toDocumentMap chuyển model thành map bson, xóa _id rỗng để MongoDB tự sinh.
func toDocumentMap(data interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu", common.StatusBadRequest, err)
	}

	var doc map[string]interface{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, "Không thể chuyển đổi dữ liệu", common.StatusBadRequest, err)
	}

	if id, ok := doc["_id"]; ok {
		if oid, isOID := id.(primitive.ObjectID); isOID && oid.IsZero() {
			delete(doc, "_id")
		}
	}

	return doc, nil
}

// InsertOne chèn một document vào collection.
// Tự động thêm createdAt/updatedAt (UnixMilli) và phát event insert.
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	doc, err := toDocumentMap(data)
	if err != nil {
		return zero, err
	}

	now := time.Now().UnixMilli()
	doc["createdAt"] = now
	doc["updatedAt"] = now
	stripEmptyStrings(doc)

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	// Đọc lại document vừa insert để trả về model đầy đủ
	inserted, err := s.FindOne(ctx, bson.M{"_id": result.InsertedID}, nil)
	if err != nil {
		return zero, err
	}

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpInsert,
		Document:       inserted,
	})

	return inserted, nil
}

// InsertMany chèn nhiều documents vào collection
func (s *BaseServiceMongoImpl[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	if len(data) == 0 {
		return nil, common.ErrInvalidInput
	}

	now := time.Now().UnixMilli()
	docs := make([]interface{}, 0, len(data))
	for _, item := range data {
		doc, err := toDocumentMap(item)
		if err != nil {
			return nil, err
		}
		doc["createdAt"] = now
		doc["updatedAt"] = now
		stripEmptyStrings(doc)
		docs = append(docs, doc)
	}

	result, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	ids := make([]primitive.ObjectID, 0, len(result.InsertedIDs))
	for _, id := range result.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok {
			ids = append(ids, oid)
		}
	}

	inserted, err := s.FindManyByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, doc := range inserted {
		events.EmitDataChanged(context.Background(), events.DataChangeEvent{
			CollectionName: s.collection.Name(),
			Operation:      events.OpInsert,
			Document:       doc,
		})
	}

	return inserted, nil
}

// FindOne tìm một document theo filter
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T

	if filter == nil {
		filter = bson.M{}
	}

	var err error
	if opts != nil {
		err = s.collection.FindOne(ctx, filter, opts).Decode(&result)
	} else {
		err = s.collection.FindOne(ctx, filter).Decode(&result)
	}
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return result, common.ErrNotFound
		}
		// Lỗi decode tức là dữ liệu trong DB không khớp với model
		if strings.Contains(err.Error(), "cannot decode") {
			return result, common.NewError(common.ErrCodeValidationFormat, "Dữ liệu không đúng định dạng", common.StatusInternalServerError, err)
		}
		return result, common.ConvertMongoError(err)
	}

	return result, nil
}

// FindOneById tìm một document theo ObjectID
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// FindManyByIds tìm nhiều documents theo danh sách ObjectID
func (s *BaseServiceMongoImpl[T]) FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// Find tìm tất cả documents khớp với filter.
// Luôn trả về slice khác nil để JSON serialize thành [] thay vì null.
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = s.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	return results, nil
}

// FindWithPagination tìm documents với phân trang.
// Page bắt đầu từ 1, limit mặc định 10, tối đa 100.
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64, opts *options.FindOptions) (*models.PaginateResult[T], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	if filter == nil {
		filter = bson.M{}
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if opts == nil {
		opts = options.Find()
	}
	opts.SetSkip((page - 1) * limit)
	opts.SetLimit(limit)

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	totalPage := int64(0)
	if total > 0 {
		totalPage = (total + limit - 1) / limit
	}

	return &models.PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: totalPage,
	}, nil
}

// UpdateOne cập nhật một document khớp với filter.
// Tự động thêm updatedAt, đọc lại document sau cập nhật và phát event.
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, data *UpdateData) (T, error) {
	var zero T

	if data == nil {
		return zero, common.ErrInvalidInput
	}
	if data.Set == nil {
		data.Set = map[string]interface{}{}
	}
	data.Set["updatedAt"] = time.Now().UnixMilli()

	result, err := s.collection.UpdateOne(ctx, filter, buildUpdateDocument(data))
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return zero, common.ErrNotFound
	}

	updated, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		// Filter có thể không còn khớp sau cập nhật (ví dụ filter theo trường vừa đổi)
		if err == common.ErrNotFound {
			return zero, nil
		}
		return zero, err
	}

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpUpdate,
		Document:       updated,
	})

	return updated, nil
}

// UpdateById cập nhật một document theo ObjectID
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data *UpdateData) (T, error) {
	return s.UpdateOne(ctx, bson.M{"_id": id}, data)
}

// FindOneAndUpdate cập nhật atomic một document và trả về bản sau cập nhật.
// Dùng cho các thao tác cần so sánh điều kiện và ghi trong cùng một bước
// (ví dụ chuyển trạng thái đơn hàng với kiểm tra version).
func (s *BaseServiceMongoImpl[T]) FindOneAndUpdate(ctx context.Context, filter interface{}, data *UpdateData) (T, error) {
	var zero T

	if data == nil {
		return zero, common.ErrInvalidInput
	}
	if data.Set == nil {
		data.Set = map[string]interface{}{}
	}
	data.Set["updatedAt"] = time.Now().UnixMilli()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated T
	err := s.collection.FindOneAndUpdate(ctx, filter, buildUpdateDocument(data), opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpUpdate,
		Document:       updated,
	})

	return updated, nil
}

// UpdateMany cập nhật nhiều documents khớp với filter, trả về số lượng đã sửa
func (s *BaseServiceMongoImpl[T]) UpdateMany(ctx context.Context, filter interface{}, data *UpdateData) (int64, error) {
	if data == nil {
		return 0, common.ErrInvalidInput
	}
	if data.Set == nil {
		data.Set = map[string]interface{}{}
	}
	data.Set["updatedAt"] = time.Now().UnixMilli()

	result, err := s.collection.UpdateMany(ctx, filter, buildUpdateDocument(data))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpUpdate,
		Document:       nil,
	})

	return result.ModifiedCount, nil
}

// DeleteOne xóa một document khớp với filter.
// Đọc document trước khi xóa để đính kèm vào event.
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	existing, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return err
	}

	result, err := s.collection.DeleteOne(ctx, filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpDelete,
		Document:       existing,
	})

	return nil
}

// DeleteById xóa một document theo ObjectID
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteOne(ctx, bson.M{"_id": id})
}

// DeleteMany xóa nhiều documents khớp với filter, trả về số lượng đã xóa
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}

	if result.DeletedCount > 0 {
		events.EmitDataChanged(context.Background(), events.DataChangeEvent{
			CollectionName: s.collection.Name(),
			Operation:      events.OpDelete,
			Document:       nil,
		})
	}

	return result.DeletedCount, nil
}

// CountDocuments đếm số documents khớp với filter
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}

	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}

	return count, nil
}

// DocumentExists kiểm tra document có tồn tại không
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// Upsert cập nhật document khớp với filter, tạo mới nếu chưa có.
// createdAt chỉ được set khi insert ($setOnInsert), updatedAt luôn được set.
func (s *BaseServiceMongoImpl[T]) Upsert(ctx context.Context, filter interface{}, data T) (T, error) {
	var zero T

	doc, err := toDocumentMap(data)
	if err != nil {
		return zero, err
	}

	now := time.Now().UnixMilli()
	doc["updatedAt"] = now
	delete(doc, "createdAt")
	stripEmptyStrings(doc)

	update := bson.M{
		"$set":         doc,
		"$setOnInsert": bson.M{"createdAt": now},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var result T
	err = s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: s.collection.Name(),
		Operation:      events.OpUpsert,
		Document:       result,
	})

	return result, nil
}

// IsZeroModel kiểm tra model có phải giá trị zero không (chưa có dữ liệu)
func IsZeroModel(v interface{}) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
