package utility

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToMap chuyển đổi struct thành map thông qua bson marshal/unmarshal.
// Dùng khi cần tạo document MongoDB từ model mà vẫn tôn trọng các bson tag
// (tên field, omitempty).
func ToMap(s interface{}) (map[string]interface{}, error) {
	data, err := bson.Marshal(s)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := bson.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	// _id zero value không được phép đi vào insert, Mongo sẽ tự sinh
	if id, ok := result["_id"]; ok {
		if objID, isObjID := id.(primitive.ObjectID); isObjID && objID.IsZero() {
			delete(result, "_id")
		}
	}

	return result, nil
}
