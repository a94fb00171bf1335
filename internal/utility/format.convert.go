package utility

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String2ObjectID chuyển chuỗi hex thành primitive.ObjectID.
// Chuỗi không hợp lệ trả về zero ObjectID, caller phải validate trước bằng primitive.IsValidObjectID.
func String2ObjectID(id string) primitive.ObjectID {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectID
}

// ConvertStruct chuyển đổi một struct sang struct khác qua JSON.
// target phải là con trỏ.
func ConvertStruct(source interface{}, target interface{}) (interface{}, error) {
	jsonData, err := json.Marshal(source)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(jsonData, target); err != nil {
		return nil, err
	}

	return target, nil
}

// PrettyPrint in đẹp một interface dưới dạng JSON
func PrettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "\t")
	return string(s)
}
