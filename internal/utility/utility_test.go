package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestContains(t *testing.T) {
	roles := []string{"admin", "kitchen"}
	assert.True(t, Contains(roles, "kitchen"))
	assert.False(t, Contains(roles, "customer"))
	assert.False(t, Contains(nil, "admin"))
}

func TestPassword_HashVaVerify(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	require.NotEmpty(t, salt)

	hash := HashPassword("MatKhau123!", salt)
	assert.True(t, VerifyPassword("MatKhau123!", salt, hash))
	assert.False(t, VerifyPassword("MatKhauSai", salt, hash))

	// Cùng mật khẩu nhưng salt khác phải cho hash khác
	salt2, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, hash, HashPassword("MatKhau123!", salt2))
}

func TestString2ObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id, String2ObjectID(id.Hex()))

	// Chuỗi không hợp lệ trả về ObjectID rỗng
	assert.Equal(t, primitive.NilObjectID, String2ObjectID("khong-hop-le"))
}

func TestCache_HetHanTheoTTL(t *testing.T) {
	// Chu kỳ dọn dẹp dài hơn TTL rất nhiều: item vẫn phải hết hạn đúng TTL
	cache := NewCache(30*time.Millisecond, time.Minute)
	defer cache.Stop()

	cache.Set("role:abc", "kitchen")
	value, found := cache.Get("role:abc")
	require.True(t, found)
	assert.Equal(t, "kitchen", value)

	time.Sleep(50 * time.Millisecond)
	_, found = cache.Get("role:abc")
	assert.False(t, found, "item quá TTL phải coi như không tồn tại")
}

func TestCache_Delete(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)
	defer cache.Stop()

	cache.Set("role:abc", "manager")
	cache.Delete("role:abc")
	_, found := cache.Get("role:abc")
	assert.False(t, found)
}

func TestConvertStruct(t *testing.T) {
	type src struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	}
	type dst struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
		Note  string `json:"note,omitempty"`
	}

	var target dst
	_, err := ConvertStruct(src{Name: "Gà rán", Price: 48000}, &target)
	require.NoError(t, err)
	assert.Equal(t, "Gà rán", target.Name)
	assert.Equal(t, int64(48000), target.Price)
	assert.Empty(t, target.Note)
}
